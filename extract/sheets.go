package extract

import (
	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/table"
)

// SheetSource gives access to worksheet values.
type SheetSource interface {
	Grid(i int) (table.Grid, error)
}

// Sheets extracts worksheets as one Markdown table each.
type Sheets struct {
	Source SheetSource
}

// Extract implements Extractor. The strategy is always model.Table; a sheet
// without content yields table.EmptyMarker.
func (s *Sheets) Extract(u model.Unit) model.Result {
	g, err := s.Source.Grid(u.Index())
	if err != nil {
		return model.Failed(err)
	}
	return model.Result{Text: table.Assemble(g), Strategy: model.Table}
}
