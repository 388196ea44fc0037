package extract

import (
	"strings"

	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/pptx"
	"github.com/tsawler/docmark/table"
)

// SlideSource gives access to parsed slides.
type SlideSource interface {
	Slide(i int) (*pptx.Slide, error)
}

// Slides extracts slides. The title becomes a level-3 heading, the other
// shapes follow in source order, and speaker notes come last.
type Slides struct {
	Source SlideSource
}

// Extract implements Extractor. The strategy is always model.Direct.
func (s *Slides) Extract(u model.Unit) model.Result {
	slide, err := s.Source.Slide(u.Index())
	if err != nil {
		return model.Failed(err)
	}

	var blocks []string
	if slide.Title != "" {
		blocks = append(blocks, "### "+slide.Title)
	}

	for _, shape := range slide.Shapes {
		if shape.IsTitle {
			continue
		}
		if shape.HasTable() {
			if !shape.Table.Empty() {
				blocks = append(blocks, table.Assemble(shape.Table))
			}
			continue
		}
		if text := strings.TrimSpace(shape.Text); text != "" {
			blocks = append(blocks, text)
		}
	}

	if slide.Notes != "" {
		blocks = append(blocks, "**Speaker Notes:**", "_"+slide.Notes+"_")
	}

	return model.Result{Text: strings.Join(blocks, "\n\n"), Strategy: model.Direct}
}
