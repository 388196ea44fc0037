package xlsx

import "github.com/tsawler/docmark/table"

// CellType classifies the value held by a cell. The zero value is an empty
// cell.
type CellType int

const (
	CellTypeEmpty CellType = iota
	CellTypeString
	CellTypeNumber
	CellTypeBoolean
	CellTypeDate    // number rendered through a date format
	CellTypeFormula // formula with no cached value
	CellTypeError
)

var cellTypeNames = [...]string{"empty", "string", "number", "boolean", "date", "formula", "error"}

func (t CellType) String() string {
	if t < 0 || int(t) >= len(cellTypeNames) {
		return "unknown"
	}
	return cellTypeNames[t]
}

// Cell represents a cell in a worksheet.
type Cell struct {
	Value   string   // Display value; cached result for formulas
	Type    CellType // The type of data
	Formula string   // Formula text if present

	IsMerged    bool // Part of a merged region
	IsMergeRoot bool // Top-left cell of a merged region
}

// Sheet represents a worksheet in the workbook. Rows are ragged: each row is
// only as long as its last populated cell.
type Sheet struct {
	Name   string
	Index  int
	Hidden bool
	Rows   [][]Cell

	MergedRegions []MergedRegion
}

// MergedRegion represents a merged cell region (0-indexed, inclusive).
type MergedRegion struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Cell returns the cell at the given row and column (0-indexed), or nil.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 0 || row >= len(s.Rows) {
		return nil
	}
	if col < 0 || col >= len(s.Rows[row]) {
		return nil
	}
	return &s.Rows[row][col]
}

// CellByRef returns the cell at the given reference (e.g., "A1"), or nil.
func (s *Sheet) CellByRef(ref string) *Cell {
	col, row, err := ParseCellRef(ref)
	if err != nil {
		return nil
	}
	return s.Cell(row, col)
}

// Grid returns the sheet's values. Merged cells other than the region's
// top-left cell are blank.
func (s *Sheet) Grid() table.Grid {
	g := make(table.Grid, len(s.Rows))
	for i, row := range s.Rows {
		if len(row) == 0 {
			continue
		}
		g[i] = make([]string, len(row))
		for j, cell := range row {
			if cell.IsMerged && !cell.IsMergeRoot {
				continue
			}
			g[i][j] = cell.Value
		}
	}
	return g
}
