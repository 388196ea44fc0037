// Package table turns rectangular cell data into Markdown table blocks.
//
// The same assembler serves worksheet ranges and tables found on slides. The
// first row of a table is always rendered as the header row, whether or not
// the source had a conceptual header.
package table

import (
	"strings"

	"github.com/tsawler/docmark/normalize"
)

// EmptyMarker is emitted in place of a table that has no content.
const EmptyMarker = "*Empty sheet*"

// Grid is a 2-D slice of cell values in source order. A blank or
// whitespace-only string is an empty cell. Rows may have different lengths
// until the grid is trimmed.
type Grid [][]string

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the column count of the first row, which after Trim is the
// column count of every row.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Empty reports whether the grid has no effective content.
func (g Grid) Empty() bool {
	t := Trim(g)
	return t.Rows() == 0 || t.Cols() == 0
}

// Trim drops fully empty rows, cuts trailing empty columns and pads every
// remaining row to the effective column count. The effective column count is
// the largest (index of last non-empty cell + 1) over all rows. The input grid
// is not modified.
func Trim(g Grid) Grid {
	rows := make(Grid, 0, len(g))
	cols := 0

	for _, row := range g {
		last := lastNonEmpty(row)
		if last < 0 {
			continue
		}
		if last+1 > cols {
			cols = last + 1
		}
		rows = append(rows, row)
	}

	if cols == 0 {
		return nil
	}

	out := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]string, cols)
		copy(cells, row)
		out[i] = cells
	}
	return out
}

// Assemble renders the grid as a Markdown table. Every cell goes through
// normalize.TableCell. A grid without effective rows or columns yields
// EmptyMarker.
func Assemble(g Grid) string {
	t := Trim(g)
	if t.Rows() == 0 || t.Cols() == 0 {
		return EmptyMarker
	}

	var b strings.Builder

	writeRow(&b, t[0])

	b.WriteString("\n|")
	for i := 0; i < t.Cols(); i++ {
		b.WriteString(" --- |")
	}

	for _, row := range t[1:] {
		b.WriteString("\n")
		writeRow(&b, row)
	}

	return b.String()
}

func writeRow(b *strings.Builder, row []string) {
	b.WriteString("|")
	for _, cell := range row {
		b.WriteString(" ")
		b.WriteString(normalize.TableCell(cell))
		b.WriteString(" |")
	}
}

func lastNonEmpty(row []string) int {
	for i := len(row) - 1; i >= 0; i-- {
		if strings.TrimSpace(row[i]) != "" {
			return i
		}
	}
	return -1
}
