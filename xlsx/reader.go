// Package xlsx reads worksheets out of XLSX (Office Open XML Spreadsheet)
// workbooks. Formulas are reported by their cached values.
package xlsx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/docmark/internal/opc"
	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/table"
)

// ErrSheetRange is returned for a sheet index outside the workbook.
var ErrSheetRange = errors.New("sheet index out of range")

const workbookPart = "xl/workbook.xml"

// Reader provides access to XLSX document content. Worksheets are parsed on
// first access and cached.
type Reader struct {
	pkg     *opc.Package
	book    workbookXML
	shared  []string
	styles  *stylesXML
	meta    model.Metadata
	parts   []string // worksheet part per sheet, in workbook order
	sheets  []*Sheet
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	pkg, err := opc.Open(filename, workbookPart)
	if err != nil {
		return nil, err
	}
	r := &Reader{pkg: pkg}
	if err := r.load(); err != nil {
		pkg.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) load() error {
	if err := r.pkg.Decode(workbookPart, &r.book); err != nil {
		return fmt.Errorf("parsing workbook: %w", err)
	}
	if len(r.book.Sheets.Sheet) == 0 {
		return errors.New("no worksheets found")
	}

	var sst sharedStringsXML
	if _, err := r.pkg.DecodeOptional("xl/sharedStrings.xml", &sst); err != nil {
		return fmt.Errorf("parsing shared strings: %w", err)
	}
	r.shared = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		r.shared[i] = joinRuns(si.T, si.R)
	}

	// A broken styles part only costs date rendering.
	styles := &stylesXML{}
	if ok, err := r.pkg.DecodeOptional("xl/styles.xml", styles); ok && err == nil {
		r.styles = styles
	}
	r.meta = r.pkg.Metadata()

	targets := make(map[string]string)
	for _, rel := range r.pkg.Relationships(workbookPart) {
		targets[rel.ID] = opc.Resolve(workbookPart, rel.Target)
	}
	r.parts = make([]string, len(r.book.Sheets.Sheet))
	for i, s := range r.book.Sheets.Sheet {
		if part, ok := targets[s.RID]; ok {
			r.parts[i] = part
		} else {
			r.parts[i] = fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		}
	}
	r.sheets = make([]*Sheet, len(r.parts))
	return nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return r.pkg.Close()
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all sheets in workbook order.
func (r *Reader) SheetNames() []string {
	names := make([]string, 0, len(r.book.Sheets.Sheet))
	for _, s := range r.book.Sheets.Sheet {
		names = append(names, s.Name)
	}
	return names
}

// Sheet returns the sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("%w: %d (workbook has %d)", ErrSheetRange, index, len(r.sheets))
	}
	if cached := r.sheets[index]; cached != nil {
		return cached, nil
	}

	entry := r.book.Sheets.Sheet[index]
	var ws worksheetXML
	if err := r.pkg.Decode(r.parts[index], &ws); err != nil {
		return nil, fmt.Errorf("sheet %q: %w", entry.Name, err)
	}

	sheet := r.buildSheet(&ws)
	sheet.Name = entry.Name
	sheet.Index = index
	sheet.Hidden = entry.State == "hidden" || entry.State == "veryHidden"
	r.sheets[index] = sheet
	return sheet, nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for i, s := range r.book.Sheets.Sheet {
		if s.Name == name {
			return r.Sheet(i)
		}
	}
	return nil, fmt.Errorf("no sheet named %q", name)
}

// Grid returns the values of the sheet at index as a table grid.
func (r *Reader) Grid(index int) (table.Grid, error) {
	sheet, err := r.Sheet(index)
	if err != nil {
		return nil, err
	}
	return sheet.Grid(), nil
}

// Metadata returns the workbook title and author from docProps/core.xml.
func (r *Reader) Metadata() model.Metadata {
	return r.meta
}

// buildSheet lays out worksheet cells on a grid. Rows and cells without
// explicit references are placed after their predecessor.
func (r *Reader) buildSheet(ws *worksheetXML) *Sheet {
	sheet := &Sheet{}
	row := -1
	for _, rx := range ws.SheetData.Rows {
		row++
		if rx.R > 0 {
			row = rx.R - 1
		}

		var cells []Cell
		col := -1
		for _, cx := range rx.Cells {
			col++
			if c, _, err := ParseCellRef(cx.R); err == nil {
				col = c
			}
			if grow := col + 1 - len(cells); grow > 0 {
				cells = append(cells, make([]Cell, grow)...)
			}
			cells[col] = r.decodeCell(cx)
		}

		if grow := row + 1 - len(sheet.Rows); grow > 0 {
			sheet.Rows = append(sheet.Rows, make([][]Cell, grow)...)
		}
		sheet.Rows[row] = cells
	}

	if ws.MergeCells != nil {
		for _, mc := range ws.MergeCells.MergeCell {
			c1, r1, c2, r2, err := ParseRangeRef(mc.Ref)
			if err != nil {
				continue
			}
			region := MergedRegion{StartRow: r1, StartCol: c1, EndRow: r2, EndCol: c2}
			sheet.MergedRegions = append(sheet.MergedRegions, region)
			sheet.markMerged(region)
		}
	}
	return sheet
}

// markMerged flags the cells a region covers that exist on the grid.
func (s *Sheet) markMerged(m MergedRegion) {
	for row := m.StartRow; row <= min(m.EndRow, len(s.Rows)-1); row++ {
		for col := m.StartCol; col <= min(m.EndCol, len(s.Rows[row])-1); col++ {
			cell := &s.Rows[row][col]
			cell.IsMerged = true
			cell.IsMergeRoot = row == m.StartRow && col == m.StartCol
		}
	}
}

func (r *Reader) decodeCell(cx cellXML) Cell {
	cell := Cell{Formula: cx.F}

	switch cx.T {
	case "s": // Shared string
		cell.Type = CellTypeString
		idx, err := strconv.Atoi(strings.TrimSpace(cx.V))
		if err == nil && idx >= 0 && idx < len(r.shared) {
			cell.Value = r.shared[idx]
		}
	case "b":
		cell.Type = CellTypeBoolean
		if strings.TrimSpace(cx.V) == "1" {
			cell.Value = "TRUE"
		} else {
			cell.Value = "FALSE"
		}
	case "e":
		cell.Type = CellTypeError
		cell.Value = cx.V
	case "str", "d": // Formula string result, ISO 8601 date
		cell.Type = CellTypeString
		cell.Value = cx.V
	case "inlineStr":
		cell.Type = CellTypeString
		cell.Value = cx.Is.text()
	default: // Number, or formula without a cached value
		switch {
		case cx.V != "":
			cell.Type = CellTypeNumber
			cell.Value = cx.V
			if kind := r.dateKind(cx.S); kind != notDate {
				if v, ok := formatDate(cx.V, kind, r.date1904()); ok {
					cell.Type = CellTypeDate
					cell.Value = v
				}
			}
		case cx.F != "":
			cell.Type = CellTypeFormula
		}
	}
	return cell
}

// dateKind reports how the number format of style index s renders.
func (r *Reader) dateKind(s int) dateKind {
	if r.styles == nil || r.styles.CellXfs == nil || s < 0 || s >= len(r.styles.CellXfs.Xf) {
		return notDate
	}
	id := r.styles.CellXfs.Xf[s].NumFmtID
	if kind, ok := builtinDateFormats[id]; ok {
		return kind
	}
	if r.styles.NumFmts != nil {
		for _, nf := range r.styles.NumFmts.NumFmt {
			if nf.NumFmtID == id {
				return classifyFormat(nf.FormatCode)
			}
		}
	}
	return notDate
}

func (r *Reader) date1904() bool {
	return r.book.WorkbookPr != nil && r.book.WorkbookPr.Date1904
}
