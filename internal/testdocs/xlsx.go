package testdocs

import (
	"fmt"
	"strconv"
	"strings"
)

// Workbook describes an XLSX file. Styles, when set, is written as
// xl/styles.xml.
type Workbook struct {
	Title   string
	Creator string
	Styles  string
	Sheets  []Sheet
}

// Sheet is one worksheet. Numeric-looking cells are written as numbers,
// everything else through the shared string table, and empty cells are
// omitted. XML, when set, replaces the generated worksheet part.
type Sheet struct {
	Name   string
	Rows   [][]string
	Merges []string
	XML    string
}

// Bytes renders the workbook.
func (w Workbook) Bytes() ([]byte, error) {
	var shared []string
	index := make(map[string]int)
	intern := func(s string) int {
		if i, ok := index[s]; ok {
			return i
		}
		index[s] = len(shared)
		shared = append(shared, s)
		return index[s]
	}

	var sheetParts []Part
	var sheetRefs, rels []string
	for i, sh := range w.Sheets {
		n := i + 1
		body := sh.XML
		if body == "" {
			body = worksheetXML(sh, intern)
		}
		sheetParts = append(sheetParts, Part{Name: fmt.Sprintf("xl/worksheets/sheet%d.xml", n), Body: body})
		sheetRefs = append(sheetRefs, fmt.Sprintf(`<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, esc(sh.Name), n, n))
		rels = append(rels, relationship(fmt.Sprintf("rId%d", n), "worksheet", fmt.Sprintf("worksheets/sheet%d.xml", n)))
	}
	rels = append(rels, relationship(fmt.Sprintf("rId%d", len(w.Sheets)+1), "sharedStrings", "sharedStrings.xml"))

	var sst strings.Builder
	sst.WriteString(xmlHeader)
	fmt.Fprintf(&sst, `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`, len(shared), len(shared))
	for _, s := range shared {
		sst.WriteString(`<si><t xml:space="preserve">` + esc(s) + `</t></si>`)
	}
	sst.WriteString(`</sst>`)

	parts := []Part{
		{Name: "[Content_Types].xml", Body: xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
			`</Types>`},
		{Name: "_rels/.rels", Body: relationships(
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>`,
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>`,
		)},
		{Name: "docProps/core.xml", Body: coreProps(w.Title, w.Creator)},
		{Name: "xl/workbook.xml", Body: xmlHeader +
			`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
			`<sheets>` + strings.Join(sheetRefs, "") + `</sheets></workbook>`},
		{Name: "xl/_rels/workbook.xml.rels", Body: relationships(rels...)},
		{Name: "xl/sharedStrings.xml", Body: sst.String()},
	}
	if w.Styles != "" {
		parts = append(parts, Part{Name: "xl/styles.xml", Body: w.Styles})
	}
	return Zip(append(parts, sheetParts...))
}

func worksheetXML(sh Sheet, intern func(string) int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
	for r, row := range sh.Rows {
		fmt.Fprintf(&b, `<row r="%d">`, r+1)
		for c, v := range row {
			if v == "" {
				continue
			}
			ref := cellRef(c, r)
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				fmt.Fprintf(&b, `<c r="%s"><v>%s</v></c>`, ref, v)
			} else {
				fmt.Fprintf(&b, `<c r="%s" t="s"><v>%d</v></c>`, ref, intern(v))
			}
		}
		b.WriteString(`</row>`)
	}
	b.WriteString(`</sheetData>`)
	if len(sh.Merges) > 0 {
		fmt.Fprintf(&b, `<mergeCells count="%d">`, len(sh.Merges))
		for _, m := range sh.Merges {
			fmt.Fprintf(&b, `<mergeCell ref="%s"/>`, m)
		}
		b.WriteString(`</mergeCells>`)
	}
	b.WriteString(`</worksheet>`)
	return b.String()
}

func cellRef(col, row int) string {
	name := ""
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}
	return fmt.Sprintf("%s%d", name, row+1)
}
