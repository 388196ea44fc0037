package xlsx

import "encoding/xml"

// workbookXML represents the xl/workbook.xml file structure.
type workbookXML struct {
	XMLName    xml.Name       `xml:"workbook"`
	WorkbookPr *workbookPrXML `xml:"workbookPr"`
	Sheets     sheetsXML      `xml:"sheets"`
}

type workbookPrXML struct {
	Date1904 bool `xml:"date1904,attr"`
}

type sheetsXML struct {
	Sheet []sheetRefXML `xml:"sheet"`
}

type sheetRefXML struct {
	Name    string `xml:"name,attr"`
	SheetID string `xml:"sheetId,attr"`
	State   string `xml:"state,attr"` // visible, hidden, veryHidden
	RID     string `xml:"id,attr"`    // r:id attribute for relationship
}

// worksheetXML represents a xl/worksheets/sheet*.xml file structure.
type worksheetXML struct {
	XMLName    xml.Name       `xml:"worksheet"`
	SheetData  sheetDataXML   `xml:"sheetData"`
	MergeCells *mergeCellsXML `xml:"mergeCells"`
}

type sheetDataXML struct {
	Rows []rowXML `xml:"row"`
}

type rowXML struct {
	R     int       `xml:"r,attr"` // Row number (1-indexed, optional)
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	R  string        `xml:"r,attr"` // Cell reference (e.g., "A1"), optional
	T  string        `xml:"t,attr"` // s, n, b, d, str, inlineStr, e
	S  int           `xml:"s,attr"` // Style index
	V  string        `xml:"v"`      // Cached value
	F  string        `xml:"f"`      // Formula text
	Is *inlineStrXML `xml:"is"`
}

type inlineStrXML struct {
	T string `xml:"t"`
	R []rXML `xml:"r"`
}

func (s *inlineStrXML) text() string {
	if s == nil {
		return ""
	}
	return joinRuns(s.T, s.R)
}

type mergeCellsXML struct {
	MergeCell []mergeCellXML `xml:"mergeCell"`
}

type mergeCellXML struct {
	Ref string `xml:"ref,attr"` // e.g., "A1:B2"
}

// sharedStringsXML represents the xl/sharedStrings.xml file structure.
type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	SI      []siXML  `xml:"si"`
}

type siXML struct {
	T string `xml:"t"` // Simple text
	R []rXML `xml:"r"` // Rich text runs
}

type rXML struct {
	T string `xml:"t"`
}

func joinRuns(t string, runs []rXML) string {
	if len(runs) == 0 {
		return t
	}
	out := t
	for _, run := range runs {
		out += run.T
	}
	return out
}

// stylesXML represents the parts of xl/styles.xml needed to recognize dates.
type stylesXML struct {
	XMLName xml.Name    `xml:"styleSheet"`
	NumFmts *numFmtsXML `xml:"numFmts"`
	CellXfs *cellXfsXML `xml:"cellXfs"`
}

type numFmtsXML struct {
	NumFmt []numFmtXML `xml:"numFmt"`
}

type numFmtXML struct {
	NumFmtID   int    `xml:"numFmtId,attr"`
	FormatCode string `xml:"formatCode,attr"`
}

type cellXfsXML struct {
	Xf []xfXML `xml:"xf"`
}

type xfXML struct {
	NumFmtID int `xml:"numFmtId,attr"`
}
