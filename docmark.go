// Package docmark converts PDF documents, PowerPoint decks and Excel
// workbooks into one normalized Markdown file each.
//
// A document is read as an ordered list of units (pages, slides or
// worksheets). Each unit is extracted with the strategy that suits its kind:
// a PDF page uses its text layer, or text recognition when the layer is too
// short; a slide is rendered shape by shape; a worksheet becomes a Markdown
// table. A unit that cannot be read is left out of the output and counted,
// and never stops the document.
//
// Basic usage:
//
//	md, tally, err := docmark.New().Convert("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(md)
//	fmt.Println(tally) // direct: 12, recognized: 2, table: 0, none: 1
//
// Configuration uses chained calls. Each call returns a new Converter:
//
//	conv := docmark.New().
//	    WithRecognizer(client). // e.g. an *ocr.Client
//	    WithContents(true).
//	    WithProgress(os.Stdout)
//
//	out, _, err := conv.ConvertFile("deck.pptx", "") // writes deck.md
//
// Converting a directory:
//
//	outcomes, err := conv.ConvertAll("inbox", ".xlsx")
//	fmt.Println(docmark.Summarize(outcomes)) // Converted 3 of 4 files
//
// The output structure is stable:
//
//	# <title>
//
//	*Converted from: <file name>*
//
//	*Author: <author>*
//
//	---
//
//	## <unit label>
//
//	<body>
//
//	---
//
// The author line appears only when the document names one, and unit
// headings only when the document has more than one unit.
package docmark

// Must is a helper that panics if err is non-nil.
// It simplifies code where errors are unexpected:
//
//	md := docmark.Must(docmark.New().ConvertString("report.pdf"))
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// ConvertString is Convert without the tally.
func (c *Converter) ConvertString(path string) (string, error) {
	md, _, err := c.Convert(path)
	return md, err
}
