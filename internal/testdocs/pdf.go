package testdocs

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// PDF describes a PDF with one entry of plain text per page. An empty entry
// produces a blank page.
type PDF struct {
	Title  string
	Author string
	Pages  []string
}

// Bytes renders the document with gofpdf.
func (p PDF) Bytes() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 15)
	if p.Title != "" {
		pdf.SetTitle(p.Title, true)
	}
	if p.Author != "" {
		pdf.SetAuthor(p.Author, true)
	}

	for _, text := range p.Pages {
		pdf.AddPage()
		if text == "" {
			continue
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5, text, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
