// Package pdfdoc opens PDF files through MuPDF and exposes what the page
// extractor needs: per-page text, per-page rasters and document metadata.
package pdfdoc

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/tsawler/docmark/model"
)

// ErrPageRange is returned for a page index outside the document.
var ErrPageRange = errors.New("page index out of range")

// Document is an open PDF.
type Document struct {
	doc   *fitz.Document
	pages int
}

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	n := doc.NumPage()
	if n < 0 {
		doc.Close()
		return nil, fmt.Errorf("opening PDF: cannot count pages")
	}
	return &Document{doc: doc, pages: n}, nil
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	return d.pages
}

func (d *Document) check(i int) error {
	if d.doc == nil {
		return fmt.Errorf("document is closed")
	}
	if i < 0 || i >= d.pages {
		return fmt.Errorf("%w: %d (document has %d)", ErrPageRange, i, d.pages)
	}
	return nil
}

// PageText returns the text layer of page i (0-indexed) in MuPDF's reading
// order.
func (d *Document) PageText(i int) (string, error) {
	if err := d.check(i); err != nil {
		return "", err
	}
	text, err := d.doc.Text(i)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", i+1, err)
	}
	return text, nil
}

// RenderPage rasterizes page i at the given resolution.
func (d *Document) RenderPage(i int, dpi float64) (image.Image, error) {
	if err := d.check(i); err != nil {
		return nil, err
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("invalid resolution %v", dpi)
	}
	img, err := d.doc.ImageDPI(i, dpi)
	if err != nil {
		return nil, fmt.Errorf("page %d render: %w", i+1, err)
	}
	return img, nil
}

// Metadata returns the Info dictionary title and author.
func (d *Document) Metadata() model.Metadata {
	if d.doc == nil {
		return model.Metadata{}
	}
	info := d.doc.Metadata()
	return model.Metadata{
		Title:  strings.TrimSpace(info["title"]),
		Author: strings.TrimSpace(info["author"]),
	}
}

// Close releases the MuPDF document.
func (d *Document) Close() error {
	if d.doc == nil {
		return nil
	}
	err := d.doc.Close()
	d.doc = nil
	return err
}
