package docmark

import (
	"io"
	"path/filepath"

	"github.com/tsawler/docmark/extract"
	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/pdfdoc"
	"github.com/tsawler/docmark/pptx"
	"github.com/tsawler/docmark/xlsx"
)

// Document is an opened input file: its units in source order, its metadata
// and the content source they are read from. A Document must be closed.
type Document struct {
	Format format.Format
	Meta   model.Metadata
	Units  []model.Unit

	// Content sources (only one is set, based on format)
	pages  *pdfdoc.Document
	slides *pptx.Reader
	sheets *xlsx.Reader

	closer io.Closer
}

// Open verifies path and opens it with the content source for its format.
func Open(path string) (*Document, error) {
	f, err := format.Verify(path)
	if err != nil {
		return nil, invalidInput(path, err)
	}

	d := &Document{Format: f}
	noun := f.UnitNoun()

	switch f {
	case format.PDF:
		src, err := pdfdoc.Open(path)
		if err != nil {
			return nil, openFailed(path, err)
		}
		d.pages, d.closer = src, src
		d.Meta = src.Metadata()
		d.Units = model.NumberedUnits(noun, src.NumPages())

	case format.PPTX:
		src, err := pptx.Open(path)
		if err != nil {
			return nil, openFailed(path, err)
		}
		d.slides, d.closer = src, src
		d.Meta = src.Metadata()
		d.Units = model.NumberedUnits(noun, src.SlideCount())

	case format.XLSX:
		src, err := xlsx.Open(path)
		if err != nil {
			return nil, openFailed(path, err)
		}
		d.sheets, d.closer = src, src
		d.Meta = src.Metadata()
		d.Units = model.NamedUnits(noun, src.SheetNames())
	}

	d.Meta.SourceName = filepath.Base(path)
	return d, nil
}

// Close releases the content source. It is safe to call more than once.
func (d *Document) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

// extractor returns the unit extractor for the document's format.
func (d *Document) extractor(opts ConvertOptions) extract.Extractor {
	switch {
	case d.pages != nil:
		p := extract.NewPages(d.pages, opts.recognizer, opts.log)
		p.MinTextLength = opts.minTextLength
		p.DPI = opts.dpi
		return p
	case d.slides != nil:
		return &extract.Slides{Source: d.slides}
	default:
		return &extract.Sheets{Source: d.sheets}
	}
}
