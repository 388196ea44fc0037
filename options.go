package docmark

import (
	"io"

	"github.com/tsawler/docmark/extract"
	"github.com/tsawler/docmark/logging"
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Text recognition for pages without a usable text layer; nil disables it.
	recognizer extract.Recognizer

	// Page extraction
	minTextLength int
	dpi           float64

	// Output
	contents bool

	// Reporting
	log      logging.Logger
	progress io.Writer
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		recognizer:    nil,
		minTextLength: extract.DefaultMinTextLength,
		dpi:           extract.DefaultDPI,
		contents:      false,
		log:           logging.NoOp(),
		progress:      io.Discard,
	}
}

// clone creates a copy of ConvertOptions. The recognizer, logger and
// progress writer are shared.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		recognizer:    o.recognizer,
		minTextLength: o.minTextLength,
		dpi:           o.dpi,
		contents:      o.contents,
		log:           o.log,
		progress:      o.progress,
	}
}

// assembly returns the per-document options derived from o.
func (o ConvertOptions) assembly(noun string) AssembleOptions {
	return AssembleOptions{
		Noun:     noun,
		Contents: o.contents,
		Log:      o.log,
		Progress: o.progress,
	}
}
