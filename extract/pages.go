package extract

import (
	"image"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/docmark/logging"
	"github.com/tsawler/docmark/model"
)

// PageSource is a paginated document with a text layer that can be
// rasterized.
type PageSource interface {
	PageText(i int) (string, error)
	RenderPage(i int, dpi float64) (image.Image, error)
}

// Pages extracts text pages. Pages whose text layer is too short to be real
// content are rendered and run through the Recognizer, when there is one.
type Pages struct {
	Source     PageSource
	Recognizer Recognizer // nil when recognition is unavailable
	Log        logging.Logger

	// MinTextLength is the number of characters the trimmed text layer must
	// exceed to be used without recognition.
	MinTextLength int
	DPI           float64
}

// NewPages returns a page extractor with the default threshold and
// resolution.
func NewPages(src PageSource, rec Recognizer, log logging.Logger) *Pages {
	return &Pages{
		Source:        src,
		Recognizer:    rec,
		Log:           log,
		MinTextLength: DefaultMinTextLength,
		DPI:           DefaultDPI,
	}
}

// Extract implements Extractor.
func (p *Pages) Extract(u model.Unit) model.Result {
	raw, err := p.Source.PageText(u.Index())
	if err != nil {
		return model.Failed(err)
	}
	text := strings.TrimSpace(raw)

	if utf8.RuneCountInString(text) > p.MinTextLength {
		return model.Result{Text: text, Strategy: model.Direct}
	}

	if p.Recognizer != nil {
		if recognized := p.recognize(u); recognized != "" {
			return model.Result{Text: recognized, Strategy: model.Recognized}
		}
	}

	if text != "" {
		return model.Result{Text: text, Strategy: model.Direct}
	}
	return model.Result{Strategy: model.None}
}

// recognize renders and recognizes one page. Failures are logged and yield
// "".
func (p *Pages) recognize(u model.Unit) string {
	log := p.Log
	if log == nil {
		log = logging.NoOp()
	}

	dpi := p.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	img, err := p.Source.RenderPage(u.Index(), dpi)
	if err != nil {
		log.Warn("page render failed", "unit", u.Ordinal, "error", err)
		return ""
	}

	text, err := p.Recognizer.Recognize(img)
	if err != nil {
		log.Warn("text recognition failed", "unit", u.Ordinal, "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}
