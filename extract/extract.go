// Package extract decides how the content of one unit (a page, a slide or a
// worksheet) is obtained and returns it tagged with the strategy used.
//
// There is one Extractor per document kind, chosen once per document. Faults
// in a content source never escape a unit: Safe turns returned errors and
// panics into an empty result tagged model.None.
package extract

import (
	"fmt"
	"image"

	"github.com/tsawler/docmark/logging"
	"github.com/tsawler/docmark/model"
)

// Defaults for the page extractor.
const (
	DefaultMinTextLength = 50
	DefaultDPI           = 300
)

// Extractor produces the content of one unit.
type Extractor interface {
	Extract(u model.Unit) model.Result
}

// Recognizer reads text out of a rendered page.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// Safe runs e on u and contains any failure. A returned error or a panic
// becomes model.Failed and is logged with the unit ordinal.
func Safe(e Extractor, u model.Unit, log logging.Logger) (res model.Result) {
	if log == nil {
		log = logging.NoOp()
	}

	defer func() {
		if r := recover(); r != nil {
			res = model.Failed(fmt.Errorf("unit %d: panic: %v", u.Ordinal, r))
		}
		if res.Err != nil {
			res = model.Failed(res.Err)
			log.Warn("unit extraction failed", "unit", u.Ordinal, "label", u.Label, "error", res.Err)
		}
	}()

	return e.Extract(u)
}
