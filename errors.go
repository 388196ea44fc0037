package docmark

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to document-boundary errors.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeOpenFailed       = "DOCUMENT_OPEN_FAILED"
	CodeConversionFailed = "CONVERSION_FAILED"
	CodeWriteFailed      = "OUTPUT_WRITE_FAILED"
)

func invalidInput(path string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("invalid input %s", path)).
		WithTextCode(CodeInvalidInput)
}

func openFailed(path string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, fmt.Sprintf("cannot open %s", path)).
		WithTextCode(CodeOpenFailed)
}

func conversionFailed(path string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, fmt.Sprintf("cannot convert %s", path)).
		WithTextCode(CodeConversionFailed)
}

func writeFailed(path string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, fmt.Sprintf("cannot write %s", path)).
		WithTextCode(CodeWriteFailed)
}

// ErrorCode returns the text code of a document-boundary error, or "" when
// err did not come from a conversion.
func ErrorCode(err error) string {
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return e.TextCode
	}
	return ""
}
