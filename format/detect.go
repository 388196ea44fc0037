// Package format identifies which kind of document a file holds.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for files whose extension names no supported format.
var ErrUnsupported = errors.New("unsupported file format")

// ErrMismatch is returned when a file's content does not match its extension.
var ErrMismatch = errors.New("file content does not match extension")

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a paginated PDF document.
	PDF
	// PPTX indicates a Microsoft PowerPoint (.pptx) slide deck.
	PPTX
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
)

// Supported lists the formats that can be converted.
var Supported = []Format{PDF, PPTX, XLSX}

type info struct {
	name, ext, noun string
	partPrefix      string // top-level folder of the OOXML package
}

var infos = map[Format]info{
	PDF:  {name: "PDF", ext: ".pdf", noun: "Page"},
	PPTX: {name: "PPTX", ext: ".pptx", noun: "Slide", partPrefix: "ppt/"},
	XLSX: {name: "XLSX", ext: ".xlsx", noun: "Sheet", partPrefix: "xl/"},
}

// String returns the string representation of the format.
func (f Format) String() string {
	if i, ok := infos[f]; ok {
		return i.name
	}
	return "Unknown"
}

// Extension returns the file extension for the format, or "" for Unknown.
func (f Format) Extension() string {
	return infos[f].ext
}

// UnitNoun names one page-like unit of the format.
func (f Format) UnitNoun() string {
	if i, ok := infos[f]; ok {
		return i.noun
	}
	return "Unit"
}

// Extensions returns the extensions of all supported formats.
func Extensions() []string {
	exts := make([]string, 0, len(Supported))
	for _, f := range Supported {
		exts = append(exts, f.Extension())
	}
	return exts
}

// Detect determines file format from the filename extension, ignoring case.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range Supported {
		if ext != "" && infos[f].ext == ext {
			return f
		}
	}
	return Unknown
}

// DetectFromMagic checks leading magic bytes. It recognizes PDF directly;
// ZIP containers return Unknown because telling PPTX from XLSX needs the
// archive listing (see DetectFromReader).
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pdfMagic) {
		return PDF
	}
	return Unknown
}

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
)

// DetectFromReader inspects content to determine the format. It can tell the
// ZIP-based formats apart by their part names.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, pdfMagic) {
		return PDF, nil
	}
	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	// Some producers put junk before the header and MuPDF accepts that.
	if hasPDFHeader(r) {
		return PDF, nil
	}
	return Unknown, nil
}

// hasPDFHeader looks for %PDF in the first kilobyte.
func hasPDFHeader(r io.ReaderAt) bool {
	head := make([]byte, 1024)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return false
	}
	return bytes.Contains(head[:n], pdfMagic)
}

// detectZIPFormat distinguishes OOXML packages by their top-level part folders.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, entry := range zr.File {
		for _, f := range Supported {
			if prefix := infos[f].partPrefix; prefix != "" && strings.HasPrefix(entry.Name, prefix) {
				return f, nil
			}
		}
	}
	return Unknown, nil
}

// Verify opens path and checks that its content is consistent with its
// extension. It returns the detected format, ErrUnsupported for unknown
// extensions and ErrMismatch when the content disagrees.
func Verify(path string) (Format, error) {
	want := Detect(path)
	if want == Unknown {
		return Unknown, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	if info.IsDir() {
		return Unknown, fmt.Errorf("%s is a directory", path)
	}

	got, err := DetectFromReader(f, info.Size())
	if err != nil {
		// An unreadable container is reported by the format reader itself.
		return want, nil
	}
	if got != Unknown && got != want {
		return Unknown, fmt.Errorf("%w: %s looks like %s", ErrMismatch, filepath.Base(path), got)
	}
	return want, nil
}
