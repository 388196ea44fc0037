// Package testdocs builds small but well-formed PDF, PPTX and XLSX files for
// tests.
package testdocs

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Builder is a document description that can render itself to bytes.
type Builder interface {
	Bytes() ([]byte, error)
}

// Write renders b into dir/name and returns the path.
func Write(t testing.TB, dir, name string, b Builder) string {
	t.Helper()
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("building %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Part is one raw entry in an OOXML package.
type Part struct {
	Name string
	Body string
}

// Zip packs parts into a ZIP archive in the given order.
func Zip(parts []Part) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.Create(p.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.Body)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Raw is a Builder for hand-written bytes, such as corrupt files.
type Raw []byte

// Bytes returns the bytes unchanged.
func (r Raw) Bytes() ([]byte, error) { return r, nil }

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func coreProps(title, creator string) string {
	return xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">` +
		`<dc:title>` + esc(title) + `</dc:title>` +
		`<dc:creator>` + esc(creator) + `</dc:creator>` +
		`</cp:coreProperties>`
}

func relationships(rels ...string) string {
	return xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		strings.Join(rels, "") + `</Relationships>`
}

func relationship(id, typ, target string) string {
	return `<Relationship Id="` + id + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/` +
		typ + `" Target="` + target + `"/>`
}
