package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{PPTX, "PPTX"},
		{XLSX, "XLSX"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.String())
	}
}

func TestFormat_ExtensionAndNoun(t *testing.T) {
	tests := []struct {
		format Format
		ext    string
		noun   string
	}{
		{PDF, ".pdf", "Page"},
		{PPTX, ".pptx", "Slide"},
		{XLSX, ".xlsx", "Sheet"},
		{Unknown, "", "Unit"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ext, tt.format.Extension())
		assert.Equal(t, tt.noun, tt.format.UnitNoun())
	}
	assert.Equal(t, []string{".pdf", ".pptx", ".xlsx"}, Extensions())
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.pdf", PDF},
		{"document.PDF", PDF},
		{"deck.pptx", PPTX},
		{"deck.PpTx", PPTX},
		{"book.xlsx", XLSX},
		{"book.XLSX", XLSX},
		{"legacy.xls", Unknown},
		{"document.docx", Unknown},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.pdf", PDF},
		{"archive.tar.xlsx", XLSX},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.filename), tt.filename)
	}
}

func TestDetectFromMagic(t *testing.T) {
	assert.Equal(t, PDF, DetectFromMagic([]byte("%PDF-1.7\n")))
	assert.Equal(t, Unknown, DetectFromMagic([]byte{0x50, 0x4B, 0x03, 0x04}))
	assert.Equal(t, Unknown, DetectFromMagic([]byte("%P")))
}

func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<x/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{name: "pdf", data: []byte("%PDF-1.4\n%..."), want: PDF},
		{name: "pdf after junk", data: []byte("\x00\x00junk%PDF-1.4"), want: PDF},
		{name: "xlsx", data: zipWith(t, "[Content_Types].xml", "xl/workbook.xml"), want: XLSX},
		{name: "pptx", data: zipWith(t, "[Content_Types].xml", "ppt/presentation.xml"), want: PPTX},
		{name: "docx", data: zipWith(t, "[Content_Types].xml", "word/document.xml"), want: Unknown},
		{name: "text", data: []byte("hello"), want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}

	got, err := Verify(write("ok.xlsx", zipWith(t, "xl/workbook.xml")))
	require.NoError(t, err)
	assert.Equal(t, XLSX, got)

	got, err = Verify(write("garbage.pptx", []byte("not a zip")))
	require.NoError(t, err, "unreadable containers are left to the format reader")
	assert.Equal(t, PPTX, got)

	_, err = Verify(write("swapped.pdf", zipWith(t, "ppt/presentation.xml")))
	assert.True(t, errors.Is(err, ErrMismatch))

	_, err = Verify(write("notes.txt", []byte("text")))
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = Verify(filepath.Join(dir, "missing.pdf"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
