//go:build ocr

// Package ocr recognizes text in page images with Tesseract.
//
// This implementation wraps Tesseract via gosseract and is compiled with the
// "ocr" build tag. It requires Tesseract and its language data. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Enabled reports whether OCR support was compiled in.
const Enabled = true

// Client wraps Tesseract for OCR operations. A Client is not safe for
// concurrent use.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Version returns the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}

// Languages returns the installed Tesseract language packs.
func Languages() ([]string, error) {
	return gosseract.GetAvailableLanguages()
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// SetLanguage sets the language(s) for recognition, "+" separated
// (e.g. "eng+deu").
func (c *Client) SetLanguage(lang string) error {
	var langs []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		return fmt.Errorf("no OCR language given")
	}
	return c.client.SetLanguage(langs...)
}

// RecognizeImage performs OCR on encoded image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("OCR client is closed")
	}
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// Recognize prepares a rendered page and runs OCR on it.
func (c *Client) Recognize(img image.Image) (string, error) {
	data, err := Encode(img)
	if err != nil {
		return "", err
	}
	return c.RecognizeImage(data)
}
