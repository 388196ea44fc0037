// Package main contains Mage build targets for docmark developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "docmark"
	cmdPkg  = "./cmd/docmark"
	ocrTag  = "ocr"
)

// Default is the target run by a bare `mage`.
var Default = Build

// Build compiles the CLI binary into bin/ without text recognition.
func Build() error {
	return build(binName)
}

// BuildOCR compiles the CLI binary with Tesseract support into bin/.
// Tesseract and its development headers must be installed.
func BuildOCR() error {
	return build(binName+"-ocr", "-tags", ocrTag)
}

func build(name string, flags ...string) error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, name)
	args := append([]string{"build"}, flags...)
	args = append(args, "-o", out, cmdPkg)
	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the test suite without the OCR build tag.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestOCR runs the test suite with Tesseract support.
func TestOCR() error {
	return sh.RunV("go", "test", "-tags", ocrTag, "./...")
}

// Vet runs go vet for both build configurations.
func Vet() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "-tags", ocrTag, "./...")
}

// Check vets and tests the default build.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes build output.
func Clean() error {
	return os.RemoveAll(binDir)
}
