package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/ocr"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report which conversion features are available",
		Long: `Check reports the PDF engine, whether text recognition was compiled in, and
the Tesseract version and language packs it can use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Dependency Check:")
			fmt.Fprintln(w, "  PDF engine (MuPDF via go-fitz): OK")
			fmt.Fprintf(w, "  Formats: %s\n", strings.Join(format.Extensions(), ", "))

			if !ocr.Enabled {
				fmt.Fprintln(w, "  Text recognition: NOT COMPILED IN")
				fmt.Fprintln(w, "    Rebuild with: go build -tags ocr ./cmd/docmark")
				return nil
			}
			fmt.Fprintln(w, "  Text recognition: OK")

			langs, err := ocr.Languages()
			if err != nil {
				fmt.Fprintf(w, "  Tesseract: NOT FOUND (%v)\n", err)
				fmt.Fprintln(w, "    Install Tesseract for OCR support:")
				fmt.Fprintln(w, "    - Mac: brew install tesseract")
				fmt.Fprintln(w, "    - Linux: sudo apt-get install tesseract-ocr libtesseract-dev")
				return nil
			}
			fmt.Fprintf(w, "  Tesseract: OK (version %s)\n", ocr.Version())
			fmt.Fprintf(w, "  Languages: %s\n", strings.Join(langs, ", "))

			for _, lang := range strings.Split(cfg.OCR.Language, "+") {
				if lang = strings.TrimSpace(lang); lang != "" && !slices.Contains(langs, lang) {
					fmt.Fprintf(w, "  Warning: configured language %q is not installed\n", lang)
				}
			}
			if !cfg.OCR.Enabled {
				fmt.Fprintln(w, "  Note: recognition is disabled by configuration")
			}
			return nil
		},
	}
}
