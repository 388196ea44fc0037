package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/docmark"
	"github.com/tsawler/docmark/extract"
	"github.com/tsawler/docmark/internal/config"
	"github.com/tsawler/docmark/logging"
	"github.com/tsawler/docmark/ocr"
)

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	config.KeyOCRLanguage:   "lang",
	config.KeyOCRDPI:        "dpi",
	config.KeyMinTextLength: "min-text",
	config.KeyContents:      "toc",
	config.KeyLogLevel:      "log-level",
	config.KeyLogFormat:     "log-format",
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docmark <input> [output]",
		Short: "Convert PDF, PPTX and XLSX files to Markdown",
		Long: `docmark converts a PDF document, PowerPoint deck or Excel workbook into a
single normalized Markdown file.

PDF pages without a usable text layer are rendered and run through Tesseract
when docmark is built with the "ocr" tag. Slides keep their titles, text,
tables and speaker notes. Every worksheet becomes a Markdown table.

When <input> is a directory, every supported file directly inside it is
converted next to its source.

Examples:
  docmark report.pdf
  docmark deck.pptx notes/deck.md
  docmark --toc workbook.xlsx
  docmark --ext .pdf --report report.yaml ./inbox`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./docmark.yaml or ~/.config/docmark/docmark.yaml)")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "", "log format: console, json, pretty")

	f := root.Flags()
	f.StringSlice("ext", nil, "extensions to convert in directory mode (default: .pdf,.pptx,.xlsx)")
	f.Bool("toc", false, "add a contents list to documents with more than one unit")
	f.Bool("no-ocr", false, "never run text recognition")
	f.String("lang", "", "Tesseract language(s), e.g. eng+deu")
	f.Float64("dpi", 0, "render resolution for text recognition")
	f.Int("min-text", 0, "characters a page's text layer must exceed to skip recognition")
	f.String("report", "", "write a YAML report of a directory conversion to this path")

	root.AddCommand(newCheckCmd(), newVersionCmd())
	return root
}

// loadConfig resolves file, environment and flag settings for cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	v, used, err := config.New(file)
	if err != nil {
		return config.Config{}, err
	}
	if used != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", used)
	}
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return config.Config{}, err
	}
	if noOCR, _ := cmd.Flags().GetBool("no-ocr"); noOCR {
		v.Set(config.KeyOCREnabled, false)
	}
	return config.Load(v)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logs, err := logging.NewProvider(cfg.Log)
	if err != nil {
		return err
	}

	conv := docmark.New().
		WithLogger(logs.Logger("docmark.extract")).
		WithProgress(cmd.OutOrStdout()).
		WithContents(cfg.Markdown.Contents).
		WithDPI(cfg.OCR.DPI).
		WithMinTextLength(cfg.Extract.MinTextLength)

	if cfg.OCR.Enabled {
		rec, closeRec := recognizer(cmd, cfg.OCR, logs.Logger("docmark.ocr"))
		defer closeRec()
		conv = conv.WithRecognizer(rec)
	}

	input := args[0]
	info, err := os.Stat(input)
	if err == nil && info.IsDir() {
		if len(args) > 1 {
			return fmt.Errorf("an output path cannot be given when converting a directory")
		}
		exts, _ := cmd.Flags().GetStringSlice("ext")
		report, _ := cmd.Flags().GetString("report")
		return runBatch(cmd, conv.WithLogger(logs.Logger("docmark.batch")), input, exts, report)
	}

	output := ""
	if len(args) > 1 {
		output = args[1]
	}
	_, _, err = conv.ConvertFile(input, output)
	return err
}

func runBatch(cmd *cobra.Command, conv *docmark.Converter, dir string, exts []string, report string) error {
	outcomes, err := conv.ConvertAll(dir, exts...)
	if err != nil {
		return err
	}
	if len(outcomes) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", docmark.Summarize(outcomes))
	}
	if report != "" {
		if err := docmark.WriteReportFile(report, outcomes); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Report:", report)
	}
	return nil
}

// recognizer sets up Tesseract. When it is unavailable a warning is printed
// once and conversion continues without recognition.
func recognizer(cmd *cobra.Command, cfg config.OCR, log logging.Logger) (extract.Recognizer, func()) {
	client, err := ocr.New()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: text recognition unavailable (%v); scanned pages will be empty\n", err)
		return nil, func() {}
	}
	if err := client.SetLanguage(cfg.Language); err != nil {
		client.Close()
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: cannot use OCR language %q (%v); scanned pages will be empty\n", cfg.Language, err)
		return nil, func() {}
	}
	log.Debug("text recognition ready", "tesseract", ocr.Version(), "language", cfg.Language)
	return client, func() {
		if err := client.Close(); err != nil {
			log.Warn("closing OCR client failed", "error", err)
		}
	}
}
