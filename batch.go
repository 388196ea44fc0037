package docmark

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/model"
)

// Outcome records the conversion of one file in a batch.
type Outcome struct {
	Path    string
	Output  string // empty when the conversion failed
	Success bool
	Err     error
	Tally   model.Tally
}

// Message returns the failure message, or "" for a successful outcome.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// BatchSummary counts the outcomes of a batch.
type BatchSummary struct {
	Converted int
	Failed    int
}

// Total returns the number of files attempted.
func (s BatchSummary) Total() int {
	return s.Converted + s.Failed
}

// String renders the summary line, e.g. "Converted 2 of 3 files".
func (s BatchSummary) String() string {
	return fmt.Sprintf("Converted %d of %d files", s.Converted, s.Total())
}

// Summarize counts successes and failures.
func Summarize(outcomes []Outcome) BatchSummary {
	var s BatchSummary
	for _, o := range outcomes {
		if o.Success {
			s.Converted++
		} else {
			s.Failed++
		}
	}
	return s
}

// ConvertAll converts every regular file directly inside dir whose extension
// matches one of exts, ignoring case, in lexical order. With no exts every
// supported extension matches. Each output is written next to its input.
//
// A failing file is recorded in its Outcome and the batch continues; only a
// failure to read dir itself is returned as an error.
func (c *Converter) ConvertAll(dir string, exts ...string) ([]Outcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	filter := normalizeExts(exts)
	log := c.options.log.WithFields(map[string]any{"dir": dir})

	var files []string
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(filter, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	slices.Sort(files)

	if len(files) == 0 {
		fmt.Fprintf(c.options.progress, "No matching files found in %s\n", dir)
		return nil, nil
	}

	outcomes := make([]Outcome, 0, len(files))
	for _, path := range files {
		fmt.Fprintf(c.options.progress, "\nProcessing: %s\n", filepath.Base(path))

		out, tally, err := c.ConvertFile(path, "")
		if err != nil {
			log.Error("conversion failed", "path", path, "error", err)
			fmt.Fprintf(c.options.progress, "Error converting %s: %v\n", filepath.Base(path), err)
			outcomes = append(outcomes, Outcome{Path: path, Err: err})
			continue
		}
		outcomes = append(outcomes, Outcome{Path: path, Output: out, Success: true, Tally: tally})
	}

	return outcomes, nil
}

// normalizeExts lowercases exts and adds a leading dot where missing.
func normalizeExts(exts []string) []string {
	if len(exts) == 0 {
		return format.Extensions()
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return format.Extensions()
	}
	return out
}
