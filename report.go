package docmark

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/tsawler/docmark/model"
)

// Report is the YAML record of a batch run.
type Report struct {
	Converted int            `yaml:"converted"`
	Failed    int            `yaml:"failed"`
	Files     []ReportRecord `yaml:"files"`
}

// ReportRecord describes one file of a batch run.
type ReportRecord struct {
	Path    string         `yaml:"path"`
	Output  string         `yaml:"output,omitempty"`
	Success bool           `yaml:"success"`
	Error   string         `yaml:"error,omitempty"`
	Code    string         `yaml:"code,omitempty"`
	Units   map[string]int `yaml:"units,omitempty"`
}

// NewReport builds the report for outcomes.
func NewReport(outcomes []Outcome) Report {
	s := Summarize(outcomes)
	r := Report{
		Converted: s.Converted,
		Failed:    s.Failed,
		Files:     make([]ReportRecord, len(outcomes)),
	}
	for i, o := range outcomes {
		r.Files[i] = ReportRecord{
			Path:    o.Path,
			Output:  o.Output,
			Success: o.Success,
			Error:   o.Message(),
			Code:    ErrorCode(o.Err),
			Units:   tallyCounts(o.Tally),
		}
	}
	return r
}

// WriteReport writes the YAML report for outcomes to w.
func WriteReport(w io.Writer, outcomes []Outcome) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(outcomes)); err != nil {
		enc.Close()
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// WriteReportFile writes the YAML report for outcomes to path.
func WriteReportFile(path string, outcomes []Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return writeFailed(path, err)
	}
	if err := WriteReport(f, outcomes); err != nil {
		f.Close()
		return writeFailed(path, err)
	}
	if err := f.Close(); err != nil {
		return writeFailed(path, err)
	}
	return nil
}

func tallyCounts(t model.Tally) map[string]int {
	if len(t) == 0 {
		return nil
	}
	counts := make(map[string]int, len(model.Strategies))
	for _, s := range model.Strategies {
		counts[string(s)] = t[s]
	}
	return counts
}
