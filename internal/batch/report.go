// internal/batch/report.go
package batch

import (
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/codr1/svgtint/internal/boundary"
	"github.com/codr1/svgtint/internal/recolor"
)

type DocumentReport struct {
	Path        string             `yaml:"path"`
	Output      string             `yaml:"output"`
	Tokens      int                `yaml:"tokens"`
	Substituted int                `yaml:"substituted"`
	Unchanged   int                `yaml:"unchanged"`
	Observed    *boundary.Boundary `yaml:"observed,omitempty"`
	Contained   bool               `yaml:"contained"`
}

type Totals struct {
	Documents   int `yaml:"documents"`
	Tokens      int `yaml:"tokens"`
	Substituted int `yaml:"substituted"`
	Unchanged   int `yaml:"unchanged"`
}

type Report struct {
	RunID        string            `yaml:"run_id"`
	PrimaryColor string            `yaml:"primary_color"`
	Tolerance    float64           `yaml:"tolerance"`
	Reference    boundary.Boundary `yaml:"reference"`
	Palette      string            `yaml:"palette"`
	Totals       Totals            `yaml:"totals"`
	Documents    []DocumentReport  `yaml:"documents"`
}

func documentReport(path, outputPath string, result recolor.Result) DocumentReport {
	doc := DocumentReport{
		Path:        path,
		Output:      outputPath,
		Tokens:      result.Tokens,
		Substituted: result.Substituted,
		Unchanged:   result.Unchanged,
	}
	if !result.Analysis.Empty() {
		observed := result.Analysis.Observed()
		doc.Observed = &observed
		doc.Contained = result.Analysis.Contained()
	}
	return doc
}

func (r *Runner) newReport(documents []DocumentReport) *Report {
	sorted := make([]DocumentReport, len(documents))
	copy(sorted, documents)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	report := &Report{
		RunID:        r.opts.RunID,
		PrimaryColor: r.theme.Primary().Hex(),
		Tolerance:    r.theme.Tolerance(),
		Reference:    r.theme.Reference(),
		Palette:      r.opts.PalettePath,
		Documents:    sorted,
	}
	for _, doc := range sorted {
		report.Totals.Documents++
		report.Totals.Tokens += doc.Tokens
		report.Totals.Substituted += doc.Substituted
		report.Totals.Unchanged += doc.Unchanged
	}
	return report
}

func WriteReport(w io.Writer, report *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

// ReadReport decodes a report written by WriteReport.
func ReadReport(r io.Reader) (*Report, error) {
	var report Report
	if err := yaml.NewDecoder(r).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}
