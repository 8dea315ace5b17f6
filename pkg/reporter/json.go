package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/lint"
	"github.com/yaklabco/porytext/pkg/runner"
)

// jsonSchemaVersion changes when a field is renamed or removed.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is the outcome for one file.
type JSONFileResult struct {
	Path          string           `json:"path"`
	LinesMeasured int              `json:"linesMeasured"`
	Diagnostics   []JSONDiagnostic `json:"diagnostics"`
	Conversions   int              `json:"conversions,omitempty"`
	Modified      bool             `json:"modified,omitempty"`
	Skipped       string           `json:"skipped,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic. Offsets count UTF-16 code
// units from the start of the file and columns are 1-based UTF-16 columns.
type JSONDiagnostic struct {
	RuleID      string     `json:"ruleId"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	StartOffset int        `json:"startOffset"`
	EndOffset   int        `json:"endOffset"`
	Width       int        `json:"width"`
	MaxWidth    int        `json:"maxWidth"`
	Spans       []JSONSpan `json:"spans,omitempty"`
}

// JSONSpan is a classified range of a diagnostic's text, in UTF-16 offsets
// from the start of the file.
type JSONSpan struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	Width       int    `json:"width"`
	Class       string `json:"class"`
}

// JSONSummary totals the files in the document.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	LinesMeasured   int            `json:"linesMeasured"`
	Conversions     int            `json:"conversions"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter writes one JSON document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := r.document(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return doc.Summary.TotalIssues, nil
}

// document converts result. Summary counts come from the files themselves
// so partial results still total correctly.
func (r *JSONReporter) document(result *runner.Result) *JSONOutput {
	doc := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result == nil {
		return doc
	}

	doc.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, outcome := range result.Files {
		file := r.file(outcome)
		doc.Summary.add(&file)
		doc.Files = append(doc.Files, file)
	}
	return doc
}

// file converts one runner outcome.
func (r *JSONReporter) file(outcome runner.FileOutcome) JSONFileResult {
	file := JSONFileResult{
		Path:        displayPath(r.opts.WorkingDir, outcome.Path),
		Diagnostics: []JSONDiagnostic{},
	}
	if outcome.Error != nil {
		file.Error = outcome.Error.Error()
	}

	pr := outcome.Result
	if pr == nil {
		return file
	}

	file.Conversions = pr.Conversions
	file.Modified = pr.Written || (pr.Modified && !pr.Skipped)
	if pr.Skipped {
		file.Skipped = pr.SkipReason
	}
	if pr.FileResult == nil {
		return file
	}

	file.LinesMeasured = len(pr.Lines)
	for i := range pr.Diagnostics {
		file.Diagnostics = append(file.Diagnostics, newJSONDiagnostic(&pr.Diagnostics[i]))
	}
	return file
}

func (s *JSONSummary) add(file *JSONFileResult) {
	s.FilesChecked++
	s.LinesMeasured += file.LinesMeasured
	s.Conversions += file.Conversions
	s.TotalIssues += len(file.Diagnostics)

	if file.Error != "" {
		s.FilesErrored++
	}
	if file.Modified {
		s.FilesModified++
	}
	if len(file.Diagnostics) > 0 {
		s.FilesWithIssues++
	}
	for _, diag := range file.Diagnostics {
		s.BySeverity[diag.Severity]++
	}
}

func newJSONDiagnostic(diag *lint.Diagnostic) JSONDiagnostic {
	severity := cmp.Or(string(diag.Severity), string(config.SeverityWarning))

	out := JSONDiagnostic{
		RuleID:      diag.RuleID,
		Severity:    severity,
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		StartOffset: diag.StartOffset,
		EndOffset:   diag.EndOffset,
		Width:       diag.Width,
		MaxWidth:    diag.MaxWidth,
	}
	if len(diag.FileSpans) > 0 {
		out.Spans = jsonSpans(diag)
	}
	return out
}

func jsonSpans(diag *lint.Diagnostic) []JSONSpan {
	spans := make([]JSONSpan, len(diag.FileSpans))
	for i, span := range diag.FileSpans {
		spans[i] = JSONSpan{
			StartOffset: span.Start,
			EndOffset:   span.End,
			Width:       span.Width,
			Class:       span.Class.String(),
		}
	}
	return spans
}
