package runner

import (
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/lint"
)

// FileOutcome is what happened to one discovered file. Exactly one of
// Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats totals a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesSkipped counts files that changed on disk while being converted
	// and were left alone.
	FilesSkipped int

	// FilesModified counts files written, or that would have been written
	// under dry-run.
	FilesModified int

	FilesWithIssues int
	LinesMeasured   int
	Conversions     int

	DiagnosticsTotal int

	// DiagnosticsBySeverity is keyed by config.Severity values.
	DiagnosticsBySeverity map[string]int
}

// Count returns how many diagnostics of the given severity were reported.
func (s Stats) Count(severity config.Severity) int {
	return s.DiagnosticsBySeverity[string(severity)]
}

// Result is the outcome of a Runner.Run, with Files in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any error-severity diagnostic was produced.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.Count(config.SeverityError) > 0
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	pr := outcome.Result
	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case pr == nil:
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Conversions += pr.Conversions

	if pr.Skipped {
		r.Stats.FilesSkipped++
	} else if pr.Modified {
		r.Stats.FilesModified++
	}

	if pr.FileResult == nil {
		return
	}

	r.Stats.LinesMeasured += len(pr.Lines)
	if len(pr.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range pr.Diagnostics {
		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[string(severity)]++
		r.Stats.DiagnosticsTotal++
	}
}
