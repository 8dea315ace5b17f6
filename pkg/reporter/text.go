package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/porytext/internal/ui/pretty"
	"github.com/yaklabco/porytext/pkg/lint"
	"github.com/yaklabco/porytext/pkg/runner"
)

// TextReporter writes diagnostics in a compiler-style layout with an
// optional source excerpt under each.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	styles, _ := newStyles(opts)
	return &TextReporter{
		opts:   opts,
		styles: styles,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		total += r.writeFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

// writeFile writes one file's status and diagnostics and returns how many
// diagnostics it wrote. Grouped output adds a header and a trailing blank
// line around files that have diagnostics.
func (r *TextReporter) writeFile(file runner.FileOutcome) int {
	path := displayPath(r.opts.WorkingDir, file.Path)

	switch {
	case file.Error != nil:
		fprintFileError(r.bw, r.styles, path, file.Error)
		return 0
	case file.Result == nil:
		return 0
	}

	r.writeStatus(path, file.Result)

	if file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}
	diags := file.Result.Diagnostics

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags)))
	}
	for _, diag := range diags {
		diag.FilePath = path
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, r.opts.ShowContext))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}

	return len(diags)
}

// writeStatus notes files that were converted or skipped.
func (r *TextReporter) writeStatus(path string, res *lint.PipelineResult) {
	switch {
	case res.Skipped:
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Warning.Render(res.Summary()))
	case res.Conversions > 0:
		calls := "calls"
		if res.Conversions == 1 {
			calls = "call"
		}
		fmt.Fprintf(r.bw, "%s: %s %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Success.Render(res.Summary()),
			r.styles.Dim.Render(fmt.Sprintf("(%d %s)", res.Conversions, calls)),
		)
	}
}
