// Package reporter renders runner results as text, tables, JSON, diffs, or
// summaries.
package reporter

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yaklabco/porytext/internal/ui/pretty"
	"github.com/yaklabco/porytext/pkg/runner"
)

// Reporter writes a run result in one output format.
type Reporter interface {
	// Report returns how many diagnostics it wrote.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the reporter for opts.Format. A nil Writer means stdout and
// an empty Format means text.
func New(opts Options) (Reporter, error) {
	opts.Writer = cmp.Or[io.Writer](opts.Writer, DefaultOptions().Writer)

	switch format := cmp.Or(opts.Format, FormatText); format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// newStyles resolves the color mode against the writer and returns the
// styles with the configured span colors.
func newStyles(opts Options) (*pretty.Styles, bool) {
	enabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return pretty.NewStyles(enabled).WithSpanColors(opts.ValidColor, opts.WarningColor), enabled
}

// displayPath shortens path to be relative to workingDir when it is inside
// it.
func displayPath(workingDir, path string) string {
	if workingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(workingDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// fprintFileError writes the line for a file the pipeline could not process.
func fprintFileError(w io.Writer, styles *pretty.Styles, path string, err error) {
	fmt.Fprintf(w, "%s: %s\n", styles.FilePath.Render(path), styles.Error.Render("error: "+err.Error()))
}
