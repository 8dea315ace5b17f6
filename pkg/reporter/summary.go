package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/porytext/internal/ui/pretty"
	"github.com/yaklabco/porytext/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90 // Width of table separators.
	fileColWidth      = 50 // Width of the file path column.
	numColWidth       = 9  // Width of numeric columns.
	maxFilePathLength = 48 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// fileSummary aggregates one file's measurements.
type fileSummary struct {
	path        string
	lines       int
	overflowing int
	widest      int
	conversions int
}

// SummaryReporter formats results as a per-file table followed by totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	styles, _ := newStyles(opts)
	return &SummaryReporter{
		opts:   opts,
		styles: styles,
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	files := r.summarize(result)
	if len(files) > 0 {
		r.renderFileTable(files)
		fmt.Fprintln(r.out)
	}

	fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats))

	return result.Stats.DiagnosticsTotal, nil
}

func (r *SummaryReporter) summarize(result *runner.Result) []fileSummary {
	files := make([]fileSummary, 0, len(result.Files))
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		fs := fileSummary{
			path:        displayPath(r.opts.WorkingDir, file.Path),
			lines:       len(file.Result.Lines),
			overflowing: len(file.Result.Diagnostics),
			conversions: file.Result.Conversions,
		}
		for _, line := range file.Result.Lines {
			fs.widest = max(fs.widest, line.Width)
		}
		files = append(files, fs)
	}
	return files
}

func (r *SummaryReporter) renderFileTable(files []fileSummary) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Lines", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Overflow", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Widest", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Converted", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		// Pad first, then style
		paddedPath := padRight(path, fileColWidth)
		if file.overflowing > 0 {
			paddedPath = r.styles.TableOverRow.Render(paddedPath)
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			paddedPath,
			padLeft(strconv.Itoa(file.lines), numColWidth),
			padLeft(strconv.Itoa(file.overflowing), numColWidth),
			padLeft(strconv.Itoa(file.widest)+"px", numColWidth),
			padLeft(strconv.Itoa(file.conversions), numColWidth),
		)
	}
}
