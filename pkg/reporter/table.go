package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/yaklabco/porytext/internal/ui/pretty"
	"github.com/yaklabco/porytext/pkg/runner"
)

// fallbackTermWidth applies when output is not a terminal and COLUMNS is
// unset.
const fallbackTermWidth = 100

// TableReporter prints one row per measured line, grouped by file, with the
// overflowing rows highlighted.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a table reporter sized to the output terminal.
func NewTableReporter(opts Options) *TableReporter {
	styles, colorEnabled := newStyles(opts)
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The count is the number of diagnostics.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	paths := make([]string, 0, len(result.Files))
	groups := make([][]pretty.TableRow, 0, len(result.Files))
	issues := 0

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)
		switch {
		case file.Error != nil:
			fprintFileError(r.bw, r.styles, path, file.Error)
		case file.Result != nil && file.Result.FileResult != nil:
			fr := file.Result.FileResult
			issues += len(fr.Diagnostics)
			paths = append(paths, path)
			groups = append(groups, pretty.MeasureRows(fr.Content, fr.Lines, fr.MaxWidth))
		}
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(paths, groups))
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return issues, nil
}

// terminalWidth asks the terminal behind w for its width, then COLUMNS.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return fallbackTermWidth
}
