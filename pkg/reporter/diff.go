package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/porytext/internal/ui/pretty"
	"github.com/yaklabco/porytext/pkg/fix"
	"github.com/yaklabco/porytext/pkg/runner"
)

// DiffReporter prints the conversions a dry run would make as git-style
// unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	styles, _ := newStyles(opts)
	return &DiffReporter{
		opts:   opts,
		styles: styles,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The count is the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var changed, added, removed int
	for _, file := range result.Files {
		if file.Error != nil {
			fprintFileError(r.bw, r.styles, r.diffPath(file.Path), file.Error)
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		changed++
		added += diff.Additions
		removed += diff.Deletions
		r.writeDiff(diff)
	}

	if changed > 0 && r.opts.ShowSummary {
		r.writeSummary(changed, added, removed)
	}

	return changed, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := r.diffPath(diff.Path)

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)))

		for _, line := range hunk.Lines {
			fmt.Fprintln(r.bw, r.lineStyle(line.Kind).Render(line.Kind.Prefix()+line.Content))
		}
	}

	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) lineStyle(kind fix.DiffLineKind) lipgloss.Style {
	switch kind {
	case fix.DiffLineAdd:
		return r.styles.DiffAdd
	case fix.DiffLineRemove:
		return r.styles.DiffRemove
	default:
		return r.styles.DiffContext
	}
}

// diffPath is displayPath with slash separators. Paths outside the working
// directory fall back to their base name so headers never start with "../".
func (r *DiffReporter) diffPath(path string) string {
	rel := displayPath(r.opts.WorkingDir, path)
	if filepath.IsAbs(rel) {
		rel = filepath.Base(rel)
	}
	return filepath.ToSlash(rel)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralize(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pluralize(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralize(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
