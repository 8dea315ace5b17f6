package fix

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

// Diff is the unified diff a conversion would make to one document.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// DiffHunk is one @@ block. Start lines are 1-based.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a hunk line without its prefix or line break.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind distinguishes context, added and removed lines.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// Prefix is the unified diff marker for the kind.
func (k DiffLineKind) Prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// GenerateDiff diffs original against modified line by line. It returns nil
// when they are equal.
func GenerateDiff(path string, original, modified []byte) *Diff {
	before, after := string(original), string(modified)
	if before == after {
		return nil
	}

	unified, err := udiff.ToUnifiedDiff("a/"+path, "b/"+path, before, udiff.Strings(before, after), diffContext)
	if err != nil || len(unified.Hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Hunks: make([]DiffHunk, len(unified.Hunks))}
	for i, h := range unified.Hunks {
		diff.Hunks[i] = diff.convertHunk(h)
	}
	return diff
}

// convertHunk copies a go-udiff hunk, counting lines on both sides.
func (d *Diff) convertHunk(h *udiff.Hunk) DiffHunk {
	hunk := DiffHunk{
		OriginalStart: h.FromLine,
		ModifiedStart: h.ToLine,
		Lines:         make([]DiffLine, len(h.Lines)),
	}

	for i, line := range h.Lines {
		kind := DiffLineContext
		switch line.Kind {
		case udiff.Delete:
			kind = DiffLineRemove
			hunk.OriginalCount++
			d.Deletions++
		case udiff.Insert:
			kind = DiffLineAdd
			hunk.ModifiedCount++
			d.Additions++
		default:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		}
		hunk.Lines[i] = DiffLine{Kind: kind, Content: strings.TrimSuffix(line.Content, "\n")}
	}
	return hunk
}

// GitHeader is the "diff --git" line for the diff's path.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format, starting at the --- line.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			b.WriteString(line.Kind.Prefix())
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FullString is String preceded by GitHeader.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges reports whether d has at least one hunk. It is safe on nil.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}
