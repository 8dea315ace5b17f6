package fix_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/porytext/pkg/fix"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for identical content", func(t *testing.T) {
		t.Parallel()

		content := []byte("script S {\n    msgbox(\"Hi\")\n}\n")
		if diff := fix.GenerateDiff("a.pory", content, content); diff != nil {
			t.Error("expected nil for identical content")
		}
		if diff := fix.GenerateDiff("a.pory", nil, []byte{}); diff != nil {
			t.Error("expected nil for empty content")
		}
	})

	t.Run("converted call", func(t *testing.T) {
		t.Parallel()

		original := []byte("script S {\n    fmsgbox(\"Hello\n\n    World\")\n}\n")
		modified := []byte("script S {\n    msgbox(\"Hello\\p\"\n        \"World\")\n}\n")

		diff := fix.GenerateDiff("maps/town.pory", original, modified)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}
		if !diff.HasChanges() {
			t.Error("expected HasChanges() = true")
		}
		if diff.Additions != 2 || diff.Deletions != 3 {
			t.Errorf("Additions/Deletions = %d/%d, want 2/3", diff.Additions, diff.Deletions)
		}

		out := diff.FullString()
		for _, want := range []string{
			"diff --git a/maps/town.pory b/maps/town.pory",
			"--- a/maps/town.pory",
			"+++ b/maps/town.pory",
			"-    fmsgbox(\"Hello",
			"+    msgbox(\"Hello\\p\"",
			" script S {",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("diff missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("hunk counts include context", func(t *testing.T) {
		t.Parallel()

		diff := fix.GenerateDiff("x.pory", []byte("a\nb\nc\n"), []byte("a\nB\nc\n"))
		if diff == nil || len(diff.Hunks) != 1 {
			t.Fatalf("expected one hunk, got %+v", diff)
		}

		h := diff.Hunks[0]
		if h.OriginalStart != 1 || h.OriginalCount != 3 || h.ModifiedCount != 3 {
			t.Errorf("hunk = %+v", h)
		}
		if !strings.Contains(diff.String(), "@@ -1,3 +1,3 @@") {
			t.Errorf("unexpected header:\n%s", diff.String())
		}
	})

	t.Run("nil diff renders empty", func(t *testing.T) {
		t.Parallel()

		var diff *fix.Diff
		if diff.String() != "" || diff.FullString() != "" || diff.GitHeader() != "" || diff.HasChanges() {
			t.Error("nil diff should render as empty")
		}
	})
}
