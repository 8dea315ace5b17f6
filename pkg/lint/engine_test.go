package lint_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/fontwidth"
	"github.com/yaklabco/porytext/pkg/lint"
)

// The first literal measures 40 * 6 = 240px; "Short" fits.
var overflowScript = "script Town {\n    msgbox(\"" + strings.Repeat("A", 40) + "\\n\"\n        \"Short\")\n}\n"

const rawScript = "script Town {\n    fmsgbox(\"Hello there!\n    Welcome to town.\")\n}\n"

const formattedScript = "script Town {\n    msgbox(\"Hello there!\\n\"\n        \"Welcome to town.\")\n}\n"

func TestEngine_CheckFile(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(config.NewConfig())

	result, err := engine.CheckFile(context.Background(), "town.pory", []byte(overflowScript))
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}

	if len(result.Lines) != 2 {
		t.Fatalf("Lines = %d, want 2", len(result.Lines))
	}
	if result.IssueCount() != 1 {
		t.Fatalf("IssueCount() = %d, want 1", result.IssueCount())
	}

	diag := result.Diagnostics[0]
	if diag.RuleID != lint.RuleWidth {
		t.Errorf("RuleID = %q, want %q", diag.RuleID, lint.RuleWidth)
	}
	if diag.Message != "Line width 240px exceeds maximum 208px" {
		t.Errorf("Message = %q", diag.Message)
	}
	if diag.Severity != config.SeverityWarning {
		t.Errorf("Severity = %q", diag.Severity)
	}
	if diag.FilePath != "town.pory" {
		t.Errorf("FilePath = %q", diag.FilePath)
	}
	if diag.StartLine != 2 || diag.StartColumn != 13 || diag.EndColumn != 53 {
		t.Errorf("position = %d:%d-%d", diag.StartLine, diag.StartColumn, diag.EndColumn)
	}
	if diag.Excess() != 32 {
		t.Errorf("Excess() = %d, want 32", diag.Excess())
	}

	// 34 characters fit in 208px; the 35th overflows.
	if got := diag.OverflowColumn(); got != 12+34+1 {
		t.Errorf("OverflowColumn() = %d, want %d", got, 12+34+1)
	}
	if len(diag.Spans) != 2 || diag.Spans[0].Start != 12 || diag.Spans[1].Class != fontwidth.Overflows {
		t.Errorf("Spans = %+v", diag.Spans)
	}
	if !strings.HasPrefix(diag.SourceLine, "    msgbox(\"AAA") {
		t.Errorf("SourceLine = %q", diag.SourceLine)
	}
}

func TestEngine_CheckFile_Config(t *testing.T) {
	t.Parallel()

	disabled := false

	tests := []struct {
		name      string
		cfg       *config.Config
		wantIssue int
	}{
		{
			name:      "defaults",
			cfg:       config.NewConfig(),
			wantIssue: 1,
		},
		{
			name:      "wider box",
			cfg:       &config.Config{MaxLineLength: 240},
			wantIssue: 0,
		},
		{
			name:      "disabled",
			cfg:       &config.Config{Enabled: &disabled},
			wantIssue: 0,
		},
		{
			name:      "narrow A",
			cfg:       &config.Config{Widths: map[string]int{"A": 5}},
			wantIssue: 0,
		},
		{
			name:      "call not validated",
			cfg:       &config.Config{Functions: config.FunctionsConfig{Formatted: "speak", Validate: []string{"speak"}}},
			wantIssue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := lint.NewEngine(tt.cfg)
			result, err := engine.CheckFile(context.Background(), "town.pory", []byte(overflowScript))
			if err != nil {
				t.Fatalf("CheckFile() error = %v", err)
			}
			if result.IssueCount() != tt.wantIssue {
				t.Errorf("IssueCount() = %d, want %d", result.IssueCount(), tt.wantIssue)
			}
			if len(result.Lines) == 0 && tt.name != "call not validated" {
				t.Error("lines should be measured even when nothing is reported")
			}
		})
	}
}

func TestEngine_CheckFile_UTF16Offsets(t *testing.T) {
	t.Parallel()

	// "é" is two bytes but one UTF-16 unit; "😀" is four bytes and two units.
	doc := "# é😀\nmsgbox(\"" + strings.Repeat("B", 36) + "\")\n"

	result, err := lint.NewEngine(nil).CheckFile(context.Background(), "town.pory", []byte(doc))
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if result.IssueCount() != 1 {
		t.Fatalf("IssueCount() = %d, want 1", result.IssueCount())
	}

	diag := result.Diagnostics[0]
	lineStart := len("# ") + 1 + 2 + 1 // "# ", é, 😀, newline in UTF-16 units
	if want := lineStart + len("msgbox(\""); diag.StartOffset != want {
		t.Errorf("StartOffset = %d, want %d", diag.StartOffset, want)
	}
	if diag.EndOffset-diag.StartOffset != 36 {
		t.Errorf("length = %d, want 36", diag.EndOffset-diag.StartOffset)
	}
}

func TestEngine_CheckFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := lint.NewEngine(nil).CheckFile(ctx, "town.pory", []byte(overflowScript)); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
