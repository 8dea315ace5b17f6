package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/porytext/internal/logging"
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/dialogue"
	"github.com/yaklabco/porytext/pkg/fontwidth"
	"github.com/yaklabco/porytext/pkg/textpos"
)

// FileResult contains the results of checking a single file.
type FileResult struct {
	// Path is the checked file.
	Path string

	// Content is the checked document. Line offsets index into it.
	Content string

	// Lines holds every measured line, overflowing or not.
	Lines []dialogue.Line

	// MaxWidth is the limit the lines were measured against.
	MaxWidth int

	// Diagnostics contains one entry per overflowing line.
	Diagnostics []Diagnostic
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// Engine measures the dialogue of a document against the configured limit.
type Engine struct {
	// Validator measures the string literals of the width-checked calls.
	Validator *dialogue.Validator

	// Converter rewrites calls for the format and unformat commands.
	Converter *dialogue.Converter

	// Enabled turns width diagnostics on. When false, lines are still
	// measured but nothing is reported.
	Enabled bool

	// Severity is assigned to width diagnostics.
	Severity config.Severity
}

// NewEngine creates an Engine from the resolved configuration.
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	table := fontwidth.Default()
	if len(cfg.Widths) > 0 {
		table = fontwidth.NewTable(cfg.Widths)
	}

	return &Engine{
		Validator: dialogue.NewValidator(table, cfg.LineLimit(), cfg.ValidateNames()...),
		Converter: &dialogue.Converter{
			RawName:       cfg.RawName(),
			FormattedName: cfg.FormattedName(),
		},
		Enabled:  cfg.IsEnabled(),
		Severity: config.SeverityWarning,
	}
}

// CheckFile measures content and reports every overflowing line.
func (e *Engine) CheckFile(ctx context.Context, path string, content []byte) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("check cancelled: %w", ctx.Err())
	default:
	}

	doc := string(content)
	result := &FileResult{
		Path:     path,
		Content:  doc,
		Lines:    e.Validator.Validate(doc),
		MaxWidth: e.Validator.MaxWidth(),
	}

	if !e.Enabled {
		return result, nil
	}

	var idx *textpos.Index
	for _, line := range result.Lines {
		if !line.Overflows() {
			continue
		}
		if idx == nil {
			idx = textpos.New(doc)
		}

		diag := NewWidthDiagnostic(path, idx, line, e.Validator.MaxWidth())
		diag.Severity = e.Severity
		logging.FromContext(ctx).Debug("line overflows",
			logging.FieldPath, path,
			logging.FieldWidth, line.Width,
			logging.FieldMaxWidth, diag.MaxWidth,
		)
		result.Diagnostics = append(result.Diagnostics, diag)
	}

	return result, nil
}
