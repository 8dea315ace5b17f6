// Package pretty renders diagnostics, width tables and summaries with
// lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/porytext/internal/configloader"
	"github.com/yaklabco/porytext/pkg/config"
)

// ANSI palette indices.
const (
	ansiGray    = "8"
	ansiRed     = "9"
	ansiGreen   = "10"
	ansiYellow  = "11"
	ansiBlue    = "12"
	ansiCyan    = "14"
	ansiLight   = "7"
	ansiDefault = ""
)

// Styles holds every style the reporters use. With color disabled all of
// them render text unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Fits and Overflows color the measured spans of a line.
	Fits      lipgloss.Style
	Overflows lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableFitsRow   lipgloss.Style
	TableOverRow   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style

	colorEnabled bool
}

// NewStyles builds the style set. Without color every style is plain.
func NewStyles(colorEnabled bool) *Styles {
	b := styleBuilder{color: colorEnabled}

	return &Styles{
		Error:   b.bold(ansiRed),
		Warning: b.bold(ansiYellow),
		Info:    b.bold(ansiBlue),

		FilePath:   b.bold(ansiDefault),
		Location:   b.fg(ansiGray),
		RuleID:     b.fg(ansiGray),
		Message:    b.fg(ansiDefault),
		SourceLine: b.fg(ansiLight),
		Caret:      b.fg(ansiRed),

		Fits:      b.fg(config.DefaultValidColor),
		Overflows: b.underline(config.DefaultWarningColor),

		DiffHeader:  b.bold(ansiDefault),
		DiffHunk:    b.fg(ansiCyan),
		DiffAdd:     b.fg(ansiGreen),
		DiffRemove:  b.fg(ansiRed),
		DiffContext: b.fg(ansiGray),

		SummaryTitle: b.bold(ansiDefault),
		SummaryValue: b.fg(ansiDefault),
		Success:      b.bold(ansiGreen),
		Failure:      b.bold(ansiRed),

		TableHeader:    b.bold(ansiLight),
		TableFitsRow:   b.fg(ansiDefault),
		TableOverRow:   b.fg(config.DefaultWarningColor),
		TableLegend:    b.italic(ansiGray),
		TableSeparator: b.fg(ansiGray),

		Dim:  b.fg(ansiGray),
		Bold: b.bold(ansiDefault),

		colorEnabled: colorEnabled,
	}
}

// styleBuilder returns plain styles when color is off.
type styleBuilder struct {
	color bool
}

func (b styleBuilder) fg(color string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if b.color && color != ansiDefault {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style
}

func (b styleBuilder) bold(color string) lipgloss.Style {
	return b.fg(color).Bold(b.color)
}

func (b styleBuilder) italic(color string) lipgloss.Style {
	return b.fg(color).Italic(b.color)
}

func (b styleBuilder) underline(color string) lipgloss.Style {
	return b.fg(color).Underline(b.color)
}

// WithSpanColors recolors the fits and overflow styles with hex colors.
// Empty or unparsable colors keep the current style; plain styles stay
// plain.
func (s *Styles) WithSpanColors(valid, warning string) *Styles {
	if !s.colorEnabled {
		return s
	}
	if c, ok := hexColor(valid); ok {
		s.Fits = s.Fits.Foreground(c)
	}
	if c, ok := hexColor(warning); ok {
		s.Overflows = s.Overflows.Foreground(c)
		s.TableOverRow = s.TableOverRow.Foreground(c)
		s.Caret = s.Caret.Foreground(c)
	}
	return s
}

// hexColor normalizes #RRGGBB or #RRGGBBAA to a terminal color, dropping
// alpha.
func hexColor(value string) (lipgloss.Color, bool) {
	if value == "" {
		return "", false
	}
	c, err := configloader.ParseColor(value)
	if err != nil {
		return "", false
	}
	return lipgloss.Color(c.Hex()), true
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute; anything else means auto, which needs a terminal and an
// empty NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
