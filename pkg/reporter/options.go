package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/porytext/pkg/config"
)

// Reporters buffer their output and flush once per Report.
const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ValidColor and WarningColor are hex colors for the part of a line
	// that fits and the part that overflows.
	ValidColor   string
	WarningColor string

	// ShowContext prints the measured line under each diagnostic with its
	// spans highlighted.
	ShowContext bool
	ShowSummary bool

	// GroupByFile prints a header per file instead of one
	// path:line:col line per diagnostic.
	GroupByFile bool

	// Compact disables JSON indentation.
	Compact bool

	// WorkingDir, when set, makes paths under it relative.
	WorkingDir string
}

// DefaultOptions returns grouped, colored-when-possible text output on
// stdout using the stock span colors.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ValidColor:   config.DefaultValidColor,
		WarningColor: config.DefaultWarningColor,
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
	}
}
