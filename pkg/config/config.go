// Package config defines the configuration types for porytext.
// These types are plain data; loading and merging live in internal/configloader.
package config

import (
	"slices"

	"github.com/yaklabco/porytext/pkg/dialogue"
)

// Defaults. The dialogue values come from package dialogue so the two cannot
// disagree.
const (
	DefaultMaxLineLength = dialogue.DefaultMaxWidth
	DefaultValidColor    = "#0072B2"
	DefaultWarningColor  = "#E69F00"
	DefaultRawName       = dialogue.DefaultRawName
	DefaultFormattedName = dialogue.DefaultFormattedName
	DefaultExtension     = ".pory"
	DefaultBackupMode    = "sidecar"
)

// DefaultValidateNames returns the calls whose literals are width-checked.
func DefaultValidateNames() []string {
	return dialogue.DefaultValidateNames()
}

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
	FormatDiff    OutputFormat = "diff"
)

// FunctionsConfig names the dialogue functions porytext recognizes.
type FunctionsConfig struct {
	// Raw is the marker for unformatted text, e.g. fmsgbox.
	Raw string `yaml:"raw,omitempty"`

	// Formatted is the engine call formatted text is written to, e.g. msgbox.
	Formatted string `yaml:"formatted,omitempty"`

	// Validate lists every call whose string literals are width-checked.
	Validate []string `yaml:"validate,omitempty"`
}

// BackupsConfig controls backup behavior when converting files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure for porytext.
type Config struct {
	// Enabled turns width checking on or off. Nil means enabled.
	Enabled *bool `yaml:"enabled,omitempty"`

	// MaxLineLength is the text box width in pixels.
	MaxLineLength int `yaml:"max_line_length,omitempty"`

	// ValidColor renders spans that fit.
	ValidColor string `yaml:"valid_color,omitempty"`

	// WarningColor renders spans that overflow.
	WarningColor string `yaml:"warning_color,omitempty"`

	// Functions names the recognized dialogue calls.
	Functions FunctionsConfig `yaml:"functions,omitempty"`

	// Widths adds or overrides entries of the built-in width table.
	Widths map[string]int `yaml:"widths,omitempty"`

	// Extensions lists the file extensions processed when walking directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when converting.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would change without writing files.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict makes warnings fail the run.
	Strict bool `yaml:"-"`

	// NoContext hides the source line under each diagnostic.
	NoContext bool `yaml:"-"`

	// NoBackups disables backup creation when converting.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with the defaults.
func NewConfig() *Config {
	enabled := true
	return &Config{
		Enabled:       &enabled,
		MaxLineLength: DefaultMaxLineLength,
		ValidColor:    DefaultValidColor,
		WarningColor:  DefaultWarningColor,
		Functions: FunctionsConfig{
			Raw:       DefaultRawName,
			Formatted: DefaultFormattedName,
			Validate:  DefaultValidateNames(),
		},
		Extensions: []string{DefaultExtension},
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    DefaultBackupMode,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// IsEnabled reports whether width checking is on.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// RawName returns the raw marker function, falling back to the default.
func (c *Config) RawName() string {
	if c.Functions.Raw == "" {
		return DefaultRawName
	}
	return c.Functions.Raw
}

// FormattedName returns the formatted function, falling back to the default.
func (c *Config) FormattedName() string {
	if c.Functions.Formatted == "" {
		return DefaultFormattedName
	}
	return c.Functions.Formatted
}

// ValidateNames returns the width-checked functions. The raw and formatted
// names are always included.
func (c *Config) ValidateNames() []string {
	names := slices.Clone(c.Functions.Validate)
	if len(names) == 0 {
		names = DefaultValidateNames()
	}
	for _, name := range []string{c.RawName(), c.FormattedName()} {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// LineLimit returns the maximum line width in pixels.
func (c *Config) LineLimit() int {
	if c.MaxLineLength <= 0 {
		return DefaultMaxLineLength
	}
	return c.MaxLineLength
}

// FileExtensions returns the extensions to process, falling back to .pory.
func (c *Config) FileExtensions() []string {
	if len(c.Extensions) == 0 {
		return []string{DefaultExtension}
	}
	return c.Extensions
}

// BackupsEnabled reports whether backups should be written.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}
