package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/yaklabco/porytext/pkg/config"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	// Field is the dotted key, for example "functions.raw" or "ignore[2]".
	Field   string
	Value   any
	Message string

	// FilePath and Line locate the problem when it came from a file.
	FilePath string
	Line     int
}

// Error formats the problem as "file:line: field: message", leaving out the
// parts that are unknown.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	switch {
	case e.FilePath != "" && e.Line > 0:
		parts = append(parts, e.FilePath+":"+strconv.Itoa(e.Line))
	case e.FilePath != "":
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult collects every problem rather than stopping at the first.
type ValidationResult struct {
	// Errors prevent the configuration from loading.
	Errors []ValidationError
	// Warnings are logged and otherwise ignored.
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool       { return len(r.Errors) == 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages returns the errors then the warnings, each prefixed with its
// level.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // read-only value sets
var (
	outputFormats = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON, config.FormatSummary, config.FormatDiff,
	}
	backupModes = []string{config.DefaultBackupMode, "none"}
)

// Validate checks cfg. Zero values are allowed so partial layers validate.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.MaxLineLength < 0 {
		result.fail("max_line_length", cfg.MaxLineLength, "max_line_length must be > 0 pixels")
	}
	validateColor(result, "valid_color", cfg.ValidColor)
	validateColor(result, "warning_color", cfg.WarningColor)

	validateFunctions(result, cfg)
	validateWidths(result, cfg.Widths)

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.warn(indexed("extensions", i), ext, "extension %q does not start with a dot", ext)
		}
	}
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(indexed("ignore", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	if cfg.Format != "" && !slices.Contains(outputFormats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, joinValues(outputFormats))
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !slices.Contains(backupModes, cfg.Backups.Mode) {
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: %s", cfg.Backups.Mode, joinValues(backupModes))
	}

	return result
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA". Alpha is dropped.
func ParseColor(value string) (colorful.Color, error) {
	hex := value
	if len(hex) == len("#RRGGBBAA") {
		hex = hex[:len("#RRGGBB")]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", value, err)
	}
	return c, nil
}

func validateColor(result *ValidationResult, field, value string) {
	if value == "" {
		return
	}
	if _, err := ParseColor(value); err != nil {
		result.fail(field, value, "invalid color %q; expected a hex color like #0072B2", value)
	}
}

func validateFunctions(result *ValidationResult, cfg *config.Config) {
	raw, formatted := cfg.RawName(), cfg.FormattedName()
	if raw == formatted {
		result.fail("functions", raw, "functions.raw and functions.formatted must differ (both are %q)", raw)
	}

	names := []struct{ field, name string }{
		{"functions.raw", raw},
		{"functions.formatted", formatted},
	}
	for i, name := range cfg.Functions.Validate {
		names = append(names, struct{ field, name string }{indexed("functions.validate", i), name})
	}
	for _, n := range names {
		if !isIdentifier(n.name) {
			result.fail(n.field, n.name, "%q is not a valid function name", n.name)
		}
	}
}

// validateWidths reports in key order so messages are stable.
func validateWidths(result *ValidationResult, widths map[string]int) {
	for _, token := range slices.Sorted(maps.Keys(widths)) {
		switch width := widths[token]; {
		case token == "":
			result.fail("widths", token, "width table keys must not be empty")
		case width < 0:
			result.fail("widths."+token, width, "width of %q must be >= 0", token)
		}
	}
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !letter && (i == 0 || !digit) {
			return false
		}
	}
	return true
}

func indexed(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
