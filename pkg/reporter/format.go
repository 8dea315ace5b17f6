package reporter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Format names an output style for check, watch and convert results.
type Format string

// Output formats.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

// ErrUnknownFormat is returned by ParseFormat for unrecognised names.
var ErrUnknownFormat = errors.New("unknown format")

//nolint:gochecknoglobals // Fixed list, ordered for help and error text.
var formats = []Format{FormatText, FormatTable, FormatJSON, FormatDiff, FormatSummary}

// Formats lists every output format in display order.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat resolves a format name. An empty name means text; matching
// ignores case.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}

	if f := Format(name); f.IsValid() {
		return f, nil
	}

	valid := make([]string, len(formats))
	for i, f := range formats {
		valid[i] = string(f)
	}
	return "", fmt.Errorf("%w %q; valid formats: %s", ErrUnknownFormat, name, strings.Join(valid, ", "))
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is one of Formats.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}
