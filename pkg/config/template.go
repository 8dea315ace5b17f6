package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/porytext/pkg/fontwidth"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every built-in placeholder width as a commented example.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Width checking on or off
enabled: true

# Width of the message box in pixels
max_line_length: 208

# Colors used to highlight text that fits and text that overflows
valid_color: "#0072B2"
warning_color: "#E69F00"

# Dialogue functions
functions:
  # Raw multi-line text, converted by 'porytext format'
  raw: fmsgbox
  # Escape-coded text, converted by 'porytext unformat'
  formatted: msgbox
  # Calls whose string literals are width-checked
  validate:
    - fmsgbox
    - msgbox
    - format
    - message

# File extensions processed when walking directories
extensions:
  - .pory

# File patterns to ignore (glob patterns)
# ignore:
#   - "build/**"

# Write a .porytext.bak copy before converting a file
backups:
  enabled: false
  mode: sidecar
`)

	buf.WriteString("\n# Pixel widths of characters and placeholders (overrides the built-in table)\n")
	if !opts.Full {
		buf.WriteString("# widths:\n#   \"{PLAYER}\": 48\n")
		return buf.Bytes(), nil
	}

	table := fontwidth.Default()
	buf.WriteString("# widths:\n")
	for _, name := range table.Placeholders() {
		fmt.Fprintf(&buf, "#   %q: %d\n", name, table.WidthOf(name))
	}
	fmt.Fprintf(&buf, "# Any token not listed is %dpx wide.\n", fontwidth.DefaultWidth)

	return buf.Bytes(), nil
}

// templateToJSON renders the defaults as JSON. JSON has no comments, so the
// full and minimal templates are the same.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"enabled":         true,
		"max_line_length": DefaultMaxLineLength,
		"valid_color":     DefaultValidColor,
		"warning_color":   DefaultWarningColor,
		"functions": map[string]any{
			"raw":       DefaultRawName,
			"formatted": DefaultFormattedName,
			"validate":  DefaultValidateNames(),
		},
		"extensions": []string{DefaultExtension},
		"backups": map[string]any{
			"enabled": false,
			"mode":    DefaultBackupMode,
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# porytext configuration
# See: https://github.com/yaklabco/porytext`
}
