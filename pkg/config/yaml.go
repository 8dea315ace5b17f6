package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// ToYAML encodes the file-backed fields of c. CLI-only fields carry a "-"
// tag and are never written.
func (c *Config) ToYAML() ([]byte, error) {
	return c.ToYAMLWithHeader("")
}

// ToYAMLWithHeader encodes c after a comment header, separated by a blank
// line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if header != "" {
		buf.WriteString(strings.TrimRight(header, "\n"))
		buf.WriteString("\n\n")
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML decodes a config file. JSON input is accepted as YAML. Absent
// keys stay zero so the result can be layered with merge.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.Enabled != nil {
		enabled := *c.Enabled
		clone.Enabled = &enabled
	}
	clone.Functions.Validate = slices.Clone(c.Functions.Validate)
	clone.Widths = maps.Clone(c.Widths)
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)

	return &clone
}
