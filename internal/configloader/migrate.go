package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/porytext/pkg/config"
)

// editorSection is the settings namespace of the editor extension.
const editorSection = "pokemonTextValidator"

// MigrationResult contains the result of converting editor settings.
type MigrationResult struct {
	// Config holds only the settings found in the source file.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original settings file.
	SourcePath string
}

// ConvertEditorSettings converts the porytext section of an editor settings
// file (JSON with comments) to a porytext configuration. Both the flat
// "pokemonTextValidator.maxLineLength" form and a nested
// "pokemonTextValidator": {...} object are understood.
func ConvertEditorSettings(path string) (*MigrationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if err := parseJSONC(content, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	result := &MigrationResult{
		Config:     &config.Config{},
		SourcePath: path,
	}

	settings := editorKeys(raw)
	if len(settings) == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no %s settings found in %s", editorSection, path))
	}

	for key, value := range settings {
		applyEditorSetting(result, key, value)
	}

	return result, nil
}

// HasEditorSettings reports whether the settings file at path has any
// porytext settings. Unreadable or malformed files report false.
func HasEditorSettings(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var raw map[string]any
	if err := parseJSONC(content, &raw); err != nil {
		return false
	}

	return len(editorKeys(raw)) > 0
}

// editorKeys collects the settings of the extension section keyed by their
// short name.
func editorKeys(raw map[string]any) map[string]any {
	keys := make(map[string]any)

	if nested, ok := raw[editorSection].(map[string]any); ok {
		for key, value := range nested {
			keys[key] = value
		}
	}

	prefix := editorSection + "."
	for key, value := range raw {
		if short, ok := strings.CutPrefix(key, prefix); ok {
			keys[short] = value
		}
	}

	return keys
}

// applyEditorSetting maps a single extension setting onto the config.
func applyEditorSetting(result *MigrationResult, key string, value any) {
	cfg := result.Config

	switch key {
	case "enabled":
		if enabled, ok := value.(bool); ok {
			cfg.Enabled = &enabled
			return
		}
	case "maxLineLength":
		if n, ok := value.(float64); ok && n == float64(int(n)) {
			cfg.MaxLineLength = int(n)
			return
		}
	case "validColor":
		if s, ok := value.(string); ok {
			cfg.ValidColor = s
			return
		}
	case "warningColor":
		if s, ok := value.(string); ok {
			cfg.WarningColor = s
			return
		}
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown setting %q; skipping", editorSection+"."+key))
		return
	}

	result.Warnings = append(result.Warnings,
		fmt.Sprintf("setting %q has unexpected value %v; skipping", editorSection+"."+key, value))
}

// parseJSONC parses JSON with comments (JSONC format).
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	stripped := stripJSONComments(content)
	if err := json.Unmarshal(stripTrailingCommas(stripped), target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++ // skip the closing /
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			next := content[idx+1]
			if next == '/' {
				inSingleComment = true
				idx++
				continue
			}
			if next == '*' {
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// stripTrailingCommas removes commas directly before a closing brace or
// bracket, which editors accept in settings files.
func stripTrailingCommas(content []byte) []byte {
	result := make([]byte, 0, len(content))
	inString := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
		}

		if char == ',' {
			next := idx + 1
			for next < len(content) && strings.ContainsRune(" \t\r\n", rune(content[next])) {
				next++
			}
			if next < len(content) && (content[next] == '}' || content[next] == ']') {
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# porytext configuration
# Migrated from: %s
# See: https://github.com/yaklabco/porytext
`, filepath.ToSlash(sourcePath))
}
