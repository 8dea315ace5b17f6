package configloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()

	vscodeDir := filepath.Join(dir, ".vscode")
	if err := os.MkdirAll(vscodeDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(vscodeDir, "settings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestConvertEditorSettings_Flat(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, t.TempDir(), `{
  // editor settings
  "editor.tabSize": 4,
  "pokemonTextValidator.enabled": false,
  "pokemonTextValidator.maxLineLength": 220,
  "pokemonTextValidator.validColor": "#00FF00",
  /* highlight */
  "pokemonTextValidator.warningColor": "#FF0000",
}`)

	result, err := ConvertEditorSettings(path)
	if err != nil {
		t.Fatalf("ConvertEditorSettings() error = %v", err)
	}

	cfg := result.Config
	if cfg.Enabled == nil || *cfg.Enabled {
		t.Error("expected enabled: false")
	}
	if cfg.MaxLineLength != 220 {
		t.Errorf("MaxLineLength = %d, want 220", cfg.MaxLineLength)
	}
	if cfg.ValidColor != "#00FF00" || cfg.WarningColor != "#FF0000" {
		t.Errorf("colors = %q/%q", cfg.ValidColor, cfg.WarningColor)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestConvertEditorSettings_NestedAndUnknown(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, t.TempDir(), `{
  "pokemonTextValidator": {
    "maxLineLength": 200.5,
    "fontSize": 12
  }
}`)

	result, err := ConvertEditorSettings(path)
	if err != nil {
		t.Fatalf("ConvertEditorSettings() error = %v", err)
	}

	if result.Config.MaxLineLength != 0 {
		t.Errorf("fractional width should be skipped, got %d", result.Config.MaxLineLength)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", result.Warnings)
	}
}

func TestConvertEditorSettings_NoSection(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, t.TempDir(), `{"editor.tabSize": 2}`)

	if HasEditorSettings(path) {
		t.Error("HasEditorSettings() = true for unrelated settings")
	}

	result, err := ConvertEditorSettings(path)
	if err != nil {
		t.Fatalf("ConvertEditorSettings() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "no pokemonTextValidator settings") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestFindEditorSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if got := FindEditorSettings(dir); got != "" {
		t.Errorf("FindEditorSettings() = %q, want empty", got)
	}

	path := writeSettings(t, dir, `{"pokemonTextValidator.enabled": true}`)
	if got := FindEditorSettings(dir); got != path {
		t.Errorf("FindEditorSettings() = %q, want %q", got, path)
	}
}

func TestStripJSONComments(t *testing.T) {
	t.Parallel()

	in := `{"a": "// not a comment", /* c */ "b": 1 // trailing
}`
	got := string(stripJSONComments([]byte(in)))
	if !strings.Contains(got, `"// not a comment"`) {
		t.Errorf("string content was stripped: %s", got)
	}
	if strings.Contains(got, "/* c */") || strings.Contains(got, "trailing") {
		t.Errorf("comments were kept: %s", got)
	}
}

func TestStripTrailingCommas(t *testing.T) {
	t.Parallel()

	got := string(stripTrailingCommas([]byte(`{"a": [1, 2,], "b": ",}",}`)))
	if got != `{"a": [1, 2], "b": ",}"}` {
		t.Errorf("stripTrailingCommas() = %s", got)
	}
}
