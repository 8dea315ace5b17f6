package configloader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/porytext/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.LineLimit() != config.DefaultMaxLineLength {
		t.Errorf("LineLimit() = %d, want %d", cfg.LineLimit(), config.DefaultMaxLineLength)
	}
	if !cfg.IsEnabled() {
		t.Error("expected checking enabled by default")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ".porytext.yml"), `
max_line_length: 224
functions:
  formatted: speak
widths:
  "{PLAYER}": 42
`)

	sub := filepath.Join(root, "data", "maps")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolatedOptions(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.MaxLineLength != 224 {
		t.Errorf("MaxLineLength = %d, want 224", cfg.MaxLineLength)
	}
	if cfg.FormattedName() != "speak" || cfg.RawName() != "fmsgbox" {
		t.Errorf("functions = %+v", cfg.Functions)
	}
	if cfg.Widths["{PLAYER}"] != 42 {
		t.Errorf("Widths = %v", cfg.Widths)
	}
	if cfg.ValidColor != config.DefaultValidColor {
		t.Errorf("ValidColor = %q, want default", cfg.ValidColor)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".porytext.yml"), "max_line_length: 100\n")

	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("FindProjectConfig() = %q, want empty", path)
	}
}

func TestLoad_ExplicitAndCLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".porytext.yml"), "max_line_length: 224\nwarning_color: \"#111111\"\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "max_line_length: 230\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{MaxLineLength: 240, Strict: true}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.MaxLineLength != 240 {
		t.Errorf("MaxLineLength = %d, want 240", result.Config.MaxLineLength)
	}
	if result.Config.WarningColor != "#111111" {
		t.Errorf("WarningColor = %q", result.Config.WarningColor)
	}
	if !result.Config.Strict {
		t.Error("expected Strict from CLI")
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".porytext.yml")
	writeFile(t, path, "warning_color: orange\n")

	_, err := Load(context.Background(), isolatedOptions(dir))

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Load() error = %v, want *ValidationError", err)
	}
	if vErr.Field != "warning_color" || vErr.FilePath != path {
		t.Errorf("error = %+v", vErr)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".porytext.yml"), "max_line_length: [\n")

	if _, err := Load(context.Background(), isolatedOptions(dir)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad_EditorSettingsWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, `{"pokemonTextValidator.maxLineLength": 200}`)

	result, err := Load(context.Background(), isolatedOptions(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.MigrationPerformed {
		t.Error("non-interactive load must not migrate")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "porytext migrate") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolatedOptions(t.TempDir())); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"PORYTEXT_ENABLED":            "false",
		"PORYTEXT_MAX_LINE_LENGTH":    "216",
		"PORYTEXT_VALIDATE_FUNCTIONS": "msgbox, speak ,",
		"PORYTEXT_BACKUPS_MODE":       "none",
	}

	cfg := config.NewConfig()
	if err := loadFromLookup(cfg, func(key string) string { return env[key] }); err != nil {
		t.Fatalf("loadFromLookup() error = %v", err)
	}

	if cfg.IsEnabled() {
		t.Error("expected checking disabled")
	}
	if cfg.MaxLineLength != 216 {
		t.Errorf("MaxLineLength = %d", cfg.MaxLineLength)
	}
	if strings.Join(cfg.Functions.Validate, ",") != "msgbox,speak" {
		t.Errorf("Validate = %v", cfg.Functions.Validate)
	}
	if cfg.Backups.Mode != "none" {
		t.Errorf("Backups.Mode = %q", cfg.Backups.Mode)
	}
	if GetEnvVarName("max_line_length") != "PORYTEXT_MAX_LINE_LENGTH" {
		t.Error("GetEnvVarName() mismatch")
	}
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Parallel()

	err := loadFromLookup(config.NewConfig(), func(key string) string {
		if key == "PORYTEXT_MAX_LINE_LENGTH" {
			return "wide"
		}
		return ""
	})
	if err == nil || !strings.Contains(err.Error(), "PORYTEXT_MAX_LINE_LENGTH") {
		t.Errorf("loadFromLookup() error = %v", err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	disabled := false
	base := config.NewConfig()
	base.Widths = map[string]int{"{PLAYER}": 48, "{RIVAL}": 42}

	merged := MergeAll(base, &config.Config{
		Enabled: &disabled,
		Widths:  map[string]int{"{RIVAL}": 40},
		Ignore:  []string{"build/**"},
	}, nil)

	if merged.IsEnabled() {
		t.Error("expected Enabled overridden to false")
	}
	if merged.Widths["{PLAYER}"] != 48 || merged.Widths["{RIVAL}"] != 40 {
		t.Errorf("Widths = %v", merged.Widths)
	}
	if merged.RawName() != "fmsgbox" {
		t.Errorf("RawName() = %q", merged.RawName())
	}
	if len(merged.Ignore) != 1 {
		t.Errorf("Ignore = %v", merged.Ignore)
	}
	if base.Widths["{RIVAL}"] != 42 {
		t.Error("merge modified its base")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"defaults valid", func(*config.Config) {}, ""},
		{"negative width limit", func(c *config.Config) { c.MaxLineLength = -1 }, "max_line_length"},
		{"bad color", func(c *config.Config) { c.ValidColor = "#12" }, "valid_color"},
		{"alpha color accepted", func(c *config.Config) { c.ValidColor = "#0072B280" }, ""},
		{"same function names", func(c *config.Config) { c.Functions.Formatted = "fmsgbox" }, "functions"},
		{"bad function name", func(c *config.Config) { c.Functions.Raw = "f msgbox" }, "functions.raw"},
		{"negative width", func(c *config.Config) { c.Widths = map[string]int{"x": -2} }, "widths.x"},
		{"bad format", func(c *config.Config) { c.Format = "xml" }, "format"},
		{"bad backup mode", func(c *config.Config) { c.Backups.Mode = "xdg" }, "backups.mode"},
		{"bad glob", func(c *config.Config) { c.Ignore = []string{"[abc"} }, "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)
			result := Validate(cfg)

			if tt.field == "" {
				if !result.Valid() {
					t.Errorf("unexpected errors: %v", result.AllMessages())
				}
				return
			}
			if result.Valid() {
				t.Fatalf("expected error on %s", tt.field)
			}
			if result.Errors[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", result.Errors[0].Field, tt.field)
			}
		})
	}
}

func TestValidate_ExtensionWarning(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Extensions = []string{"pory"}

	result := Validate(cfg)
	if !result.Valid() || !result.HasWarnings() {
		t.Errorf("expected a warning only, got %v", result.AllMessages())
	}
}

func TestPromptMigration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := promptMigration(strings.NewReader(tt.input), &out, ".vscode/settings.json")
		if err != nil {
			t.Fatalf("promptMigration(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("promptMigration(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "[Y/n]") {
			t.Errorf("prompt not written: %q", out.String())
		}
	}
}
