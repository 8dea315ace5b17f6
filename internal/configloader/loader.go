// Package configloader resolves the porytext configuration from its layers:
// built-in defaults, system, user and project files, an explicit --config
// file, PORYTEXT_* environment variables and command-line flags. It also
// migrates settings left behind by the VS Code extension.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/fsutil"
)

// ProjectConfigName is the file written by init and migration.
const ProjectConfigName = ".porytext.yml"

const configFilePermissions = 0o644

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Defaults to the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the --config file, applied over every discovered
	// file.
	ExplicitPath string

	IgnoreSystemConfig   bool
	IgnoreUserConfig     bool
	IgnoreProjectConfig  bool
	IgnoreEnv            bool
	IgnoreEditorSettings bool

	// NonInteractive turns the editor-settings migration prompt into a
	// warning. Load also never prompts when stdin is not a terminal.
	NonInteractive bool

	// CLIConfig holds values set by flags. It wins over every other layer.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and how it was arrived at.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files applied, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal problems for the caller to log.
	Warnings []string

	// MigrationPerformed means editor settings were converted into a new
	// project config during this load.
	MigrationPerformed bool
}

// layer is one config file in precedence order.
type layer struct {
	name   string
	path   string
	ignore bool
}

// Load merges every configuration layer over the defaults. From lowest to
// highest precedence: system file, user file, project file, explicit file,
// environment, flags. The result is validated as a whole and each file is
// validated on its own so errors name the file they come from.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result := &LoadResult{Paths: paths}

	if !opts.IgnoreEditorSettings && !opts.IgnoreProjectConfig {
		migrated, err := offerMigration(result, opts, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			if paths, err = DiscoverPaths(ctx, workDir); err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			result.Paths = paths
		}
	}
	result.Paths.Explicit = opts.ExplicitPath

	layers := []layer{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}

	cfg := config.NewConfig()
	for _, l := range layers {
		if l.ignore || l.path == "" {
			continue
		}
		fileCfg, err := loadLayer(l)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadLayer reads and validates one config file. JSON is read as YAML.
func loadLayer(l layer) (*config.Config, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("load %s config: read file: %w", l.name, err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("load %s config: %s: %w", l.name, l.path, err)
	}

	if validation := ValidateWithFile(cfg, l.path); !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	return cfg, nil
}

// offerMigration handles editor settings found without a project config.
// Interactive sessions are asked whether to convert them; otherwise a warning
// points at the migrate command. It reports whether a config was written.
func offerMigration(result *LoadResult, opts LoadOptions, workDir string) (bool, error) {
	settings := result.Paths.Editor
	if settings == "" || result.Paths.Project != "" {
		return false, nil
	}

	if opts.NonInteractive || !term.IsTerminal(int(os.Stdin.Fd())) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"found porytext settings in %s but no %s; run 'porytext migrate' to convert",
			settings, ProjectConfigName))
		return false, nil
	}

	accepted, err := promptMigration(os.Stdin, os.Stdout, settings)
	if err != nil || !accepted {
		return false, err
	}

	migration, err := ConvertEditorSettings(settings)
	if err != nil {
		return false, fmt.Errorf("convert editor settings: %w", err)
	}

	target := filepath.Join(workDir, ProjectConfigName)
	if err := WriteConfig(migration.Config, target, GenerateMigrationHeader(settings)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings, migration.Warnings...)
	result.Warnings = append(result.Warnings, fmt.Sprintf("migrated %s to %s", settings, target))
	return true, nil
}

// promptMigration asks on out and reads one answer from in. An empty answer
// means yes.
func promptMigration(in io.Reader, out io.Writer, settingsPath string) (bool, error) {
	_, err := fmt.Fprintf(out, "Found porytext settings in %s but no %s\nConvert them now? [Y/n] ",
		settingsPath, ProjectConfigName)
	if err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return slices.Contains([]string{"", "y", "yes"}, answer), nil
}

// WriteConfig atomically writes cfg as YAML under header.
func WriteConfig(cfg *config.Config, path, header string) error {
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := fsutil.WriteAtomic(context.Background(), path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
