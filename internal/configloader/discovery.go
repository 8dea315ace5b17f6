package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// ConfigPaths holds the config files found for a working directory. Empty
// fields mean no file was found at that layer.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string

	// Editor is a .vscode/settings.json that still carries extension
	// settings and can be migrated.
	Editor string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// Project config names, most preferred first. JSON is read by the YAML
	// decoder.
	projectConfigFiles = []string{
		".porytext.yml",
		".porytext.yaml",
		".porytext.json",
		"porytext.yml",
		"porytext.yaml",
	}

	layerConfigFiles = []string{"config.yaml", "config.yml"}

	// The upward project search stops in a directory holding any of these.
	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

const editorSettingsDir = ".vscode"

const editorSettingsName = "settings.json"

// DiscoverPaths locates the system, user and project config files for
// workDir, plus any editor settings awaiting migration.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigFiles),
		User:    firstFile(userConfigDir(), layerConfigFiles),
		Project: project,
		Editor:  FindEditorSettings(workDir),
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/porytext"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "porytext")
}

// userConfigDir honours XDG_CONFIG_HOME and falls back to ~/.config.
func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "porytext")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "porytext")
}

// FindProjectConfig walks up from startDir and returns the first project
// config file it sees. The walk ends without a match at a VCS root, the home
// directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// FindEditorSettings returns dir/.vscode/settings.json when it exists and
// holds porytext settings.
func FindEditorSettings(dir string) string {
	path := filepath.Join(dir, editorSettingsDir, editorSettingsName)
	if isFile(path) && HasEditorSettings(path) {
		return path
	}
	return ""
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	i := slices.IndexFunc(names, func(name string) bool {
		return isFile(filepath.Join(dir, name))
	})
	if i < 0 {
		return ""
	}
	return filepath.Join(dir, names[i])
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsRootMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
