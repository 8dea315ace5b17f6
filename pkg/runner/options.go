// Package runner discovers Poryscript sources and checks or converts them
// on a pool of workers.
package runner

import (
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/lint"
)

// Options describes one run over a set of paths.
type Options struct {
	// Paths lists files and directories. Empty means the working directory.
	// Named files are processed whatever their extension.
	Paths []string

	// WorkingDir resolves relative paths and ignore globs. Empty means the
	// process working directory.
	WorkingDir string

	// Extensions selects files found while walking directories.
	Extensions []string

	// ExcludeGlobs are doublestar patterns matched against slash paths
	// relative to WorkingDir.
	ExcludeGlobs []string

	IgnoreGitignore bool
	FollowSymlinks  bool

	// Jobs caps the worker pool. Zero or less uses one worker per CPU.
	Jobs int

	Config *config.Config

	// Pipeline overrides the per-file options. Nil checks widths only.
	Pipeline *lint.PipelineOptions
}

// DefaultExtensions returns the extensions walked when none are configured.
func DefaultExtensions() []string {
	return []string{config.DefaultExtension}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) > 0 {
		return o.Paths
	}
	return []string{"."}
}

func (o Options) pipelineOptions() lint.PipelineOptions {
	if o.Pipeline == nil {
		return lint.PipelineOptionsFromConfig(o.Config)
	}
	return *o.Pipeline
}
