package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/porytext/internal/configloader"
	"github.com/yaklabco/porytext/internal/logging"
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/lint"
	"github.com/yaklabco/porytext/pkg/reporter"
	"github.com/yaklabco/porytext/pkg/runner"
)

// commandEnv is the resolved state shared by the commands that process files.
type commandEnv struct {
	ctx     context.Context
	workDir string
	cfg     *config.Config
}

// loadEnv loads and merges configuration for cmd. Values set in cliCfg take
// precedence over every file and environment source.
func loadEnv(cmd *cobra.Command, cliCfg *config.Config) (*commandEnv, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldMaxWidth, cfg.LineLimit(),
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	return &commandEnv{
		ctx:     logging.WithLogger(ctx, logger),
		workDir: workDir,
		cfg:     cfg,
	}, nil
}

// newPipeline builds the width-checking engine and safety pipeline.
func (e *commandEnv) newPipeline() *lint.Pipeline {
	return lint.NewPipeline(lint.NewEngine(e.cfg))
}

// run processes paths with the configured worker pool. A nil pipelineOpts
// only checks widths.
func (e *commandEnv) run(paths []string, pipelineOpts *lint.PipelineOptions) (*runner.Result, error) {
	logger := logging.FromContext(e.ctx)

	runOpts := runner.Options{
		Paths:        paths,
		WorkingDir:   e.workDir,
		Extensions:   e.cfg.FileExtensions(),
		ExcludeGlobs: e.cfg.Ignore,
		Jobs:         e.cfg.Jobs,
		Config:       e.cfg,
		Pipeline:     pipelineOpts,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(e.newPipeline()).Run(e.ctx, runOpts)
	if err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldConversions, result.Stats.Conversions,
	)

	return result, nil
}

// colorMode returns the --color value, defaulting to auto.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil || mode == "" {
		return "auto"
	}
	return mode
}

// reporterOptions builds reporter options that write to the command's
// output streams in the configured colors.
func (e *commandEnv) reporterOptions(cmd *cobra.Command, format reporter.Format) reporter.Options {
	return reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        colorMode(cmd),
		ValidColor:   e.cfg.ValidColor,
		WarningColor: e.cfg.WarningColor,
		ShowContext:  !e.cfg.NoContext,
		ShowSummary:  true,
		GroupByFile:  true,
		WorkingDir:   e.workDir,
	}
}

// parseFormat validates a --format value.
func parseFormat(value string) (reporter.Format, error) {
	format, err := reporter.ParseFormat(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	return format, nil
}

// checkOverwrite resolves path and refuses to replace an existing file unless
// force is set.
func checkOverwrite(path string, force bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return abs, nil
	}
	if !force {
		return "", fmt.Errorf("%w: %q already exists; use --force to overwrite", ErrInvalidUsage, path)
	}
	logging.NewInteractive().Warn("overwriting existing file", logging.FieldPath, path)
	return abs, nil
}
