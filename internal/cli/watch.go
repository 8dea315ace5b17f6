package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/porytext/internal/logging"
	"github.com/yaklabco/porytext/internal/watch"
	"github.com/yaklabco/porytext/pkg/config"
)

type watchFlags struct {
	format string
}

func newWatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-check dialogue widths whenever files change",
		Long: `Check the given paths once, then re-check each .pory file as it is saved
until interrupted.

Examples:
  porytext watch                 # Watch the current directory
  porytext watch data/maps/      # Watch a directory`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().BoolVar(&cfg.NoContext, "no-context", false, "hide source line context in output")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, cfg *config.Config, flags *watchFlags) error {
	format, err := parseFormat(flags.format)
	if err != nil {
		return err
	}

	env, err := loadEnv(cmd, cfg)
	if err != nil {
		return err
	}
	logger := logging.FromContext(env.ctx)

	roots := args
	if len(roots) == 0 {
		roots = []string{env.workDir}
	}

	watcher, err := watch.New(watch.Options{
		Roots:      roots,
		Extensions: env.cfg.FileExtensions(),
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Debug("close watcher", logging.FieldError, closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(env.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	env.ctx = ctx

	check := func(_ context.Context, paths []string) error {
		result, err := env.run(paths, nil)
		if err != nil {
			return err
		}
		return report(env, env.reporterOptions(cmd, format), result)
	}

	if err := check(ctx, roots); err != nil {
		return err
	}

	logger.Info("watching for changes", logging.FieldPaths, roots)

	if err := watcher.Run(ctx, check); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	return nil
}
