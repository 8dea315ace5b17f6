package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/porytext/internal/logging"
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/reporter"
	"github.com/yaklabco/porytext/pkg/runner"
)

type checkFlags struct {
	format  string
	ignore  []string
	compact bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check dialogue line widths",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Check that every dialogue line fits in the text box.

By default, checks all .pory files in the current directory and
subdirectories. Each line wider than max_line_length pixels is reported
with the overflowing part highlighted.

Examples:
  porytext check                     # Check current directory
  porytext check data/maps/          # Check a directory
  porytext check scripts.pory        # Check a single file
  porytext check --format table      # List every measured line
  porytext check --format json       # Output as JSON for CI
  porytext check --strict            # Fail on warnings`

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	format, err := parseFormat(flags.format)
	if err != nil {
		return err
	}

	cfg.Format = config.OutputFormat(format)
	cfg.Ignore = flags.ignore

	env, err := loadEnv(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := env.run(args, nil)
	if err != nil {
		return err
	}

	opts := env.reporterOptions(cmd, format)
	opts.Compact = flags.compact

	if err := report(env, opts, result); err != nil {
		return err
	}

	return resultError(result, env.cfg.Strict)
}

// report writes result with a reporter built from opts.
func report(env *commandEnv, opts reporter.Options, result *runner.Result) error {
	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(env.ctx, result); err != nil {
		logging.FromContext(env.ctx).Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return nil
}

// resultError maps a finished run to the error that drives the exit code.
func resultError(result *runner.Result, strict bool) error {
	if ExitCodeFromResult(result, strict) != ExitSuccess {
		return ErrIssuesFound
	}
	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%w: %d failed", ErrFilesFailed, result.Stats.FilesErrored)
	}
	return nil
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.MaxLineLength, "max", 0, "maximum line width in pixels (default from config)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&cfg.NoContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
