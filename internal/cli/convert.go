package cli

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/yaklabco/porytext/internal/logging"
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/dialogue"
	"github.com/yaklabco/porytext/pkg/lint"
	"github.com/yaklabco/porytext/pkg/reporter"
)

// Display names for content that does not come from a file.
const (
	stdinName     = "<stdin>"
	clipboardName = "<clipboard>"
)

// convertSpec describes one direction of the convert command.
type convertSpec struct {
	use   string
	short string
	long  string
	mode  dialogue.Mode
}

//nolint:gochecknoglobals // Read-only command descriptions.
var formatCommandSpec = convertSpec{
	use:   "format [paths...]",
	short: "Convert fmsgbox() text to formatted msgbox() calls",
	long: `Convert raw fmsgbox() calls into msgbox() calls whose text is wrapped
into \n, \l and \p escaped lines.

Examples:
  porytext format                         # Format every .pory file
  porytext format scripts.pory --dry-run  # Show the diff without writing
  porytext format scripts.pory --lines 10:40
  cat scripts.pory | porytext format --stdin
  porytext format --clipboard             # Format the clipboard in place`,
	mode: dialogue.Format,
}

//nolint:gochecknoglobals // Read-only command descriptions.
var unformatCommandSpec = convertSpec{
	use:   "unformat [paths...]",
	short: "Convert formatted msgbox() calls back to fmsgbox() text",
	long: `Convert formatted msgbox() calls back into raw fmsgbox() calls, turning
\n and \l into line breaks and \p into blank lines.

Examples:
  porytext unformat                        # Unformat every .pory file
  porytext unformat scripts.pory --dry-run # Show the diff without writing
  cat scripts.pory | porytext unformat --stdin`,
	mode: dialogue.Unformat,
}

type convertFlags struct {
	lines     string
	stdin     bool
	clipboard bool
}

func newConvertCommand(spec convertSpec) *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
		Long:  spec.long,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, spec.mode, &cfg, flags)
		},
	}

	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "print a diff instead of writing files")
	cmd.Flags().StringVar(&flags.lines, "lines", "", "only convert calls within lines first:last (1-based)")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read a document from stdin and write the result to stdout")
	cmd.Flags().BoolVar(&flags.clipboard, "clipboard", false, "convert the clipboard contents in place")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.MarkFlagsMutuallyExclusive("stdin", "clipboard")

	return cmd
}

func runConvert(
	cmd *cobra.Command,
	args []string,
	mode dialogue.Mode,
	cfg *config.Config,
	flags *convertFlags,
) error {
	var lines lint.LineRange
	if flags.lines != "" {
		var err error
		if lines, err = lint.ParseLineRange(flags.lines); err != nil {
			return err
		}
	}

	inMemory := flags.stdin || flags.clipboard
	if inMemory && len(args) > 0 {
		return fmt.Errorf("%w: paths cannot be combined with --stdin or --clipboard", ErrInvalidUsage)
	}
	if !lines.IsZero() && !inMemory && len(args) != 1 {
		return fmt.Errorf("%w: --lines needs exactly one file", ErrInvalidUsage)
	}

	env, err := loadEnv(cmd, cfg)
	if err != nil {
		return err
	}

	opts := lint.PipelineOptionsFromConfig(env.cfg)
	opts.Convert = true
	opts.Mode = mode
	opts.Lines = lines

	converter := *lint.NewEngine(env.cfg).Converter
	converter.Mode = mode

	logging.FromContext(env.ctx).Debug("converting",
		logging.FieldMode, mode.String(),
		logging.FieldDryRun, opts.DryRun,
	)

	switch {
	case flags.stdin:
		return convertStdin(cmd, env, &converter, opts)
	case flags.clipboard:
		return convertClipboard(cmd, env, &converter, opts)
	}

	return convertFiles(cmd, env, &converter, args, opts)
}

// convertFiles rewrites files on disk, or prints diffs in dry-run mode.
func convertFiles(
	cmd *cobra.Command,
	env *commandEnv,
	converter *dialogue.Converter,
	paths []string,
	opts lint.PipelineOptions,
) error {
	result, err := env.run(paths, &opts)
	if err != nil {
		return err
	}

	format := reporter.FormatText
	if opts.DryRun {
		format = reporter.FormatDiff
	}

	repOpts := env.reporterOptions(cmd, format)
	repOpts.ShowSummary = false
	if err := report(env, repOpts, result); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), converter.Status(result.Stats.Conversions))

	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%w: %d failed", ErrFilesFailed, result.Stats.FilesErrored)
	}
	return nil
}

// convertStdin converts a document read from stdin. The result, or the diff
// in dry-run mode, goes to stdout and the status line to stderr.
func convertStdin(cmd *cobra.Command, env *commandEnv, converter *dialogue.Converter, opts lint.PipelineOptions) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	result, err := env.newPipeline().ProcessContent(env.ctx, stdinName, content, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.DryRun:
		fmt.Fprint(out, result.Diff.String())
	case result.Modified:
		_, err = out.Write(result.ModifiedContent)
	default:
		_, err = out.Write(content)
	}
	if err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), converter.Status(result.Conversions))
	return nil
}

// convertClipboard converts the clipboard contents and writes them back.
func convertClipboard(cmd *cobra.Command, env *commandEnv, converter *dialogue.Converter, opts lint.PipelineOptions) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard available on this system", ErrInvalidUsage)
	}

	text, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}

	result, err := env.newPipeline().ProcessContent(env.ctx, clipboardName, []byte(text), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.DryRun:
		fmt.Fprint(out, result.Diff.String())
	case result.Modified:
		if err := clipboard.WriteAll(string(result.ModifiedContent)); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
	}

	fmt.Fprintln(out, converter.Status(result.Conversions))
	return nil
}
