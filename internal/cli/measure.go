package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/porytext/internal/ui/pretty"
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/fontwidth"
)

func newMeasureCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "measure [text...]",
		Short: "Print the pixel width of dialogue text",
		Long: `Print the estimated pixel width of each line of text and whether it fits
in the text box. Each argument is measured as its own line; with no
arguments, lines are read from stdin.

Examples:
  porytext measure "Hello, {PLAYER}!"
  porytext measure --max 200 "A long line of dialogue"
  cat lines.txt | porytext measure`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd, args, &cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.MaxLineLength, "max", 0, "maximum line width in pixels (default from config)")

	return cmd
}

func runMeasure(cmd *cobra.Command, args []string, cfg *config.Config) error {
	if cfg.MaxLineLength < 0 {
		return fmt.Errorf("%w: --max must be positive", ErrInvalidUsage)
	}

	env, err := loadEnv(cmd, cfg)
	if err != nil {
		return err
	}

	lines := args
	if len(lines) == 0 {
		if lines, err = readLines(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	table := fontwidth.Default()
	if len(env.cfg.Widths) > 0 {
		table = fontwidth.NewTable(env.cfg.Widths)
	}
	limit := env.cfg.LineLimit()

	out := cmd.OutOrStdout()
	colorEnabled := pretty.IsColorEnabled(colorMode(cmd), out)
	styles := pretty.NewStyles(colorEnabled).WithSpanColors(env.cfg.ValidColor, env.cfg.WarningColor)

	w := bufio.NewWriter(out)
	overflowing := 0
	for _, line := range lines {
		width := table.Measure(line)
		status := styles.Success.Render("fits")
		if width > limit {
			overflowing++
			status = styles.Warning.Render(fmt.Sprintf("%dpx over", width-limit))
		}
		fmt.Fprintf(w, "  %dpx / %dpx  %s\n", width, limit, status)
		fmt.Fprint(w, styles.FormatSourceContext(line, table.Classify(line, limit)))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if overflowing > 0 {
		return ErrIssuesFound
	}
	return nil
}

// readLines reads r and splits it into lines, dropping line endings and a
// trailing empty line.
func readLines(r io.Reader) ([]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	text := strings.TrimSuffix(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
