// Package cli wires the porytext commands together with cobra.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/porytext/internal/logging"
)

// BuildInfo is stamped into the binary by the linker.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

//nolint:gochecknoglobals // fixed set of --color values
var colorModes = []string{"auto", "always", "never"}

// globalFlags are the persistent flags every subcommand inherits.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

func (g *globalFlags) apply(_ *cobra.Command, _ []string) error {
	if !slices.Contains(colorModes, g.color) {
		return fmt.Errorf("%w: --color must be one of %v, got %q", ErrInvalidUsage, colorModes, g.color)
	}
	if g.debug {
		logging.SetLevel("debug")
	}
	return nil
}

// NewRootCommand builds the porytext command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "porytext",
		Short: "Format and width-check Poryscript dialogue",
		Long: `porytext formats and width-checks the dialogue of Poryscript (.pory) files.

It converts raw fmsgbox() text into formatted msgbox() calls with \n, \l and
\p escapes and back again, and estimates the pixel width of every dialogue
line so text that would overflow the in-game text box is caught before it
ships.`,
		PersistentPreRunE: flags.apply,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", colorModes[0], "colorize output: auto, always, never")

	root.AddCommand(
		newCheckCommand(),
		newConvertCommand(formatCommandSpec),
		newConvertCommand(unformatCommandSpec),
		newMeasureCommand(),
		newWatchCommand(),
		newInitCommand(),
		newMigrateCommand(),
		newVersionCommand(info),
	)

	return root
}
