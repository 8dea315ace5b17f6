package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/porytext/internal/configloader"
	"github.com/yaklabco/porytext/internal/logging"
)

type migrateFlags struct {
	force  bool
	stdout bool
	output string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [settings.json]",
		Short: "Convert VS Code extension settings to a porytext configuration",
		Long: `Convert the pokemonTextValidator.* entries of a VS Code settings file
into a porytext configuration. Comments and trailing commas in the
settings file are accepted.

Without an argument, .vscode/settings.json in the current directory is
read.

Examples:
  porytext migrate                          Convert .vscode/settings.json
  porytext migrate path/to/settings.json    Convert a specific file
  porytext migrate --output config.yml      Write to a custom path
  porytext migrate --stdout                 Print instead of writing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMigrate(cmd.OutOrStdout(), input, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing output file")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "Print the configuration instead of writing it")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "Output file path")

	return cmd
}

func runMigrate(out io.Writer, input string, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	if input == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		if input = configloader.FindEditorSettings(cwd); input == "" {
			return fmt.Errorf("no editor settings with porytext options in %s: %w", cwd, fs.ErrNotExist)
		}
		logger.Info("found editor settings", logging.FieldPath, input)
	}

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	var target string
	if !flags.stdout {
		var err error
		if target, err = checkOverwrite(flags.output, flags.force); err != nil {
			return err
		}
	}

	result, err := configloader.ConvertEditorSettings(input)
	if err != nil {
		return fmt.Errorf("%w: convert settings: %w", ErrConfig, err)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	header := configloader.GenerateMigrationHeader(input)
	if flags.stdout {
		content, err := result.Config.ToYAMLWithHeader(header)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = out.Write(content)
		return err
	}

	if err := configloader.WriteConfig(result.Config, target, header); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	logger.Info("migration complete", logging.FieldInput, input, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review the warnings above and check the migrated configuration")
	}
	return nil
}
