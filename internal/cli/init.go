package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/porytext/internal/configloader"
	"github.com/yaklabco/porytext/internal/logging"
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/fsutil"
)

const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new porytext configuration file",
		Long: `Create a new .porytext.yml configuration file in the current directory
with the default text box width, colors, and dialogue function names.

Examples:
  porytext init                      Create .porytext.yml
  porytext init --full               Also list every built-in placeholder width
  porytext init --format json        Create .porytext.json instead
  porytext init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "List every built-in placeholder width")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: "+configloader.ProjectConfigName+" or .porytext.json)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".porytext.json"
		} else {
			outputPath = configloader.ProjectConfigName
		}
	}

	absPath, err := checkOverwrite(outputPath, flags.force)
	if err != nil {
		return err
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template lists every built-in placeholder width")
	}

	logger.Info("run 'porytext check' to measure your scripts")

	return nil
}
