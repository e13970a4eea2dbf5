package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritekit/pkg/config"
	"github.com/matzehuels/spritekit/pkg/errors"
	"github.com/matzehuels/spritekit/pkg/pipeline"
	"github.com/matzehuels/spritekit/pkg/source"
)

type enumFlags struct {
	name    string
	derives []string
	pascal  bool
	output  string
}

// enumCommand creates the enum command for generating Rust icon enums.
func (c *CLI) enumCommand() *cobra.Command {
	defaults := config.Default().Enum
	var flags enumFlags

	cmd := &cobra.Command{
		Use:   "enum <dir>",
		Short: "Generate a Rust enum with one variant per PNG",
		Long: `Generate a Rust enum with one variant per *.png in a directory.

Variants are the file names without extension, in file-name order. By default
they are used verbatim and must already be valid Rust identifiers; --pascal
converts names like "line-length" to "LineLength".

The source is printed to stdout unless --output is given. Pass --derive=""
to omit the derive attribute.`,
		Example: `  spritekit enum assets/icons > src/icon.rs
  spritekit enum assets/icons --name Tool --pascal -o src/tool.rs
  spritekit enum assets/icons --derive Debug,Clone,Copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cfg.Enum = flags.apply(cmd, cfg.Enum)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runEnum(cmd.Context(), cmd.OutOrStdout(), args[0], cfg.Enum)
		},
	}

	cmd.Flags().StringVarP(&flags.name, "name", "n", defaults.Name, "enum name")
	cmd.Flags().StringSliceVar(&flags.derives, "derive", defaults.Derives, "derive list")
	cmd.Flags().BoolVar(&flags.pascal, "pascal", defaults.Pascal, "convert file names to PascalCase variants")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaults.Output, "output file (stdout if empty)")

	return cmd
}

// apply overlays explicitly set flags on the configured settings.
func (f enumFlags) apply(cmd *cobra.Command, e config.Enum) config.Enum {
	changed := cmd.Flags().Changed
	if changed("name") {
		e.Name = f.name
	}
	if changed("derive") {
		e.Derives = make([]string, 0, len(f.derives))
		for _, d := range f.derives {
			if d = strings.TrimSpace(d); d != "" {
				e.Derives = append(e.Derives, d)
			}
		}
	}
	if changed("pascal") {
		e.Pascal = f.pascal
	}
	if changed("output") {
		e.Output = f.output
	}
	return e
}

// runEnum generates the enum and writes it to settings.Output or out.
func (c *CLI) runEnum(ctx context.Context, out io.Writer, dir string, settings config.Enum) error {
	runner, closeCache := c.newRunner(config.Cache{}, true)
	defer closeCache()

	result, err := runner.GenerateEnum(ctx, pipeline.EnumOptions{
		Dir:     dir,
		Name:    settings.Name,
		Derives: settings.Derives,
		Pascal:  settings.Pascal,
	})
	if errors.Is(err, errors.ErrCodeInvalidInput) {
		fmt.Fprintln(out, source.NoImagesMessage)
		return nil
	}
	if err != nil {
		return err
	}

	if settings.Output == "" {
		_, err := io.WriteString(out, result.Source)
		return err
	}

	if err := result.WriteFile(settings.Output); err != nil {
		return err
	}
	printSuccess("Generated enum %s with %d variants", result.Enum.Name, len(result.Enum.Variants))
	printFile(settings.Output)
	return nil
}
