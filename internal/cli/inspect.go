package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritekit/pkg/atlas"
	"github.com/matzehuels/spritekit/pkg/errors"
)

// inspectCommand creates the "atlas inspect" subcommand.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		format      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "Print the entries of an atlas manifest",
		Long: `Print the entries of an atlas manifest as a table.

The manifest format is taken from the file extension unless --format is set.
With --interactive, browse the entries and filter them by name; the selected
entry is printed on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readManifestFile(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			if interactive {
				return c.browseManifest(cmd.Context(), cmd.OutOrStdout(), m)
			}
			printManifest(cmd.OutOrStdout(), m)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "manifest format: csv, json (default: from extension)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse entries interactively")

	return cmd
}

// readManifestFile reads the manifest at path. An empty format is inferred
// from the extension.
func readManifestFile(ctx context.Context, path, format string) (atlas.Manifest, error) {
	if format == "" {
		var err error
		if format, err = atlas.FormatFromPath(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "manifest not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	m, err := atlas.ReadManifest(f, format)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("read manifest", "path", path, "format", format, "entries", len(m))
	return m, nil
}

func printManifest(w io.Writer, m atlas.Manifest) {
	width, height := m.Bounds()
	fmt.Fprintln(w, renderManifestTable(m))
	printKeyValue(w, "Entries", strconv.Itoa(len(m)))
	printKeyValue(w, "Canvas", fmt.Sprintf("%dx%d px", width, height))
}

// browseManifest runs the interactive browser and prints the selection.
func (c *CLI) browseManifest(ctx context.Context, w io.Writer, m atlas.Manifest) error {
	if len(m) == 0 {
		printWarning("Manifest has no entries")
		return nil
	}

	p := tea.NewProgram(NewManifestModel(m), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "run browser")
	}

	if model, ok := final.(ManifestModel); ok && model.Selected != nil {
		c.Logger.Debug("selected entry", "name", model.Selected.Name)
		fmt.Fprintln(w, model.Selected.String())
	}
	return nil
}
