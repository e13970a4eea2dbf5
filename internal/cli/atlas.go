package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritekit/pkg/config"
	"github.com/matzehuels/spritekit/pkg/errors"
	"github.com/matzehuels/spritekit/pkg/pipeline"
	"github.com/matzehuels/spritekit/pkg/source"
)

// atlasFlags holds the command-line flags for the atlas command. They only
// override the config file when set explicitly.
type atlasFlags struct {
	columns  int
	tileSize int
	output   string
	format   string
	fit      bool
	noCache  bool
	refresh  bool
	watch    bool
}

// atlasCommand creates the atlas command for packing icon directories.
func (c *CLI) atlasCommand() *cobra.Command {
	defaults := config.Default().Atlas
	var flags atlasFlags

	cmd := &cobra.Command{
		Use:   "atlas <dir>",
		Short: "Pack a directory of PNGs into a sprite atlas",
		Long: `Pack every *.png in a directory into one atlas image.

Images are placed in file-name order, row-major, on a grid of square tiles,
each centered in its tile. Next to the image a manifest records the tile of
every icon as name,x,y,width,height.

Results are cached locally; a rerun on unchanged icons skips decoding.`,
		Example: `  spritekit atlas assets/icons
  spritekit atlas assets/icons --grid-cols 8 --tile-size 32 -o dist/icons
  spritekit atlas assets/icons --manifest-format json --fit
  spritekit atlas assets/icons --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cfg.Atlas = flags.apply(cmd, cfg.Atlas)
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, out := cmd.Context(), cmd.OutOrStdout()
			if !flags.watch {
				return c.runAtlas(ctx, out, args[0], cfg, flags)
			}
			return c.watchAtlas(ctx, out, args[0], cfg, flags)
		},
	}

	cmd.Flags().IntVar(&flags.columns, "grid-cols", defaults.GridColumns, "tiles per row")
	cmd.Flags().IntVar(&flags.tileSize, "tile-size", defaults.TileSize, "tile edge in pixels")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaults.Output, "output base path (writes <output>.png and <output>.<format>)")
	cmd.Flags().StringVar(&flags.format, "manifest-format", defaults.ManifestFormat, "manifest format: csv, json")
	cmd.Flags().BoolVar(&flags.fit, "fit", defaults.Fit, "downscale images larger than a tile instead of failing")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "repack even if a cached atlas exists")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "repack whenever a PNG in the directory changes")

	cmd.AddCommand(c.inspectCommand())

	return cmd
}

// apply overlays explicitly set flags on the configured settings.
func (f atlasFlags) apply(cmd *cobra.Command, a config.Atlas) config.Atlas {
	changed := cmd.Flags().Changed
	if changed("grid-cols") {
		a.GridColumns = f.columns
	}
	if changed("tile-size") {
		a.TileSize = f.tileSize
	}
	if changed("output") {
		a.Output = f.output
	}
	if changed("manifest-format") {
		a.ManifestFormat = f.format
	}
	if changed("fit") {
		a.Fit = f.fit
	}
	return a
}

// runAtlas packs dir and writes the image and manifest.
func (c *CLI) runAtlas(ctx context.Context, out io.Writer, dir string, cfg config.Config, flags atlasFlags) error {
	settings := cfg.Atlas
	runner, closeCache := c.newRunner(cfg.Cache, flags.noCache)
	defer closeCache()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Packing atlas...")
	spinner.Start()

	result, err := runner.BuildAtlas(ctx, pipeline.AtlasOptions{
		Dir:      dir,
		Columns:  settings.GridColumns,
		TileSize: settings.TileSize,
		Fit:      settings.Fit,
		Refresh:  flags.refresh,
		Exclude:  []string{settings.Output + ".png"},
	})
	if errors.Is(err, errors.ErrCodeInvalidInput) {
		spinner.Stop()
		fmt.Fprintln(out, source.NoImagesMessage)
		return nil
	}
	if err != nil {
		spinner.StopWithError("Packing failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	pngPath, manifestPath, err := result.WriteFiles(settings.Output, settings.ManifestFormat)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d images", result.Stats.Images))

	printSuccess("Atlas complete")
	printFile(pngPath)
	printFile(manifestPath)
	printAtlasStats(result.Stats.Images, result.Width, result.Height, result.CacheHit)
	printNewline()
	printNextStep("Inspect", appName+" atlas inspect "+manifestPath)

	return nil
}

// watchAtlas packs dir once, then again after every burst of changes until
// ctx is done. Failed repacks are logged and the watch continues.
func (c *CLI) watchAtlas(ctx context.Context, out io.Writer, dir string, cfg config.Config, flags atlasFlags) error {
	w, err := source.NewWatcher(dir)
	if err != nil {
		return err
	}
	if err := w.Ignore(cfg.Atlas.Output + ".png"); err != nil {
		w.Close()
		return err
	}
	if err := c.runAtlas(ctx, out, dir, cfg, flags); err != nil {
		w.Close()
		return err
	}
	printInfo("Watching %s for changes (Ctrl-C to stop)", dir)

	return w.Run(ctx, func() {
		c.Logger.Debug("change detected", "dir", dir)
		if err := c.runAtlas(ctx, out, dir, cfg, flags); err != nil {
			c.Logger.Error("repack failed", "error", err)
		}
	})
}
