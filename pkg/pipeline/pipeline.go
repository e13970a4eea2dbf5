// Package pipeline runs spritekit's two jobs end to end.
//
// Both the CLI and tests drive the tools through a [Runner], which owns the
// cache and logger so that option handling and caching live in one place.
//
// # Atlas
//
//	source files → content hash → cache lookup → decode → atlas.Pack → PNG + manifest
//
// # Enum
//
//	source file names → identifiers → codegen.SimpleEnum → Rust source
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.BuildAtlas(ctx, pipeline.AtlasOptions{Dir: "icons"})
//	if err != nil {
//	    return err
//	}
//	pngPath, csvPath, err := result.WriteFiles("atlas", atlas.FormatCSV)
package pipeline

import (
	"time"

	"github.com/matzehuels/spritekit/pkg/atlas"
	"github.com/matzehuels/spritekit/pkg/cache"
	"github.com/matzehuels/spritekit/pkg/codegen"
	"github.com/matzehuels/spritekit/pkg/errors"
)

// GeneratedHeader is the first line of every generated Rust file.
const GeneratedHeader = "// Code generated by spritekit. DO NOT EDIT."

// =============================================================================
// Options
// =============================================================================

// AtlasOptions configures [Runner.BuildAtlas].
type AtlasOptions struct {
	Dir      string // directory containing the source PNGs
	Columns  int    // tiles per row (default atlas.DefaultColumns)
	TileSize int    // tile edge in pixels (default atlas.DefaultTileSize)
	Fit      bool   // downscale oversized images instead of failing
	Refresh  bool   // ignore any cached result

	// Exclude lists files in Dir that are not icons, such as a previously
	// written atlas.
	Exclude []string
}

// SetDefaults fills zero values. Negative values are left for validation.
func (o *AtlasOptions) SetDefaults() {
	if o.Columns == 0 {
		o.Columns = atlas.DefaultColumns
	}
	if o.TileSize == 0 {
		o.TileSize = atlas.DefaultTileSize
	}
}

// Validate checks the options before any file is read.
func (o *AtlasOptions) Validate() error {
	if o.Dir == "" {
		return errors.New(errors.ErrCodeInvalidPath, "source directory is required")
	}
	if err := errors.ValidatePositive("grid columns", o.Columns); err != nil {
		return err
	}
	return errors.ValidatePositive("tile size", o.TileSize)
}

// PackOptions converts to [atlas.Options].
func (o *AtlasOptions) PackOptions() atlas.Options {
	return atlas.Options{Columns: o.Columns, TileSize: o.TileSize, Fit: o.Fit}
}

// KeyOpts returns the cache key options.
func (o *AtlasOptions) KeyOpts() cache.AtlasKeyOpts {
	return cache.AtlasKeyOpts{Columns: o.Columns, TileSize: o.TileSize, Fit: o.Fit}
}

// EnumOptions configures [Runner.GenerateEnum].
type EnumOptions struct {
	Dir     string   // directory containing the source PNGs
	Name    string   // enum name (default codegen.DefaultEnumName)
	Derives []string // derive list; nil means codegen.DefaultDerives
	Pascal  bool     // convert file stems to PascalCase variants
}

// SetDefaults fills zero values. An empty, non-nil Derives is kept so
// callers can ask for no derives at all.
func (o *EnumOptions) SetDefaults() {
	if o.Name == "" {
		o.Name = codegen.DefaultEnumName
	}
	if o.Derives == nil {
		o.Derives = codegen.DefaultDerives
	}
}

// =============================================================================
// Results
// =============================================================================

// AtlasResult is a packed atlas ready to be written.
type AtlasResult struct {
	PNG      []byte         // encoded atlas image
	Manifest atlas.Manifest // tile per source image, in source order
	Width    int            // atlas width in pixels
	Height   int            // atlas height in pixels

	SourcesHash string // content hash of the source files
	CacheHit    bool   // whether the result came from the cache
	Stats       Stats
}

// Stats contains timing information.
type Stats struct {
	Images     int
	LoadTime   time.Duration
	PackTime   time.Duration
	EncodeTime time.Duration
}

// EnumResult is generated Rust source.
type EnumResult struct {
	Enum   *codegen.SimpleEnum
	Source string // full file contents, including GeneratedHeader
}
