package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spritekit/pkg/atlas"
	"github.com/matzehuels/spritekit/pkg/cache"
	"github.com/matzehuels/spritekit/pkg/codegen"
	"github.com/matzehuels/spritekit/pkg/errors"
	"github.com/matzehuels/spritekit/pkg/observability"
	"github.com/matzehuels/spritekit/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// results between calls.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// keyTypeAtlas labels atlas entries in cache hooks.
const keyTypeAtlas = "atlas"

// cachedAtlas is the cache payload for a packed atlas.
type cachedAtlas struct {
	PNG      []byte         `json:"png"`
	Manifest atlas.Manifest `json:"manifest"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
}

// =============================================================================
// Atlas
// =============================================================================

// BuildAtlas loads the PNGs in opts.Dir and packs them. When the source files
// and pack options match a cached run, the cached bytes are returned without
// decoding anything.
func (r *Runner) BuildAtlas(ctx context.Context, opts AtlasOptions) (*AtlasResult, error) {
	start := time.Now()
	observability.Pipeline().OnAtlasStart(ctx, opts.Dir)

	result, err := r.buildAtlas(ctx, opts)

	images := 0
	if result != nil {
		images = result.Stats.Images
	}
	observability.Pipeline().OnAtlasComplete(ctx, opts.Dir, images, time.Since(start), err)
	return result, err
}

func (r *Runner) buildAtlas(ctx context.Context, opts AtlasOptions) (*AtlasResult, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	loadStart := time.Now()
	files, err := source.Load(ctx, opts.Dir, opts.Exclude...)
	if err != nil {
		return nil, err
	}

	result := &AtlasResult{
		SourcesHash: hashSources(files),
	}
	result.Stats.Images = len(files)
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Debug("loaded sources",
		"dir", opts.Dir,
		"images", len(files),
		"hash", result.SourcesHash[:12],
		"duration", result.Stats.LoadTime)

	key := r.Keyer.AtlasKey(result.SourcesHash, opts.KeyOpts())
	if !opts.Refresh {
		if cached, ok := r.lookupAtlas(ctx, key); ok {
			result.PNG = cached.PNG
			result.Manifest = cached.Manifest
			result.Width = cached.Width
			result.Height = cached.Height
			result.CacheHit = true
			r.Logger.Debug("atlas cache hit", "key", key)
			return result, nil
		}
	}

	packStart := time.Now()
	images, err := source.Decode(ctx, files)
	if err != nil {
		return nil, err
	}
	canvas, manifest, err := atlas.Pack(images, opts.PackOptions())
	if err != nil {
		return nil, err
	}
	result.Stats.PackTime = time.Since(packStart)

	r.Logger.Info("packed atlas",
		"images", len(images),
		"width", canvas.Bounds().Dx(),
		"height", canvas.Bounds().Dy(),
		"duration", result.Stats.PackTime)

	encodeStart := time.Now()
	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode atlas")
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	result.PNG = buf.Bytes()
	result.Manifest = manifest
	result.Width = canvas.Bounds().Dx()
	result.Height = canvas.Bounds().Dy()

	r.storeAtlas(ctx, key, result)
	return result, nil
}

func (r *Runner) lookupAtlas(ctx context.Context, key string) (cachedAtlas, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return cachedAtlas{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeAtlas)
		return cachedAtlas{}, false
	}
	var cached cachedAtlas
	if err := json.Unmarshal(data, &cached); err != nil || len(cached.PNG) == 0 {
		r.Logger.Debug("discarding unreadable cache entry", "key", key)
		observability.Cache().OnCacheMiss(ctx, keyTypeAtlas)
		return cachedAtlas{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeAtlas)
	return cached, true
}

func (r *Runner) storeAtlas(ctx context.Context, key string, res *AtlasResult) {
	data, err := json.Marshal(cachedAtlas{
		PNG:      res.PNG,
		Manifest: res.Manifest,
		Width:    res.Width,
		Height:   res.Height,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLAtlas); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeAtlas, len(data))
}

func hashSources(files []source.File) string {
	names := make([]string, len(files))
	contents := make([][]byte, len(files))
	for i, f := range files {
		names[i] = f.Name
		contents[i] = f.Data
	}
	return cache.HashFiles(names, contents)
}

// =============================================================================
// Enum
// =============================================================================

// GenerateEnum builds an enum with one variant per PNG in opts.Dir.
func (r *Runner) GenerateEnum(ctx context.Context, opts EnumOptions) (*EnumResult, error) {
	start := time.Now()
	result, err := r.generateEnum(ctx, opts)

	name, variants := opts.Name, 0
	if result != nil {
		name, variants = result.Enum.Name, len(result.Enum.Variants)
	}
	observability.Pipeline().OnEnumComplete(ctx, name, variants, time.Since(start), err)
	return result, err
}

func (r *Runner) generateEnum(ctx context.Context, opts EnumOptions) (*EnumResult, error) {
	opts.SetDefaults()
	if opts.Dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "source directory is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := source.Discover(opts.Dir)
	if err != nil {
		return nil, err
	}

	variants := source.Names(files)
	if opts.Pascal {
		for i, v := range variants {
			variants[i] = codegen.Identifier(v)
		}
	}

	enum, err := codegen.NewSimpleEnum(opts.Name, variants, opts.Derives)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("generated enum", "name", enum.Name, "variants", len(enum.Variants))

	return &EnumResult{
		Enum:   enum,
		Source: RenderFile(enum),
	}, nil
}

// RenderFile renders items as a complete Rust source file: the generated-code
// header followed by the items and a final newline.
func RenderFile(items ...codegen.Item) string {
	var b strings.Builder
	b.WriteString(GeneratedHeader)
	b.WriteString("\n")
	b.WriteString(codegen.Render(&codegen.Module{Members: items}))
	b.WriteString("\n")
	return b.String()
}
