// Package config loads project settings from spritekit.toml.
//
// Every setting has a default, so the file is optional. A typical file:
//
//	[atlas]
//	grid_columns = 8
//	tile_size = 32
//	output = "assets/icons"
//	manifest_format = "csv"
//
//	[enum]
//	name = "Icon"
//	derives = ["Hash", "Clone", "FromStr", "PartialEq", "Eq", "Debug", "Default"]
//	output = "src/icon.rs"
//
//	[cache]
//	backend = "bolt"
//
// Command-line flags take precedence over values from the file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spritekit/pkg/atlas"
	"github.com/matzehuels/spritekit/pkg/codegen"
	"github.com/matzehuels/spritekit/pkg/errors"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "spritekit.toml"

// DefaultOutput is the base name of the atlas image and manifest.
const DefaultOutput = "atlas"

// Config holds all project settings.
type Config struct {
	Atlas Atlas `toml:"atlas"`
	Enum  Enum  `toml:"enum"`
	Cache Cache `toml:"cache"`
}

// Atlas configures the atlas command.
type Atlas struct {
	GridColumns    int    `toml:"grid_columns"`
	TileSize       int    `toml:"tile_size"`
	Output         string `toml:"output"`
	ManifestFormat string `toml:"manifest_format"`
	Fit            bool   `toml:"fit"`
}

// Enum configures the enum command.
type Enum struct {
	Name    string   `toml:"name"`
	Derives []string `toml:"derives"`
	Pascal  bool     `toml:"pascal"`
	Output  string   `toml:"output"` // empty writes to stdout
}

// Cache backends.
const (
	CacheFile = "file"
	CacheBolt = "bolt"
)

// Cache selects where packed atlases are kept between runs.
type Cache struct {
	Backend string `toml:"backend"` // "file" or "bolt"
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Atlas: Atlas{
			GridColumns:    atlas.DefaultColumns,
			TileSize:       atlas.DefaultTileSize,
			Output:         DefaultOutput,
			ManifestFormat: atlas.FormatCSV,
		},
		Enum: Enum{
			Name:    codegen.DefaultEnumName,
			Derives: append([]string(nil), codegen.DefaultDerives...),
		},
		Cache: Cache{Backend: CacheFile},
	}
}

// Load reads the config at path on top of the defaults.
// An empty path means [DefaultPath], which may be absent; an explicit path
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.WithPath(err, path)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg, leaving unset keys untouched, and
// validates the result.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks that the settings can be used as-is.
func (c *Config) Validate() error {
	if err := errors.ValidatePositive("atlas.grid_columns", c.Atlas.GridColumns); err != nil {
		return err
	}
	if err := errors.ValidatePositive("atlas.tile_size", c.Atlas.TileSize); err != nil {
		return err
	}
	if err := errors.ValidateOutputBase(c.Atlas.Output); err != nil {
		return err
	}
	if err := atlas.ValidateFormat(c.Atlas.ManifestFormat); err != nil {
		return err
	}
	if err := codegen.ValidateIdentifier(c.Enum.Name); err != nil {
		return err
	}
	for _, d := range c.Enum.Derives {
		if err := codegen.ValidateDerive(d); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case CacheFile, CacheBolt:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be %q or %q, got %q", CacheFile, CacheBolt, c.Cache.Backend)
	}
	return nil
}
