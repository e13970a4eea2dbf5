package cache

// AtlasKeyOpts are the pack options that affect the atlas bytes.
type AtlasKeyOpts struct {
	Columns  int  `json:"columns"`
	TileSize int  `json:"tile_size"`
	Fit      bool `json:"fit"`
}

// Keyer derives cache keys.
type Keyer interface {
	// AtlasKey returns the key for an atlas built from sources with the given
	// content hash (see [HashFiles]).
	AtlasKey(sourcesHash string, opts AtlasKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AtlasKey hashes the source hash together with opts.
func (DefaultKeyer) AtlasKey(sourcesHash string, opts AtlasKeyOpts) string {
	return hashKey("atlas", sourcesHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so a new release never reads entries written by an older one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// AtlasKey generates a prefixed atlas key.
func (k *ScopedKeyer) AtlasKey(sourcesHash string, opts AtlasKeyOpts) string {
	return k.prefix + k.inner.AtlasKey(sourcesHash, opts)
}
