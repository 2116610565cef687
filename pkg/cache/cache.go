// Package cache stores computed layouts and rendered artifacts.
//
// The pipeline keys layouts by a hash of the normalized dataset plus every
// option that influences placement, and artifacts by the layout ID plus the
// render options. Three backends implement [Cache]:
//
//   - [FileCache]: local directory, used by the CLI
//   - [RedisCache]: shared cache for `wordcloud serve` replicas
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Default TTLs.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts holds every option that changes a layout result.
type LayoutKeyOpts struct {
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Font    string           `json:"font"`
	Top     int              `json:"top"`
	Engine  wordcloud.Config `json:"engine"`
	Version int              `json:"version"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Palette    string `json:"palette"`
	Seed       uint64 `json:"seed"`
	Background string `json:"background"`
	EmbedFont  bool   `json:"embed_font"`
	Boxes      bool   `json:"boxes"`
	Summary    bool   `json:"summary"`
	Title      string `json:"title"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutID string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>" over the dataset hash and options.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey returns "artifact:<sha256>" over the layout ID and options.
func (DefaultKeyer) ArtifactKey(layoutID string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutID, opts)
}
