// Package config parses wordcloud.toml configuration.
//
// Every section has a default, so an absent or partial file is valid. CLI
// flags and HTTP request fields override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/measure"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/palette"
)

// FileName is the config file looked up when no explicit path is given.
const FileName = "wordcloud.toml"

// EnvRedisURL overrides cache.redis_url when set.
const EnvRedisURL = "WORDCLOUD_REDIS_URL"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Measurement backends.
const (
	FontGo       = "go"
	FontEstimate = "estimate"
)

// Config is the top-level wordcloud.toml configuration.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CanvasConfig sets the default canvas size in pixels.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// LayoutConfig mirrors the engine knobs. Zero values fall back to the engine
// defaults, except for the pointer fields where zero is a meaningful setting
// and only an absent key means "default".
type LayoutConfig struct {
	MinFont             int      `toml:"min_font"`
	MaxFont             int      `toml:"max_font"`
	FloorFont           int      `toml:"floor_font"`
	Exponent            float64  `toml:"exponent"`
	SizeStep            int      `toml:"size_step"`
	Padding             *float64 `toml:"padding"`
	AngleStep           float64  `toml:"angle_step"`
	SpiralA             *float64 `toml:"spiral_a"`
	SpiralB             float64  `toml:"spiral_b"`
	MaxSpiralSteps      int      `toml:"max_spiral_steps"`
	NudgeStep           float64  `toml:"nudge_step"`
	MaxNudgeSteps       int      `toml:"max_nudge_steps"`
	CompactionBudget    int      `toml:"compaction_budget"`
	MinCompactionPasses int      `toml:"min_compaction_passes"`
	MaxCompactionPasses int      `toml:"max_compaction_passes"`
	DisableCompaction   bool     `toml:"disable_compaction"`
}

// RenderConfig controls colors and text measurement.
type RenderConfig struct {
	Palette    string  `toml:"palette"`
	Seed       *uint64 `toml:"seed"` // nil means the built-in seed; 0 is valid
	Font       string  `toml:"font"` // "go" or "estimate"
	Background string  `toml:"background"`
	EmbedFont  bool    `toml:"embed_font"`
}

// CacheConfig selects the layout cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // "file", "redis" or "none"
	Dir      string `toml:"dir"`     // empty = XDG cache dir
	RedisURL string `toml:"redis_url"`
	TTLHours int    `toml:"ttl_hours"`

	// Namespace scopes keys so environments can share one Redis.
	Namespace string `toml:"namespace"`
}

// TTL returns the configured cache TTL.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// ServerConfig controls `wordcloud serve`.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxItems     int    `toml:"max_items"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
	TimeoutSecs  int    `toml:"timeout_seconds"`
	// MeasureCacheSize bounds the per-font text measurement memo kept for
	// the life of the server process.
	MeasureCacheSize int `toml:"measure_cache_size"`
}

// Timeout returns the per-request timeout.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// Defaults returns a Config with the engine's default knobs.
func Defaults() Config {
	d := wordcloud.DefaultConfig()
	return Config{
		Canvas: CanvasConfig{Width: 800, Height: 400},
		Layout: LayoutConfig{
			MinFont:             d.MinFont,
			MaxFont:             d.MaxFont,
			FloorFont:           d.FloorFont,
			Exponent:            d.Exponent,
			SizeStep:            d.SizeStep,
			Padding:             &d.Padding,
			AngleStep:           d.AngleStep,
			SpiralA:             &d.SpiralA,
			SpiralB:             d.SpiralB,
			MaxSpiralSteps:      d.MaxSpiralSteps,
			NudgeStep:           d.NudgeStep,
			MaxNudgeSteps:       d.MaxNudgeSteps,
			CompactionBudget:    d.CompactionBudget,
			MinCompactionPasses: d.MinCompactionPasses,
			MaxCompactionPasses: d.MaxCompactionPasses,
		},
		Render: RenderConfig{
			Palette:    palette.Default,
			Font:       FontGo,
			Background: "#ffffff",
		},
		Cache: CacheConfig{
			Backend:  BackendFile,
			TTLHours: 24,
		},
		Server: ServerConfig{
			Addr:             ":8080",
			MaxItems:         500,
			MaxBodyBytes:     1 << 20,
			TimeoutSecs:      30,
			MeasureCacheSize: measure.DefaultCacheCapacity,
		},
	}
}

// Engine converts the layout section into engine configuration.
func (l LayoutConfig) Engine() wordcloud.Config {
	c := wordcloud.DefaultConfig()
	if l.MinFont > 0 {
		c.MinFont = l.MinFont
	}
	if l.MaxFont > 0 {
		c.MaxFont = l.MaxFont
	}
	if l.FloorFont > 0 {
		c.FloorFont = l.FloorFont
	}
	if l.Exponent > 0 {
		c.Exponent = l.Exponent
	}
	if l.SizeStep > 0 {
		c.SizeStep = l.SizeStep
	}
	if l.Padding != nil {
		c.Padding = *l.Padding
	}
	if l.AngleStep > 0 {
		c.AngleStep = l.AngleStep
	}
	if l.SpiralA != nil {
		c.SpiralA = *l.SpiralA
	}
	if l.SpiralB > 0 {
		c.SpiralB = l.SpiralB
	}
	if l.MaxSpiralSteps > 0 {
		c.MaxSpiralSteps = l.MaxSpiralSteps
	}
	if l.NudgeStep > 0 {
		c.NudgeStep = l.NudgeStep
	}
	if l.MaxNudgeSteps > 0 {
		c.MaxNudgeSteps = l.MaxNudgeSteps
	}
	if l.CompactionBudget > 0 {
		c.CompactionBudget = l.CompactionBudget
	}
	if l.MinCompactionPasses > 0 {
		c.MinCompactionPasses = l.MinCompactionPasses
	}
	if l.MaxCompactionPasses > 0 {
		c.MaxCompactionPasses = l.MaxCompactionPasses
	}
	if l.DisableCompaction {
		c.MaxCompactionPasses = 0
	}
	return c
}

// Validate checks the configuration for values that would fail later at
// runtime. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas.width and canvas.height must be > 0"))
	}

	l := c.Layout
	if l.MinFont < 0 || l.MaxFont < 0 || l.FloorFont < 0 {
		errs = append(errs, fmt.Errorf("layout font sizes must be >= 0"))
	}
	if l.MinFont > 0 && l.MaxFont > 0 && l.MinFont > l.MaxFont {
		errs = append(errs, fmt.Errorf("layout.min_font must be <= layout.max_font"))
	}
	if l.Exponent < 0 {
		errs = append(errs, fmt.Errorf("layout.exponent must be >= 0 (0 = default)"))
	}
	if l.Padding != nil && *l.Padding < 0 {
		errs = append(errs, fmt.Errorf("layout.padding must be >= 0"))
	}
	if l.SpiralA != nil && *l.SpiralA < 0 {
		errs = append(errs, fmt.Errorf("layout.spiral_a must be >= 0"))
	}
	if l.SizeStep < 0 || l.AngleStep < 0 || l.SpiralB < 0 || l.NudgeStep < 0 {
		errs = append(errs, fmt.Errorf("layout step sizes must be >= 0 (0 = default)"))
	}
	if l.MinCompactionPasses > 0 && l.MaxCompactionPasses > 0 && l.MinCompactionPasses > l.MaxCompactionPasses {
		errs = append(errs, fmt.Errorf("layout.min_compaction_passes must be <= layout.max_compaction_passes"))
	}

	if _, ok := palette.Named(c.Render.Palette); !ok {
		errs = append(errs, fmt.Errorf("render.palette must be one of %s", strings.Join(palette.Names(), ", ")))
	}
	if c.Render.Font != FontGo && c.Render.Font != FontEstimate {
		errs = append(errs, fmt.Errorf("render.font must be %q or %q", FontGo, FontEstimate))
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			errs = append(errs, fmt.Errorf("cache.redis_url must be set when cache.backend is \"redis\""))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be %q, %q or %q", BackendFile, BackendRedis, BackendNone))
	}
	if c.Cache.TTLHours < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl_hours must be >= 0"))
	}

	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("server.addr must not be empty"))
	}
	if c.Server.MaxItems <= 0 {
		errs = append(errs, fmt.Errorf("server.max_items must be > 0"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be > 0"))
	}
	if c.Server.TimeoutSecs < 0 {
		errs = append(errs, fmt.Errorf("server.timeout_seconds must be >= 0 (0 = no timeout)"))
	}
	if c.Server.MeasureCacheSize < 0 {
		errs = append(errs, fmt.Errorf("server.measure_cache_size must be >= 0 (0 = default)"))
	}

	return errors.Join(errs...)
}

// Load reads a config file. If path is empty, Load looks for wordcloud.toml
// in the current directory and returns Defaults when there is none. Unknown
// keys are an error (likely typos). WORDCLOUD_REDIS_URL, when set, overrides
// cache.redis_url.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	}
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, strings.Join(keys, ", "))
		}
	}

	if url := os.Getenv(EnvRedisURL); url != "" {
		cfg.Cache.RedisURL = url
	}
	return &cfg, nil
}

// InitFile writes a default wordcloud.toml to dir.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString("# wordcloud.toml\n\n"); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(Defaults()); err != nil {
		return "", fmt.Errorf("config: encode %s: %w", path, err)
	}
	return path, nil
}
