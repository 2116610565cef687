package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"canvas.width", cfg.Canvas.Width, 800.0},
		{"canvas.height", cfg.Canvas.Height, 400.0},
		{"layout.min_font", cfg.Layout.MinFont, 12},
		{"layout.max_font", cfg.Layout.MaxFont, 42},
		{"layout.floor_font", cfg.Layout.FloorFont, 10},
		{"layout.padding", *cfg.Layout.Padding, 1.5},
		{"layout.spiral_a", *cfg.Layout.SpiralA, 2.0},
		{"layout.angle_step", cfg.Layout.AngleStep, 0.35},
		{"layout.nudge_step", cfg.Layout.NudgeStep, 1.0},
		{"layout.size_step", cfg.Layout.SizeStep, 2},
		{"render.palette", cfg.Render.Palette, "category10"},
		{"render.font", cfg.Render.Font, FontGo},
		{"cache.backend", cfg.Cache.Backend, BackendFile},
		{"cache.ttl", cfg.Cache.TTL(), 24 * time.Hour},
		{"server.addr", cfg.Server.Addr, ":8080"},
		{"server.max_items", cfg.Server.MaxItems, 500},
		{"server.timeout", cfg.Server.Timeout(), 30 * time.Second},
		{"server.measure_cache_size", cfg.Server.MeasureCacheSize, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv(EnvRedisURL, "")
		dir := t.TempDir()
		content := `
[canvas]
width = 1200
height = 600

[layout]
max_font = 60
disable_compaction = true

[render]
palette = "pastel"
seed = 7
font = "estimate"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl_hours = 2
`
		path := filepath.Join(dir, "wordcloud.toml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}

		tests := []struct {
			name string
			got  any
			want any
		}{
			{"canvas.width", cfg.Canvas.Width, 1200.0},
			{"layout.max_font", cfg.Layout.MaxFont, 60},
			{"layout.min_font default", cfg.Layout.MinFont, 12},
			{"render.palette", cfg.Render.Palette, "pastel"},
			{"render.seed", *cfg.Render.Seed, uint64(7)},
			{"render.font", cfg.Render.Font, FontEstimate},
			{"cache.backend", cfg.Cache.Backend, BackendRedis},
			{"cache.ttl", cfg.Cache.TTL(), 2 * time.Hour},
			{"server.addr default", cfg.Server.Addr, ":8080"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if tt.got != tt.want {
					t.Errorf("got %v, want %v", tt.got, tt.want)
				}
			})
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}

		eng := cfg.Layout.Engine()
		if eng.MaxFont != 60 || eng.MaxCompactionPasses != 0 {
			t.Errorf("Engine() = %+v", eng)
		}
	})

	t.Run("unknown keys", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "wordcloud.toml")
		if err := os.WriteFile(path, []byte("[canvas]\nwidht = 3\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "canvas.widht") {
			t.Errorf("expected unknown key error, got %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "wordcloud.toml")
		if err := os.WriteFile(path, []byte("[canvas\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvRedisURL, "redis://cache:6379/1")
		dir := t.TempDir()
		path := filepath.Join(dir, "wordcloud.toml")
		if err := os.WriteFile(path, []byte("[cache]\nredis_url = \"redis://file:6379\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Cache.RedisURL != "redis://cache:6379/1" {
			t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"canvas", func(c *Config) { c.Canvas.Width = 0 }, "canvas.width"},
		{"font order", func(c *Config) { c.Layout.MinFont, c.Layout.MaxFont = 50, 20 }, "layout.min_font"},
		{"padding", func(c *Config) { p := -1.0; c.Layout.Padding = &p }, "layout.padding"},
		{"spiral a", func(c *Config) { a := -2.0; c.Layout.SpiralA = &a }, "layout.spiral_a"},
		{"step sizes", func(c *Config) { c.Layout.NudgeStep = -1 }, "step sizes"},
		{"palette", func(c *Config) { c.Render.Palette = "rainbow" }, "render.palette"},
		{"font", func(c *Config) { c.Render.Font = "comic" }, "render.font"},
		{"backend", func(c *Config) { c.Cache.Backend = "s3" }, "cache.backend"},
		{"redis url", func(c *Config) { c.Cache.Backend = BackendRedis }, "cache.redis_url"},
		{"max items", func(c *Config) { c.Server.MaxItems = 0 }, "server.max_items"},
		{"measure cache", func(c *Config) { c.Server.MeasureCacheSize = -1 }, "server.measure_cache_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantSub)
			}
		})
	}

	t.Run("joins all problems", func(t *testing.T) {
		cfg := Defaults()
		cfg.Canvas.Height = -1
		cfg.Server.Addr = ""
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "canvas") || !strings.Contains(err.Error(), "server.addr") {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestEngineDefaults(t *testing.T) {
	if got := (LayoutConfig{}).Engine(); got != wordcloud.DefaultConfig() {
		t.Errorf("zero LayoutConfig should yield engine defaults, got %+v", got)
	}
}

func TestLoadZeroIsASetting(t *testing.T) {
	t.Setenv(EnvRedisURL, "")
	path := filepath.Join(t.TempDir(), "wordcloud.toml")
	content := `
[layout]
padding = 0
spiral_a = 0
angle_step = 0.2
spiral_b = 3
nudge_step = 0.5
size_step = 1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	e := cfg.Layout.Engine()
	if e.Padding != 0 || e.SpiralA != 0 {
		t.Errorf("padding/spiral_a = %v/%v, want explicit 0/0", e.Padding, e.SpiralA)
	}
	if e.AngleStep != 0.2 || e.SpiralB != 3 || e.NudgeStep != 0.5 || e.SizeStep != 1 {
		t.Errorf("step sizes not applied: %+v", e)
	}
	if n := e.Normalized(); n.Padding != 0 {
		t.Errorf("Normalized padding = %v, want 0", n.Padding)
	}

	if got := Defaults().Layout.Engine().Padding; got != 1.5 {
		t.Errorf("absent padding = %v, want default 1.5", got)
	}
}

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	path, err := InitFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("generated file should load: %v", err)
	}
	if cfg.Canvas.Width != 800 {
		t.Errorf("canvas.width = %v", cfg.Canvas.Width)
	}
	if _, err := InitFile(dir); err == nil {
		t.Error("second InitFile should fail")
	}
}
