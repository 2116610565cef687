package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/config"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(&testWriter{t}, log.WarnLevel)
	cfg := config.Defaults()
	cfg.Cache.Dir = t.TempDir()
	c.cfg = &cfg
	return c
}

// testWriter routes log output to t.Log.
type testWriter struct{ t *testing.T }

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()
	c := testCLI(t)

	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"file", config.BackendFile, false, "*cache.FileCache"},
		{"none", config.BackendNone, false, "*cache.NullCache"},
		{"no-cache flag", config.BackendFile, true, "*cache.NullCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *c.cfg
			cfg.Cache.Backend = tt.backend
			got, err := c.newCache(ctx, &cfg, tt.noCache)
			if err != nil {
				t.Fatal(err)
			}
			defer got.Close()
			if name := typeName(got); name != tt.want {
				t.Errorf("backend = %s, want %s", name, tt.want)
			}
		})
	}
}

func TestNewCacheRedisUnreachable(t *testing.T) {
	c := testCLI(t)
	cfg := *c.cfg
	cfg.Cache.Backend = config.BackendRedis
	cfg.Cache.RedisURL = "not-a-url"

	if _, err := c.newCache(context.Background(), &cfg, false); err == nil {
		t.Error("invalid redis URL should fail")
	}
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()
	c := testCLI(t)

	fc, err := cache.NewFileCache(c.cfg.Cache.Dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.clearCache(ctx, c.cfg); err != nil {
		t.Fatalf("clearCache: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entries should be gone after clear")
	}

	// Clearing an empty cache is not an error.
	if err := c.clearCache(ctx, c.cfg); err != nil {
		t.Errorf("second clearCache: %v", err)
	}
}

func TestNewRunnerUsesConfigTTL(t *testing.T) {
	c := testCLI(t)
	c.cfg.Cache.TTLHours = 2

	r, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.TTL != 2*time.Hour {
		t.Errorf("runner TTL = %v, want 2h", r.TTL)
	}
}

func TestNewRunnerNamespace(t *testing.T) {
	c := testCLI(t)
	c.cfg.Cache.Namespace = "staging"

	r, err := c.newRunner(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	key := r.Keyer.LayoutKey("abc", cache.LayoutKeyOpts{Width: 800, Height: 400})
	if !strings.HasPrefix(key, "staging:layout:") {
		t.Errorf("layout key = %q, want staging:layout: prefix", key)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *cache.FileCache:
		return "*cache.FileCache"
	case *cache.NullCache:
		return "*cache.NullCache"
	case *cache.RedisCache:
		return "*cache.RedisCache"
	}
	return "unknown"
}
