package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/dataset"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/measure"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// Besides the cache and logger, a Runner holds one memoizing measurer per
// font backend, created on first use and shared across calls. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default cache TTLs when positive.
	TTL time.Duration

	// MeasureCacheSize bounds each font's measurement memo. Zero uses
	// measure.DefaultCacheCapacity.
	MeasureCacheSize int

	mu        sync.Mutex
	measurers map[string]*measure.Cached
	font      *measure.Font
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
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		measurers: make(map[string]*measure.Cached),
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	records, report, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Records = records
	result.Report = report
	result.Summary = dataset.Summarize(records)
	result.DatasetHash = HashRecords(records)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Records = len(records)

	r.Logger.Info("loaded dataset",
		"records", len(records),
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Placed = len(layout.Words)
	result.Stats.Dropped = len(layout.Dropped)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"placed", len(layout.Words),
		"dropped", len(layout.Dropped),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, layout, &result.Summary, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
// The records should already be normalized (see [Load]).
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, records []dataset.Record, opts Options) (cloud.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return cloud.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(HashRecords(records), opts.LayoutKeyOpts())
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := cloud.UnmarshalLayout(data)
			if err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	m, err := r.Measurer(opts.Font)
	if err != nil {
		return cloud.Layout{}, false, err
	}
	layout := ComputeLayout(ctx, records, m, opts)

	if data, err := cloud.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLLayout)); err != nil {
			r.Logger.Warn("layout cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, records []dataset.Record, opts Options) (cloud.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, records, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout cloud.Layout, opts Options) (map[string][]byte, bool, error) {
	return r.renderWithCacheInfo(ctx, layout, nil, opts)
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, layout cloud.Layout, summary *dataset.Summary, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutID := layout.ID
	if layoutID == "" {
		data, err := cloud.MarshalLayout(layout)
		if err != nil {
			return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
		}
		layoutID = cache.Hash(data)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.artifactKey(layoutID, format, summary != nil, opts)
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(layout, summary, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.artifactKey(layoutID, format, summary != nil, opts)
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

func (r *Runner) artifactKey(layoutID, format string, withSummary bool, opts Options) string {
	keyOpts := opts.ArtifactKeyOpts(format)
	keyOpts.Summary = withSummary && format == FormatJSON
	return r.Keyer.ArtifactKey(layoutID, keyOpts)
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout cloud.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Measurer returns the shared memoizing measurer for a font backend. If the
// Go font cannot be loaded the runner falls back to the estimate backend.
func (r *Runner) Measurer(font string) (wordcloud.Measurer, error) {
	if err := ValidateFont(font); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.measurers[font]; ok {
		return m, nil
	}

	var inner measure.Measurer = measure.Estimate{}
	if font == FontGo {
		f, err := measure.GoRegular()
		if err != nil {
			r.Logger.Warn("go font unavailable, using estimate", "err", err)
		} else {
			r.font = f
			inner = f
		}
	}
	m := measure.NewCachedSize(inner, r.MeasureCacheSize)
	r.measurers[font] = m
	return m, nil
}

// MeasureStats reports hit/miss counts of the measurement caches.
func (r *Runner) MeasureStats() (hits, misses int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.measurers {
		h, mi := m.Stats()
		hits += h
		misses += mi
	}
	return hits, misses
}

// Close releases resources held by the runner (the cache and font faces).
func (r *Runner) Close() error {
	r.mu.Lock()
	if r.font != nil {
		_ = r.font.Close()
		r.font = nil
	}
	r.measurers = make(map[string]*measure.Cached)
	r.mu.Unlock()

	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
