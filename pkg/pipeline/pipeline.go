// Package pipeline provides the word-cloud pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and normalize {text, weight} records
//  2. Layout: Size and place the words with [wordcloud.Layout]
//  3. Render: Color the placed words and write SVG or JSON
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Dataset: "words.json",
//	    Width:   800,
//	    Height:  400,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	records, report, err := pipeline.Load(ctx, opts)
//	layout, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, records, opts)
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/dataset"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/wordcloud"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/palette"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 400.0

	// DefaultSeed is the default color seed.
	DefaultSeed = uint64(42)

	// DefaultFont is the default measurement backend.
	DefaultFont = FontGo

	// DefaultPalette is the default color palette.
	DefaultPalette = palette.Default

	// layoutVersion is folded into layout cache keys. Bump it when the
	// engine's output changes for the same input.
	layoutVersion = 1
)

// Measurement backends.
const (
	FontGo       = "go"
	FontEstimate = "estimate"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidFonts is the set of supported measurement backends.
var ValidFonts = map[string]bool{
	FontGo:       true,
	FontEstimate: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the word-cloud pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Dataset string           `json:"-"` // path to a dataset file
	Records []dataset.Record `json:"words,omitempty"`
	Top     int              `json:"top,omitempty"`

	// Layout options
	Width  float64           `json:"width,omitempty"`
	Height float64           `json:"height,omitempty"`
	Font   string            `json:"font,omitempty"`
	Engine *wordcloud.Config `json:"layout,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Palette    string   `json:"palette,omitempty"`
	Seed       *uint64  `json:"seed,omitempty"` // nil means DefaultSeed; 0 is a valid seed
	Background string   `json:"background,omitempty"`
	EmbedFont  bool     `json:"embed_font,omitempty"`
	Boxes      bool     `json:"boxes,omitempty"`
	Title      string   `json:"title,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records are the normalized input records.
	Records []dataset.Record

	// DatasetHash is the content hash of the normalized records.
	DatasetHash string

	// Report counts what normalization removed or merged.
	Report dataset.Report

	// Summary describes the weight distribution.
	Summary dataset.Summary

	// Layout is the computed layout document.
	Layout cloud.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Placed     int
	Dropped    int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePalette checks that a palette name is known.
func ValidatePalette(name string) error {
	if _, ok := palette.Named(name); !ok {
		return errors.New(errors.ErrCodeInvalidPalette, "invalid palette: %q (must be one of: %s)",
			name, strings.Join(palette.Names(), ", "))
	}
	return nil
}

// ValidateFont checks that a measurement backend is known.
func ValidateFont(font string) error {
	if !ValidFonts[font] {
		return errors.New(errors.ErrCodeInvalidFont, "invalid font: %q (must be one of: go, estimate)", font)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if o.Dataset == "" && o.Records == nil {
		return errors.New(errors.ErrCodeInvalidInput, "dataset or records is required")
	}
	if o.Top < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top must be >= 0, got %d", o.Top)
	}
	o.setLoggerDefault()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Font == "" {
		o.Font = DefaultFont
	}
	o.setLoggerDefault()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	return ValidateFont(o.Font)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Seed == nil {
		seed := DefaultSeed
		o.Seed = &seed
	}
	o.setLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidatePalette(o.Palette)
}

// EngineConfig returns the layout engine configuration, defaulting when unset.
func (o *Options) EngineConfig() wordcloud.Config {
	if o.Engine == nil {
		return wordcloud.DefaultConfig()
	}
	return o.Engine.Normalized()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:   o.Width,
		Height:  o.Height,
		Font:    o.Font,
		Top:     o.Top,
		Engine:  o.EngineConfig(),
		Version: layoutVersion,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Palette:    o.Palette,
		Seed:       o.ColorSeed(),
		Background: o.Background,
		EmbedFont:  o.EmbedFont,
		Boxes:      o.Boxes,
		Title:      o.Title,
	}
}

// ApplyConfig fills unset options from a loaded config file. Values already
// set (by flags or request fields) win.
func (o *Options) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if o.Width == 0 {
		o.Width = cfg.Canvas.Width
	}
	if o.Height == 0 {
		o.Height = cfg.Canvas.Height
	}
	if o.Font == "" {
		o.Font = cfg.Render.Font
	}
	if o.Engine == nil {
		engine := cfg.Layout.Engine()
		o.Engine = &engine
	}
	if o.Palette == "" {
		o.Palette = cfg.Render.Palette
	}
	if o.Seed == nil && cfg.Render.Seed != nil {
		seed := *cfg.Render.Seed
		o.Seed = &seed
	}
	if o.Background == "" {
		o.Background = cfg.Render.Background
	}
	o.EmbedFont = o.EmbedFont || cfg.Render.EmbedFont
}

// ColorSeed returns the palette seed, or DefaultSeed when none was set.
func (o *Options) ColorSeed() uint64 {
	if o.Seed == nil {
		return DefaultSeed
	}
	return *o.Seed
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// String describes the options for log lines.
func (o *Options) String() string {
	src := o.Dataset
	if src == "" {
		src = fmt.Sprintf("%d inline records", len(o.Records))
	}
	return fmt.Sprintf("%s %vx%v font=%s", src, o.Width, o.Height, o.Font)
}
