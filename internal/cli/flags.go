package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// layoutFlags are shared by every command that computes a layout.
type layoutFlags struct {
	width        float64
	height       float64
	font         string
	top          int
	minFont      int
	maxFont      int
	padding      float64
	noCompaction bool
	refresh      bool
	noCache      bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", 0, "canvas width (default: config, 800)")
	fs.Float64Var(&f.height, "height", 0, "canvas height (default: config, 400)")
	fs.StringVar(&f.font, "font", "", "measurement backend: go (default), estimate")
	fs.IntVar(&f.top, "top", 0, "keep only the N heaviest words (0 = all)")
	fs.IntVar(&f.minFont, "min-font", 0, "smallest font size in px")
	fs.IntVar(&f.maxFont, "max-font", 0, "largest font size in px")
	fs.Float64Var(&f.padding, "padding", 0, "padding around each word in px")
	fs.BoolVar(&f.noCompaction, "no-compaction", false, "skip the global compaction pass")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// apply copies set flags into opts, then fills the rest from cfg. Engine
// flags override the [layout] section key by key.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options, cfg *config.Config) {
	opts.Width = f.width
	opts.Height = f.height
	opts.Font = f.font
	opts.Top = f.top
	opts.Refresh = f.refresh

	lc := cfg.Layout
	fs := cmd.Flags()
	if fs.Changed("min-font") {
		lc.MinFont = f.minFont
	}
	if fs.Changed("max-font") {
		lc.MaxFont = f.maxFont
	}
	if fs.Changed("padding") {
		lc.Padding = &f.padding
	}
	if f.noCompaction {
		lc.DisableCompaction = true
	}
	engine := lc.Engine()
	opts.Engine = &engine

	opts.ApplyConfig(cfg)
}

// renderFlags are shared by every command that writes artifacts.
type renderFlags struct {
	output     string
	formats    string
	palette    string
	seed       uint64
	background string
	embedFont  bool
	boxes      bool
	title      string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	fs.StringVar(&f.palette, "palette", "", "color palette (default: config, category10)")
	fs.Uint64Var(&f.seed, "seed", 0, "color seed (default: config, 42)")
	fs.StringVar(&f.background, "background", "", "SVG background color (default: config, #ffffff)")
	fs.BoolVar(&f.embedFont, "embed-font", false, "embed the Go font in SVG output")
	fs.BoolVar(&f.boxes, "boxes", false, "outline each word's placement box")
	fs.StringVar(&f.title, "title", "", "SVG <title> text")
}

// apply copies the flags into opts, then fills the rest from cfg. --seed 0 is
// honored; an absent --seed falls back to the config and then the default.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options, cfg *config.Config) error {
	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	opts.Palette = f.palette
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		opts.Seed = &seed
	}
	opts.Background = f.background
	opts.EmbedFont = f.embedFont
	opts.Boxes = f.boxes
	opts.Title = f.title
	opts.ApplyConfig(cfg)
	return nil
}
