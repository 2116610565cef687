package pipeline

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/dataset"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
	"github.com/matzehuels/wordcloud/pkg/wordcloud/palette"
)

// Colorize returns a copy of l with word colors assigned from the options'
// palette and seed.
func Colorize(l cloud.Layout, opts Options) cloud.Layout {
	p, _ := palette.Named(opts.Palette)
	colored := palette.Colorize(l.Placed(), p, opts.ColorSeed())

	out := l
	out.Words = append([]cloud.Word(nil), l.Words...)
	out.SetColors(colored)
	out.Palette = opts.Palette
	out.Seed = opts.ColorSeed()
	return out
}

// Render colors the layout and generates output artifacts in the requested
// formats. A non-nil summary is attached to JSON output.
func Render(l cloud.Layout, summary *dataset.Summary, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	colored := Colorize(l, opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(colored, svgOptions(opts)...)
		case FormatJSON:
			var jsonOpts []sink.JSONOption
			if summary != nil {
				jsonOpts = append(jsonOpts, sink.WithSummary(*summary))
			}
			data, err := sink.RenderJSON(colored, jsonOpts...)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[format] = data
		default:
			return nil, ValidateFormat(format)
		}
	}
	return artifacts, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Background != "" {
		out = append(out, sink.WithBackground(opts.Background))
	}
	if opts.EmbedFont {
		out = append(out, sink.WithEmbeddedFont())
	}
	if opts.Boxes {
		out = append(out, sink.WithBoxes())
	}
	if opts.Title != "" {
		out = append(out, sink.WithTitle(opts.Title))
	}
	return out
}
