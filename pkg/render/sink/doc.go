// Package sink turns a computed [cloud.Layout] into output bytes.
//
// # SVG Output
//
// [RenderSVG] draws each placed word as a <text> element centered on its
// layout position at its final font size, in the color assigned by the
// palette step:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithBackground("#ffffff"),
//	    sink.WithEmbeddedFont(),
//	)
//
// Text is anchored with text-anchor="middle" and dominant-baseline="central"
// so the drawn glyphs sit inside the box the measurer reported. Embedding
// the font keeps that true on viewers that lack Go Regular.
//
// # JSON Output
//
// [RenderJSON] writes the layout document, optionally with dataset
// statistics, for consumers that draw the cloud themselves.
//
// [cloud.Layout]: github.com/matzehuels/wordcloud/pkg/cloud.Layout
package sink
