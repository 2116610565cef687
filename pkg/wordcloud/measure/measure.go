// Package measure provides text measurement backends for the word-cloud
// layout engine.
//
// The layout engine never draws text itself; it only needs to know how large
// a label will be once rendered. Anything that can answer "how wide and how
// tall is this string at this pixel size" satisfies [Measurer]:
//
//   - [Font] measures with real glyph metrics from an OpenType font
//     (Go Regular by default, matching what the SVG sink embeds).
//   - [Estimate] uses a fixed per-rune width ratio. It is deterministic and
//     font-free, which makes it the backend of choice in tests.
//   - [Cached] memoizes any other Measurer by (text, size).
//
// All returned dimensions are in pixels, the same unit as the canvas handed
// to the layout engine.
package measure

import "unicode/utf8"

// Measurer reports the rendered bounding box of text at an integer pixel size.
type Measurer interface {
	Measure(text string, fontSize int) (width, height float64)
}

// Func adapts a plain function to the [Measurer] interface.
type Func func(text string, fontSize int) (width, height float64)

// Measure calls f(text, fontSize).
func (f Func) Measure(text string, fontSize int) (width, height float64) {
	return f(text, fontSize)
}

const (
	defaultCharWidth  = 0.55
	defaultLineHeight = 1.0
)

// Estimate approximates text extents from the rune count alone.
//
// Width is runes × CharWidth × fontSize, height is LineHeight × fontSize.
// Zero ratios fall back to 0.55 and 1.0.
type Estimate struct {
	CharWidth  float64
	LineHeight float64
}

// Measure implements [Measurer].
func (e Estimate) Measure(text string, fontSize int) (width, height float64) {
	cw, lh := e.CharWidth, e.LineHeight
	if cw <= 0 {
		cw = defaultCharWidth
	}
	if lh <= 0 {
		lh = defaultLineHeight
	}
	fs := float64(max(fontSize, 0))
	n := float64(utf8.RuneCountInString(text))
	return n * cw * fs, lh * fs
}

var _ Measurer = Estimate{}
