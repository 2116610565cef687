package wordcloud

import (
	"math"

	"github.com/matzehuels/wordcloud/pkg/wordcloud/measure"
)

// Measurer reports rendered text extents in pixels. See package measure.
type Measurer = measure.Measurer

// Item is one weighted input label.
type Item struct {
	Text   string
	Weight float64
}

// SizedWord is an item after font-size assignment.
type SizedWord struct {
	Text     string
	Weight   float64
	FontSize int
}

// PlacedWord is a label with its final size and center position.
//
// Width and Height are the measured text extents at FontSize, without
// padding. Color is empty after layout; see package palette.
type PlacedWord struct {
	Text        string
	Weight      float64
	FontSize    int
	InitialSize int
	X, Y        float64
	Width       float64
	Height      float64
	Color       string
}

// Shrunk reports whether the word was placed below its assigned size.
func (w PlacedWord) Shrunk() bool { return w.FontSize < w.InitialSize }

// Rect is an axis-aligned rectangle in canvas coordinates (y grows downward).
type Rect struct {
	Left, Right float64
	Top, Bottom float64
}

// RectAt returns the rectangle of a w×h box centered on (x, y), grown by pad
// on every side.
func RectAt(x, y, w, h, pad float64) Rect {
	hw, hh := w/2+pad, h/2+pad
	return Rect{Left: x - hw, Right: x + hw, Top: y - hh, Bottom: y + hh}
}

// Bounds returns the padded rectangle of a placed word.
func (w PlacedWord) Bounds(pad float64) Rect {
	return RectAt(w.X, w.Y, w.Width, w.Height, pad)
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Intersects reports whether r and o overlap. Rectangles that merely touch
// along an edge count as intersecting.
func (r Rect) Intersects(o Rect) bool {
	return !(r.Right < o.Left || r.Left > o.Right || r.Bottom < o.Top || r.Top > o.Bottom)
}

// Within reports whether r lies entirely inside [0, width] x [0, height].
func (r Rect) Within(width, height float64) bool {
	return r.Left >= 0 && r.Top >= 0 && r.Right <= width && r.Bottom <= height
}

// Result is the outcome of a layout pass.
type Result struct {
	// Words holds the placed labels in placement order (largest first).
	Words []PlacedWord

	// Dropped holds the labels that could not be placed at any size,
	// with their assigned (pre-shrink) font size.
	Dropped []SizedWord

	// Passes is the number of global compaction passes that ran.
	Passes int
}

// validWeight reports whether w can drive a font size.
func validWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}
