package wordcloud

import (
	"math"

	"github.com/matzehuels/wordcloud/pkg/wordcloud/measure"
)

// Layout sizes and places items on a width×height canvas.
//
// Labels that cannot be placed at any size down to the floor are returned in
// Result.Dropped; Layout never fails. An empty item list, or a canvas with a
// non-positive dimension, yields a Result with no placed words. A nil
// Measurer uses [measure.Estimate].
func Layout(items []Item, width, height float64, m Measurer, opts ...Option) Result {
	cfg := newConfig(opts...)
	if m == nil {
		m = measure.Estimate{}
	}

	sized := assignSizes(items, cfg)
	if len(sized) == 0 {
		return Result{}
	}
	if !(width > 0 && height > 0) {
		return Result{Dropped: sized}
	}

	e := newEngine(cfg, width, height, m, len(sized))
	var dropped []SizedWord
	for _, sw := range sized {
		if !e.place(sw) {
			dropped = append(dropped, sw)
		}
	}
	passes := e.compact()

	return Result{Words: e.words, Dropped: dropped, Passes: passes}
}

// engine holds the state of one layout pass. words[i] and rects[i] always
// describe the same label.
type engine struct {
	cfg           Config
	width, height float64
	cx, cy        float64
	maxRadius     float64
	measure       Measurer

	words []PlacedWord
	rects []Rect
}

func newEngine(cfg Config, width, height float64, m Measurer, capacity int) *engine {
	return &engine{
		cfg:     cfg,
		width:   width,
		height:  height,
		cx:      width / 2,
		cy:      height / 2,
		measure: m,
		// A center farther than this from the canvas center cannot be in bounds.
		maxRadius: math.Hypot(width/2, height/2),
		words:     make([]PlacedWord, 0, capacity),
		rects:     make([]Rect, 0, capacity),
	}
}

// place tries sw at its assigned size and then smaller sizes, recording it
// on the first success.
func (e *engine) place(sw SizedWord) bool {
	pad := e.cfg.Padding
	for _, fs := range candidateSizes(sw.FontSize, e.cfg.FloorFont, e.cfg.SizeStep) {
		w, h := e.measure.Measure(sw.Text, fs)
		if w+2*pad > e.width || h+2*pad > e.height {
			continue
		}
		x, y, ok := e.spiral(w, h)
		if !ok {
			continue
		}
		x, y, _ = e.nudge(x, y, w, h, -1, e.cfg.MaxNudgeSteps)

		e.words = append(e.words, PlacedWord{
			Text:        sw.Text,
			Weight:      sw.Weight,
			FontSize:    fs,
			InitialSize: sw.FontSize,
			X:           x,
			Y:           y,
			Width:       w,
			Height:      h,
		})
		e.rects = append(e.rects, RectAt(x, y, w, h, pad))
		return true
	}
	return false
}

// spiral walks the Archimedean spiral out from the canvas center and returns
// the first center whose w×h box is valid.
func (e *engine) spiral(w, h float64) (x, y float64, ok bool) {
	for k := 0; k < e.cfg.MaxSpiralSteps; k++ {
		angle := float64(k) * e.cfg.AngleStep
		radius := e.cfg.SpiralA + e.cfg.SpiralB*angle
		if radius > e.maxRadius {
			return 0, 0, false
		}
		x = e.cx + radius*math.Cos(angle)
		y = e.cy + radius*math.Sin(angle)
		if e.fits(RectAt(x, y, w, h, e.cfg.Padding), -1) {
			return x, y, true
		}
	}
	return 0, 0, false
}

// nudge moves (x, y) toward the canvas center by NudgeStep at a time, at most
// limit times, and stops at the first step that would leave the canvas or
// collide. skip is the index of the word being moved (-1 if not yet placed).
func (e *engine) nudge(x, y, w, h float64, skip, limit int) (float64, float64, bool) {
	moved := false
	for i := 0; i < limit; i++ {
		nx, ny, ok := e.step(x, y)
		if !ok || !e.fits(RectAt(nx, ny, w, h, e.cfg.Padding), skip) {
			break
		}
		x, y, moved = nx, ny, true
	}
	return x, y, moved
}

// step returns the point one NudgeStep from (x, y) toward the center, or
// false if (x, y) is already there.
func (e *engine) step(x, y float64) (float64, float64, bool) {
	dx, dy := e.cx-x, e.cy-y
	d := math.Hypot(dx, dy)
	if d < 1e-9 {
		return x, y, false
	}
	if d <= e.cfg.NudgeStep {
		return e.cx, e.cy, true
	}
	s := e.cfg.NudgeStep / d
	return x + dx*s, y + dy*s, true
}

// fits reports whether r is inside the canvas and clear of every placed
// rectangle other than rects[skip].
func (e *engine) fits(r Rect, skip int) bool {
	if !r.Within(e.width, e.height) {
		return false
	}
	for i, o := range e.rects {
		if i != skip && r.Intersects(o) {
			return false
		}
	}
	return true
}

// compact runs the global compaction passes and returns how many ran. A pass
// in which nothing moves ends the loop early.
func (e *engine) compact() int {
	passes := e.cfg.CompactionPasses(len(e.words))
	ran := 0
	for ran < passes {
		ran++
		moved := false
		for i := range e.words {
			w := &e.words[i]
			x, y, ok := e.nudge(w.X, w.Y, w.Width, w.Height, i, 1)
			if !ok {
				continue
			}
			w.X, w.Y = x, y
			e.rects[i] = RectAt(x, y, w.Width, w.Height, e.cfg.Padding)
			moved = true
		}
		if !moved {
			break
		}
	}
	return ran
}
