package measure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// Font measures text using glyph advances from a parsed OpenType font.
//
// Faces are created lazily, one per pixel size, and reused. font.Face values
// are not safe for concurrent use, so every measurement holds the mutex.
type Font struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[int]font.Face
}

// NewFont parses TTF/OTF data into a Font measurer.
func NewFont(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("measure: parse font: %w", err)
	}
	return &Font{font: f, faces: make(map[int]font.Face)}, nil
}

// GoRegular returns a Font measurer backed by the embedded Go Regular face.
func GoRegular() (*Font, error) {
	return NewFont(fonts.GoRegularTTF())
}

// Measure implements [Measurer]. Width is the summed glyph advance including
// kerning; height is ascent plus descent. If a face cannot be built for the
// size, Measure falls back to [Estimate].
func (f *Font) Measure(text string, fontSize int) (width, height float64) {
	if fontSize <= 0 {
		return 0, 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	face, err := f.face(fontSize)
	if err != nil {
		return Estimate{}.Measure(text, fontSize)
	}
	m := face.Metrics()
	return fixedToFloat64(font.MeasureString(face, text)), fixedToFloat64(m.Ascent + m.Descent)
}

// face returns the cached face for size, creating it on first use.
// The caller must hold f.mu.
func (f *Font) face(size int) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	// 72 DPI makes one point equal one pixel.
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	f.faces[size] = face
	return face, nil
}

// Close releases every cached face.
func (f *Font) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var firstErr error
	for size, face := range f.faces {
		if err := face.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(f.faces, size)
	}
	return firstErr
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

var _ Measurer = (*Font)(nil)
