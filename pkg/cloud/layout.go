// Package cloud defines the serialized word-cloud layout document.
//
// A Layout is what the layout stage produces and what the render stage
// consumes. It is written to disk by `wordcloud layout`, returned by the
// HTTP API, and stored in the layout cache, so it carries everything a
// renderer needs: canvas size, placed words with colors, and the labels
// that did not fit.
package cloud

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Layout is the serialization format for a computed word cloud.
type Layout struct {
	ID      string  `json:"id"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Font    string  `json:"font,omitempty"`
	Palette string  `json:"palette,omitempty"`
	Seed    uint64  `json:"seed,omitempty"`

	Words   []Word    `json:"words"`
	Dropped []Dropped `json:"dropped,omitempty"`

	Padding float64           `json:"padding"`
	Passes  int               `json:"passes,omitempty"`
	Config  *wordcloud.Config `json:"config,omitempty"`
}

// Word is a placed label. X and Y are the label's center.
type Word struct {
	Text        string  `json:"text"`
	Weight      float64 `json:"weight"`
	Size        int     `json:"size"`
	InitialSize int     `json:"initial_size"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Color       string  `json:"color,omitempty"`
}

// Dropped is a label that could not be placed.
type Dropped struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
	Size   int     `json:"size"`
}

// New builds a Layout document from a layout result and assigns it a fresh ID.
func New(res wordcloud.Result, width, height float64, cfg wordcloud.Config) Layout {
	l := Layout{
		ID:      uuid.NewString(),
		Width:   width,
		Height:  height,
		Words:   make([]Word, 0, len(res.Words)),
		Padding: cfg.Padding,
		Passes:  res.Passes,
		Config:  &cfg,
	}
	for _, w := range res.Words {
		l.Words = append(l.Words, Word{
			Text:        w.Text,
			Weight:      w.Weight,
			Size:        w.FontSize,
			InitialSize: w.InitialSize,
			X:           w.X,
			Y:           w.Y,
			Width:       w.Width,
			Height:      w.Height,
			Color:       w.Color,
		})
	}
	for _, d := range res.Dropped {
		l.Dropped = append(l.Dropped, Dropped{Text: d.Text, Weight: d.Weight, Size: d.FontSize})
	}
	return l
}

// Placed converts the document's words back into engine values.
func (l Layout) Placed() []wordcloud.PlacedWord {
	out := make([]wordcloud.PlacedWord, len(l.Words))
	for i, w := range l.Words {
		out[i] = wordcloud.PlacedWord{
			Text:        w.Text,
			Weight:      w.Weight,
			FontSize:    w.Size,
			InitialSize: w.InitialSize,
			X:           w.X,
			Y:           w.Y,
			Width:       w.Width,
			Height:      w.Height,
			Color:       w.Color,
		}
	}
	return out
}

// SetColors copies the Color of each word in placed onto the matching word
// of l, by index.
func (l *Layout) SetColors(placed []wordcloud.PlacedWord) {
	for i := range l.Words {
		if i < len(placed) {
			l.Words[i].Color = placed[i].Color
		}
	}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that the
// canvas dimensions are usable.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have a positive canvas, got %vx%v", l.Width, l.Height)
	}
	if l.Words == nil {
		l.Words = []Word{}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
