package palette

import (
	"slices"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

func sampleWords() []wordcloud.PlacedWord {
	return []wordcloud.PlacedWord{
		{Text: "a", X: 10, Y: 10},
		{Text: "b", X: 20, Y: 20},
		{Text: "c", X: 30, Y: 30},
		{Text: "d", X: 40, Y: 40},
	}
}

func TestColorizeDeterministic(t *testing.T) {
	a := Colorize(sampleWords(), Category10, 42)
	b := Colorize(sampleWords(), Category10, 42)
	if !slices.Equal(a, b) {
		t.Errorf("same seed produced different colors:\n%+v\n%+v", a, b)
	}
	for _, w := range a {
		if !slices.Contains(Category10, w.Color) {
			t.Errorf("color %q not from palette", w.Color)
		}
	}
}

func TestColorizeDoesNotMutateInput(t *testing.T) {
	in := sampleWords()
	out := Colorize(in, Mono, 1)
	for i := range in {
		if in[i].Color != "" {
			t.Fatalf("input word %d was mutated", i)
		}
		if out[i].X != in[i].X || out[i].Y != in[i].Y {
			t.Errorf("Colorize moved word %d", i)
		}
	}
}

func TestColorizeEmptyPalette(t *testing.T) {
	out := Colorize(sampleWords(), nil, 7)
	for _, w := range out {
		if w.Color != "" {
			t.Errorf("empty palette set color %q", w.Color)
		}
	}
}

func TestNamed(t *testing.T) {
	for _, name := range Names() {
		p, ok := Named(name)
		if !ok {
			t.Errorf("Named(%q) not found", name)
		}
		if !p.Valid() {
			t.Errorf("built-in palette %q is invalid", name)
		}
	}
	if _, ok := Named("neon"); ok {
		t.Error("Named(\"neon\") should not exist")
	}
	if _, ok := Named(Default); !ok {
		t.Errorf("default palette %q missing", Default)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		p    Palette
		want bool
	}{
		{name: "ok", p: Palette{"#000000", "#ABCDEF"}, want: true},
		{name: "empty", p: Palette{}, want: false},
		{name: "short hex", p: Palette{"#fff"}, want: false},
		{name: "named color", p: Palette{"red"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
