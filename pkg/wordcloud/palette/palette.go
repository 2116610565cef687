// Package palette assigns display colors to placed words.
//
// Color is cosmetic and has no effect on layout, so it runs as a separate
// step after [wordcloud.Layout]. Colors are picked with a seeded PCG
// generator: the same seed and word list always produce the same colors,
// which keeps rendered artifacts cacheable and tests reproducible.
package palette

import (
	"math/rand/v2"
	"regexp"
	"slices"
	"sort"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Palette is an ordered list of CSS hex colors.
type Palette []string

// Built-in palettes.
var (
	// Category10 is the classic ten-color categorical scheme.
	Category10 = Palette{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	}

	// Pastel is a soft scheme for light backgrounds.
	Pastel = Palette{
		"#8dd3c7", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
		"#b3de69", "#fccde5", "#bc80bd", "#ccebc5",
	}

	// Mono is a grayscale ramp.
	Mono = Palette{"#252525", "#525252", "#737373", "#969696"}
)

// Default is the name of the palette used when none is specified.
const Default = "category10"

var named = map[string]Palette{
	"category10": Category10,
	"pastel":     Pastel,
	"mono":       Mono,
}

// Named returns the built-in palette with the given name.
func Named(name string) (Palette, bool) {
	p, ok := named[name]
	return p, ok
}

// Names returns the built-in palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Valid reports whether p is non-empty and every entry is a 6-digit hex color.
func (p Palette) Valid() bool {
	if len(p) == 0 {
		return false
	}
	for _, c := range p {
		if !hexColorRe.MatchString(c) {
			return false
		}
	}
	return true
}

// Colorize returns a copy of words with Color set from p. An empty palette
// leaves colors untouched.
func Colorize(words []wordcloud.PlacedWord, p Palette, seed uint64) []wordcloud.PlacedWord {
	out := slices.Clone(words)
	if len(p) == 0 {
		return out
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	for i := range out {
		out[i].Color = p[rng.IntN(len(p))]
	}
	return out
}
