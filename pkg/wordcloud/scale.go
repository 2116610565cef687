package wordcloud

import (
	"cmp"
	"math"
	"slices"
)

// PowScale maps [0, DomainMax] onto [Lo, Hi] through t^Exponent, where t is
// the input's fraction of DomainMax. Inputs outside the domain are clamped.
type PowScale struct {
	DomainMax float64
	Exponent  float64
	Lo, Hi    float64
}

// At returns the scaled value of v.
func (s PowScale) At(v float64) float64 {
	if s.DomainMax <= 0 {
		return s.Lo
	}
	t := max(0, min(1, v/s.DomainMax))
	return s.Lo + (s.Hi-s.Lo)*math.Pow(t, s.Exponent)
}

// Size assigns a font size to every usable item and returns them in
// placement order: descending font size, then descending weight, stable on
// input order. Items with empty text or a weight that is not a positive
// finite number are skipped.
func Size(items []Item, opts ...Option) []SizedWord {
	return assignSizes(items, newConfig(opts...))
}

func assignSizes(items []Item, cfg Config) []SizedWord {
	var maxWeight float64
	for _, it := range items {
		if it.Text != "" && validWeight(it.Weight) {
			maxWeight = max(maxWeight, it.Weight)
		}
	}
	if maxWeight == 0 {
		return nil
	}

	scale := PowScale{
		DomainMax: maxWeight,
		Exponent:  cfg.Exponent,
		Lo:        float64(cfg.MinFont),
		Hi:        float64(cfg.MaxFont),
	}

	sized := make([]SizedWord, 0, len(items))
	for _, it := range items {
		if it.Text == "" || !validWeight(it.Weight) {
			continue
		}
		fs := int(math.Round(scale.At(it.Weight)))
		sized = append(sized, SizedWord{
			Text:     it.Text,
			Weight:   it.Weight,
			FontSize: max(fs, cfg.FloorFont),
		})
	}

	slices.SortStableFunc(sized, func(a, b SizedWord) int {
		if c := cmp.Compare(b.FontSize, a.FontSize); c != 0 {
			return c
		}
		return cmp.Compare(b.Weight, a.Weight)
	})
	return sized
}

// candidateSizes lists the sizes tried for a label assigned size fs:
// fs, fs-step, ... down to floor, always ending at floor itself.
func candidateSizes(fs, floor, step int) []int {
	if fs <= floor {
		return []int{fs}
	}
	sizes := make([]int, 0, (fs-floor)/step+2)
	for s := fs; s > floor; s -= step {
		sizes = append(sizes, s)
	}
	return append(sizes, floor)
}
