package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCanvasSide is the largest accepted canvas dimension in pixels.
const MaxCanvasSide = 10000

// MaxLabelLength is the longest accepted label, in bytes.
const MaxLabelLength = 200

// ValidateCanvas checks that a canvas size is positive, finite and not
// absurdly large.
func ValidateCanvas(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) || d.v <= 0 {
			return New(ErrCodeInvalidCanvas, "canvas %s must be a positive number, got %v", d.name, d.v)
		}
		if d.v > MaxCanvasSide {
			return New(ErrCodeInvalidCanvas, "canvas %s too large (max %d), got %v", d.name, MaxCanvasSide, d.v)
		}
	}
	return nil
}

// ValidateLabel checks a word-cloud label for emptiness, length and control
// characters.
func ValidateLabel(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidDataset, "label cannot be empty")
	}
	if len(text) > MaxLabelLength {
		return New(ErrCodeInvalidDataset, "label too long (max %d characters): %.20q...", MaxLabelLength, text)
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "label contains control characters: %q", text)
		}
	}
	return nil
}

// ValidateWeight checks that a weight is a finite number. Zero and negative
// weights are valid input; they are filtered out before layout.
func ValidateWeight(text string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidDataset, "weight for %q must be a finite number", text)
	}
	return nil
}

// ValidateURL validates a URL string for a shared cache backend.
// It only accepts the redis and rediss schemes.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "URL must use redis or rediss scheme")
	}
	return nil
}
