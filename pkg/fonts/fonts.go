// Package fonts provides the font data shared by text measurement and SVG
// rendering.
//
// Measuring with one font and drawing with another makes labels overlap or
// leave gaps, so both sides read from here. The default face is Go Regular,
// which ships inside golang.org/x/image and needs no files on disk.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

// GoRegularTTF returns the Go Regular TrueType data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoRegularBase64 returns the Go Regular TTF data as a base64 string for
// embedding in an SVG @font-face rule. The result is cached after first
// computation.
func GoRegularBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// FontFamily is the CSS font-family name used for the embedded face.
const FontFamily = "Go"

// FallbackFontFamily provides fallback fonts for viewers without the embedded font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`
