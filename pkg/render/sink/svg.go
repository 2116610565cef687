package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// defaultColor is used for words without an assigned color.
const defaultColor = "#333333"

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	embedFont  bool
	boxes      bool
	title      string
}

// WithBackground fills the canvas with color. Empty means transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithEmbeddedFont inlines the Go Regular face as a base64 @font-face rule so
// the drawing matches the measured extents on any viewer.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithBoxes draws each word's padded placement rectangle. Useful for
// debugging packing.
func WithBoxes() SVGOption { return func(r *svgRenderer) { r.boxes = true } }

// WithTitle adds an accessible <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws a layout as an SVG document. Each word is a <text> element
// centered on its (X, Y) at its final font size.
func RenderSVG(l cloud.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.embedFont {
		renderFontFace(&buf)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	fmt.Fprintf(&buf, `  <g font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n",
		escapeXML(fonts.FallbackFontFamily))
	for _, w := range l.Words {
		if r.boxes {
			renderBox(&buf, w, l.Padding)
		}
		renderWord(&buf, w)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderWord(buf *bytes.Buffer, w cloud.Word) {
	color := w.Color
	if color == "" {
		color = defaultColor
	}
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%d" fill="%s">%s</text>`+"\n",
		w.X, w.Y, w.Size, escapeXML(color), escapeXML(w.Text))
}

func renderBox(buf *bytes.Buffer, w cloud.Word, pad float64) {
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#cc0000" stroke-width="0.5"/>`+"\n",
		w.X-w.Width/2-pad, w.Y-w.Height/2-pad, w.Width+2*pad, w.Height+2*pad)
}

func renderFontFace(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>\n",
		fonts.FontFamily, fonts.GoRegularBase64())
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
