package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	labelFontSize   = 14.0
	sublineFontSize = 11.0
	fontCharWidth   = 0.55
	textPadding     = 0.85
)

// TruncateLabel shortens label so it fits a box of the given width at
// fontSize, marking the cut with "..".
func TruncateLabel(label string, width, fontSize float64) string {
	maxChars := max(3, int(width*textPadding/(fontSize*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
