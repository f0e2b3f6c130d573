package styles

import (
	"bytes"

	"github.com/matzehuels/familytree/pkg/render"
)

// Style defines the visual appearance of a chart.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, markers).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the rectangle of a person.
	RenderBox(buf *bytes.Buffer, b render.Box)
	// RenderConnector writes a relationship line.
	RenderConnector(buf *bytes.Buffer, c render.Connector)
	// RenderText writes the label and subline of a person.
	RenderText(buf *bytes.Buffer, b render.Box)
}

// Stroke describes how a connector class is drawn.
type Stroke struct {
	Color string
	Width float64
	Dash  string // SVG stroke-dasharray, empty for solid
}

// Fill returns the box colour for a gender class.
func Fill(g render.GenderClass) string {
	switch g {
	case render.GenderMale:
		return "#DBEAFE"
	case render.GenderFemale:
		return "#FCE7F3"
	}
	return "#F3F4F6"
}

// StrokeFor returns the line style for a connector class.
func StrokeFor(c render.EdgeClass) Stroke {
	if c == render.EdgeSpouse {
		return Stroke{Color: "#9CA3AF", Width: 1.5, Dash: "6,4"}
	}
	return Stroke{Color: "#3B82F6", Width: 2}
}
