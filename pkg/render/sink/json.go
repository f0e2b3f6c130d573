package sink

import (
	"encoding/json"

	"github.com/matzehuels/familytree/pkg/render"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	indent bool
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Style  string     `json:"style,omitempty"`
	Nodes  []jsonNode `json:"nodes"`
	Edges  []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID       int64   `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rank     int     `json:"rank"`
	Row      int     `json:"row"`
	Label    string  `json:"label"`
	Subline  string  `json:"subline,omitempty"`
	Gender   string  `json:"gender"`
	Favorite bool    `json:"favorite,omitempty"`
}

type jsonEdge struct {
	PersonID        int64          `json:"personId"`
	RelatedPersonID int64          `json:"relatedPersonId"`
	Class           string         `json:"class"`
	Points          []render.Point `json:"points"`
}

// RenderJSON encodes a scene for the web client.
func RenderJSON(s render.Scene, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:  s.Width,
		Height: s.Height,
		Style:  r.style,
		Nodes:  make([]jsonNode, 0, len(s.Boxes)),
		Edges:  make([]jsonEdge, 0, len(s.Connectors)),
	}
	for _, b := range s.Boxes {
		out.Nodes = append(out.Nodes, jsonNode{
			ID: b.PersonID, X: b.CX, Y: b.CY,
			Left: b.X, Top: b.Y, Width: b.W, Height: b.H,
			Rank: b.Rank, Row: b.Row, Label: b.Label, Subline: b.Subline,
			Gender: string(b.Gender), Favorite: b.Favorite,
		})
	}
	for _, c := range s.Connectors {
		out.Edges = append(out.Edges, jsonEdge{
			PersonID: c.From, RelatedPersonID: c.To,
			Class: string(c.Class), Points: c.Points,
		})
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
