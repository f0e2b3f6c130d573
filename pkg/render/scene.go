package render

import (
	"strconv"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
)

// GenderClass selects a box colour.
type GenderClass string

const (
	GenderMale        GenderClass = "male"
	GenderFemale      GenderClass = "female"
	GenderUnspecified GenderClass = "unspecified"
)

// ClassOf maps a stored gender tag to its class. Anything other than male or
// female is unspecified.
func ClassOf(g family.Gender) GenderClass {
	switch g {
	case family.GenderMale:
		return GenderMale
	case family.GenderFemale:
		return GenderFemale
	}
	return GenderUnspecified
}

// EdgeClass selects a connector style.
type EdgeClass string

const (
	EdgeHierarchy EdgeClass = "hierarchy"
	EdgeSpouse    EdgeClass = "spouse"
)

// Point is a position in scene coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is a person's labelled rectangle. X and Y are the top-left corner.
type Box struct {
	PersonID int64
	Label    string
	Subline  string
	X, Y     float64
	W, H     float64
	CX, CY   float64
	Rank     int // generation
	Row      int // drawn level
	Gender   GenderClass
	Favorite bool
}

// Connector is a routed line between two boxes.
type Connector struct {
	From, To int64
	Class    EdgeClass
	Points   []Point
}

// Scene is everything a sink needs to draw a chart.
type Scene struct {
	Width, Height float64
	Boxes         []Box
	Connectors    []Connector
}

// Box returns the box for a person.
func (s Scene) Box(id int64) (Box, bool) {
	for _, b := range s.Boxes {
		if b.PersonID == id {
			return b, true
		}
	}
	return Box{}, false
}

// Project maps a layout and its snapshot to a scene. Boxes follow the order
// of l.Nodes and connectors the order of snap.Relationships.
func Project(l layout.Layout, snap family.Snapshot) Scene {
	people := make(map[int64]family.Person, len(snap.People))
	for _, p := range snap.People {
		if _, dup := people[p.ID]; !dup {
			people[p.ID] = p
		}
	}

	s := Scene{
		Width:  l.Width,
		Height: l.Height,
		Boxes:  make([]Box, 0, len(l.Nodes)),
	}
	boxes := make(map[int64]Box, len(l.Nodes))
	for _, n := range l.Nodes {
		b := projectBox(n, people[n.PersonID])
		boxes[n.PersonID] = b
		s.Boxes = append(s.Boxes, b)
	}

	type key struct {
		a, b  int64
		class EdgeClass
	}
	seen := make(map[key]bool)
	for _, r := range snap.Relationships {
		from, okFrom := boxes[r.PersonID]
		to, okTo := boxes[r.RelatedPersonID]
		if !okFrom || !okTo || r.PersonID == r.RelatedPersonID {
			continue
		}

		var c Connector
		switch {
		case r.Type.IsHierarchy():
			c = Connector{From: r.Parent(), To: r.Child(), Class: EdgeHierarchy, Points: stepRoute(from, to)}
		case r.Type == family.RelationSpouse:
			if from.CX > to.CX {
				from, to = to, from
			}
			c = Connector{From: from.PersonID, To: to.PersonID, Class: EdgeSpouse, Points: sideRoute(from, to)}
		default:
			continue
		}

		k := key{c.From, c.To, c.Class}
		if c.Class == EdgeSpouse && k.a > k.b {
			k.a, k.b = k.b, k.a
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		s.Connectors = append(s.Connectors, c)
	}
	return s
}

func projectBox(n layout.Node, p family.Person) Box {
	x, y, w, h := n.Box()
	label := p.Name
	if label == "" {
		label = "#" + strconv.FormatInt(n.PersonID, 10)
	}
	return Box{
		PersonID: n.PersonID,
		Label:    label,
		Subline:  p.Lifespan(),
		X:        x,
		Y:        y,
		W:        w,
		H:        h,
		CX:       n.X,
		CY:       n.Y,
		Rank:     n.Rank,
		Row:      n.Row,
		Gender:   ClassOf(p.Gender),
		Favorite: p.IsFavorite,
	}
}

// stepRoute runs from the parent's bottom centre down to the gap between
// the two levels, across, and down to the child's top centre.
func stepRoute(parent, child Box) []Point {
	start := Point{parent.CX, parent.Y + parent.H}
	end := Point{child.CX, child.Y}
	if start.X == end.X {
		return []Point{start, end}
	}
	mid := (start.Y + end.Y) / 2
	return []Point{start, {start.X, mid}, {end.X, mid}, end}
}

// sideRoute joins the right side of left to the left side of right, with a
// vertical step halfway when they are on different levels.
func sideRoute(left, right Box) []Point {
	start := Point{left.X + left.W, left.CY}
	end := Point{right.X, right.CY}
	if start.Y == end.Y {
		return []Point{start, end}
	}
	mid := (start.X + end.X) / 2
	return []Point{start, {mid, start.Y}, {mid, end.Y}, end}
}
