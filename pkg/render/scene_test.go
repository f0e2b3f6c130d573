package render

import (
	"reflect"
	"testing"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
)

func couple() family.Snapshot {
	return family.Snapshot{
		People: []family.Person{
			{ID: 1, Name: "John Smith", BirthYear: family.Year(1975), Gender: family.GenderMale},
			{ID: 2, Name: "Sarah Smith", BirthYear: family.Year(1978), DeathYear: family.Year(2020), Gender: family.GenderFemale, IsFavorite: true},
			{ID: 3, Name: "Michael Smith", Gender: family.GenderOther},
		},
		Relationships: []family.Relationship{
			{PersonID: 1, RelatedPersonID: 2, Type: family.RelationSpouse},
			{PersonID: 2, RelatedPersonID: 1, Type: family.RelationSpouse},
			{PersonID: 1, RelatedPersonID: 3, Type: family.RelationChild},
			{PersonID: 2, RelatedPersonID: 3, Type: family.RelationParent},
			{PersonID: 1, RelatedPersonID: 3, Type: family.RelationParent},
		},
	}
}

func TestProject_Boxes(t *testing.T) {
	snap := couple()
	s := Project(layout.Compute(snap), snap)

	if len(s.Boxes) != 3 {
		t.Fatalf("got %d boxes, want 3", len(s.Boxes))
	}
	john, _ := s.Box(1)
	if john.Label != "John Smith" || john.Subline != "1975" || john.Gender != GenderMale {
		t.Errorf("john = %+v", john)
	}
	if john.X != 20 || john.Y != 20 || john.W != 180 || john.H != 60 {
		t.Errorf("john rect = (%g, %g, %g, %g), want (20, 20, 180, 60)", john.X, john.Y, john.W, john.H)
	}
	sarah, _ := s.Box(2)
	if sarah.Subline != "1978 - 2020" || sarah.Gender != GenderFemale || !sarah.Favorite {
		t.Errorf("sarah = %+v", sarah)
	}
	michael, _ := s.Box(3)
	if michael.Gender != GenderUnspecified {
		t.Errorf("michael gender = %q, want unspecified", michael.Gender)
	}
}

func TestProject_Connectors(t *testing.T) {
	snap := couple()
	s := Project(layout.Compute(snap), snap)

	var spouses, hierarchy int
	for _, c := range s.Connectors {
		switch c.Class {
		case EdgeSpouse:
			spouses++
		case EdgeHierarchy:
			hierarchy++
		}
	}
	if spouses != 1 {
		t.Errorf("spouse connectors = %d, want 1", spouses)
	}
	if hierarchy != 2 {
		t.Errorf("hierarchy connectors = %d, want 2", hierarchy)
	}
}

func TestProject_SkipsMissingEndpoints(t *testing.T) {
	snap := family.Snapshot{
		People: []family.Person{{ID: 1, Name: "A"}},
		Relationships: []family.Relationship{
			{PersonID: 1, RelatedPersonID: 99, Type: family.RelationChild},
			{PersonID: 42, RelatedPersonID: 1, Type: family.RelationSpouse},
		},
	}
	s := Project(layout.Compute(snap), snap)

	if len(s.Boxes) != 1 || len(s.Connectors) != 0 {
		t.Errorf("scene = %d boxes, %d connectors; want 1, 0", len(s.Boxes), len(s.Connectors))
	}
}

func TestProject_Routes(t *testing.T) {
	snap := family.Snapshot{
		People: []family.Person{{ID: 1, Name: "P"}, {ID: 2, Name: "Q"}, {ID: 3, Name: "C"}},
		Relationships: []family.Relationship{
			{PersonID: 2, RelatedPersonID: 1, Type: family.RelationSpouse},
			{PersonID: 1, RelatedPersonID: 3, Type: family.RelationChild},
		},
	}
	l := layout.Compute(snap)
	s := Project(l, snap)

	// P (110,50) and Q (330,50); C centred at 220 one level down.
	wantSpouse := Connector{From: 1, To: 2, Class: EdgeSpouse, Points: []Point{{200, 50}, {240, 50}}}
	wantChild := Connector{From: 1, To: 3, Class: EdgeHierarchy, Points: []Point{{110, 80}, {110, 120}, {220, 120}, {220, 160}}}

	if len(s.Connectors) != 2 {
		t.Fatalf("got %d connectors, want 2", len(s.Connectors))
	}
	if !reflect.DeepEqual(s.Connectors[0], wantSpouse) {
		t.Errorf("spouse = %+v, want %+v", s.Connectors[0], wantSpouse)
	}
	if !reflect.DeepEqual(s.Connectors[1], wantChild) {
		t.Errorf("child = %+v, want %+v", s.Connectors[1], wantChild)
	}
}

func TestClassOf(t *testing.T) {
	tests := map[family.Gender]GenderClass{
		family.GenderMale:        GenderMale,
		family.GenderFemale:      GenderFemale,
		family.GenderOther:       GenderUnspecified,
		family.GenderUnspecified: GenderUnspecified,
	}
	for g, want := range tests {
		if got := ClassOf(g); got != want {
			t.Errorf("ClassOf(%q) = %q, want %q", g, got, want)
		}
	}
}
