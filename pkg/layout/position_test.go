package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/familytree/pkg/family"
)

func TestPosition_DoesNotModifyInput(t *testing.T) {
	snap := threeGenerations()
	idx := BuildIndex(snap.Relationships)
	ranked := Rank(snap.People, idx, DefaultOptions())
	before := slices.Clone(ranked)

	Position(ranked, idx, DefaultOptions())

	if !slices.Equal(ranked, before) {
		t.Errorf("Position modified its input:\n got %+v\nwant %+v", ranked, before)
	}
}

func TestPosition_PairTakesHigherLevel(t *testing.T) {
	o := DefaultOptions()
	ranked := []Placement{
		{PersonID: 1, Rank: 0, X: 0, Y: 30},
		{PersonID: 2, Rank: 1, X: 400, Y: 170},
	}
	idx := BuildIndex([]family.Relationship{spouse(1, 2)})

	got := Position(ranked, idx, o)

	if got[0].Y != got[1].Y {
		t.Errorf("Y = %g, %g; want equal", got[0].Y, got[1].Y)
	}
	if got[0].Y != o.Margin+o.NodeHeight/2 {
		t.Errorf("pair Y = %g, want top level", got[0].Y)
	}
	if !near(got[1].X-got[0].X, o.NodeWidth+o.SpouseGap) {
		t.Errorf("X distance = %g", got[1].X-got[0].X)
	}
}

func TestPosition_SingleParentCentresChildren(t *testing.T) {
	o := DefaultOptions()
	ranked := []Placement{
		{PersonID: 1, Rank: 0, X: 0, Y: 30},
		{PersonID: 2, Rank: 1, X: 0, Y: 170},
		{PersonID: 3, Rank: 1, X: 280, Y: 170},
		{PersonID: 4, Rank: 1, X: 560, Y: 170},
	}
	idx := BuildIndex([]family.Relationship{child(1, 2), child(1, 3), child(1, 4)})

	got := Position(ranked, idx, o)

	if mean := (got[1].X + got[2].X + got[3].X) / 3; !near(mean, got[0].X) {
		t.Errorf("children mean X = %g, want parent X %g", mean, got[0].X)
	}
	if !(got[1].X < got[2].X && got[2].X < got[3].X) {
		t.Errorf("children out of order: %+v", got[1:])
	}
}
