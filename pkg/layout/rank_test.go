package layout

import (
	"testing"

	"github.com/matzehuels/familytree/pkg/family"
)

func TestRank_Generations(t *testing.T) {
	snap := threeGenerations()
	ranked := Rank(snap.People, BuildIndex(snap.Relationships), DefaultOptions())

	want := map[int64]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 0, 6: 2}
	for _, pl := range ranked {
		if pl.Rank != want[pl.PersonID] {
			t.Errorf("rank(%d) = %d, want %d", pl.PersonID, pl.Rank, want[pl.PersonID])
		}
	}
}

func TestRank_Coordinates(t *testing.T) {
	snap := family.Snapshot{
		People:        people("John", "Sarah", "A", "B"),
		Relationships: []family.Relationship{child(1, 3), child(2, 3), child(1, 4), child(2, 4)},
	}
	o := DefaultOptions()
	ranked := Rank(snap.People, BuildIndex(snap.Relationships), o)

	step := o.NodeWidth + o.NodeSep
	want := []Placement{
		{PersonID: 1, Rank: 0, X: 0, Y: 30},
		{PersonID: 2, Rank: 0, X: step, Y: 30},
		{PersonID: 3, Rank: 1, X: step / 2, Y: 170},
		{PersonID: 4, Rank: 1, X: step/2 + step, Y: 170},
	}
	for i, w := range want {
		if ranked[i] != w {
			t.Errorf("placement %d = %+v, want %+v", i, ranked[i], w)
		}
	}
}

func TestRank_IgnoresBadEdges(t *testing.T) {
	snap := family.Snapshot{
		People: people("A", "B"),
		Relationships: []family.Relationship{
			child(1, 1),  // self
			child(1, 99), // missing child
			child(98, 2), // missing parent
		},
	}
	ranked := Rank(snap.People, BuildIndex(snap.Relationships), DefaultOptions())

	for _, pl := range ranked {
		if pl.Rank != 0 {
			t.Errorf("rank(%d) = %d, want 0", pl.PersonID, pl.Rank)
		}
	}
}

func TestRank_CycleIsNotFatal(t *testing.T) {
	snap := family.Snapshot{
		People:        people("A", "B", "C"),
		Relationships: []family.Relationship{child(1, 2), child(2, 3), child(3, 1)},
	}
	idx := BuildIndex(snap.Relationships)

	first := Rank(snap.People, idx, DefaultOptions())
	second := Rank(snap.People, idx, DefaultOptions())
	if len(first) != 3 {
		t.Fatalf("got %d placements, want 3", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("placement %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRank_DuplicatePersonKeepsFirst(t *testing.T) {
	ps := append(people("A", "B"), family.Person{ID: 1, Name: "A again"})
	ranked := Rank(ps, BuildIndex(nil), DefaultOptions())
	if len(ranked) != 2 {
		t.Errorf("got %d placements, want 2", len(ranked))
	}
}
