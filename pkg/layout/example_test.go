package layout_test

import (
	"fmt"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
)

func ExampleCompute() {
	snap := family.Snapshot{
		People: []family.Person{
			{ID: 1, Name: "John"},
			{ID: 2, Name: "Sarah"},
			{ID: 3, Name: "Michael"},
		},
		Relationships: []family.Relationship{
			{PersonID: 1, RelatedPersonID: 2, Type: family.RelationSpouse},
			{PersonID: 1, RelatedPersonID: 3, Type: family.RelationChild},
			{PersonID: 2, RelatedPersonID: 3, Type: family.RelationChild},
		},
	}

	l := layout.Compute(snap)
	for _, n := range l.Nodes {
		fmt.Printf("%d rank=%d x=%g y=%g\n", n.PersonID, n.Rank, n.X, n.Y)
	}
	// Output:
	// 1 rank=0 x=110 y=50
	// 2 rank=0 x=330 y=50
	// 3 rank=1 x=220 y=190
}
