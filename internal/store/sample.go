package store

import (
	"context"
	"fmt"

	"github.com/matzehuels/familytree/pkg/family"
)

// Link is a relationship between two entries of a [Plan], by index.
type Link struct {
	From, To int
	Type     family.RelationType
}

// Plan is a batch of people and the relationships between them, with
// endpoints given as indexes into People so it can be loaded into an empty
// store.
type Plan struct {
	People []family.Person
	Links  []Link
}

// Load creates every person and relationship of plan in s and returns the
// ids assigned to the people, in plan order.
func Load(ctx context.Context, s Store, plan Plan) ([]int64, error) {
	ids := make([]int64, len(plan.People))
	for i := range plan.People {
		p := plan.People[i]
		if err := s.CreatePerson(ctx, &p); err != nil {
			return nil, fmt.Errorf("create %s: %w", p.Name, err)
		}
		ids[i] = p.ID
	}
	for _, l := range plan.Links {
		r := family.Relationship{PersonID: ids[l.From], RelatedPersonID: ids[l.To], Type: l.Type}
		if err := s.CreateRelationship(ctx, &r); err != nil {
			return nil, fmt.Errorf("relate %s to %s: %w", plan.People[l.From].Name, plan.People[l.To].Name, err)
		}
	}
	return ids, nil
}

// SampleFamily is a three-generation family with in-laws, used by the seed
// command and demos.
func SampleFamily() Plan {
	y := family.Year
	return Plan{
		People: []family.Person{
			{Name: "Robert Miller", BirthYear: y(1935), DeathYear: y(2010), Gender: family.GenderMale, BirthPlace: "Boston"},
			{Name: "Margaret Miller", MaidenName: "Hayes", BirthYear: y(1938), DeathYear: y(2018), Gender: family.GenderFemale},
			{Name: "William Miller", BirthYear: y(1960), Gender: family.GenderMale, IsFavorite: true},
			{Name: "Linda Miller", MaidenName: "Clark", BirthYear: y(1962), Gender: family.GenderFemale},
			{Name: "Susan Brooks", MaidenName: "Miller", BirthYear: y(1964), Gender: family.GenderFemale},
			{Name: "Thomas Brooks", BirthYear: y(1961), Gender: family.GenderMale},
			{Name: "Emily Miller", BirthYear: y(1988), Gender: family.GenderFemale},
			{Name: "Daniel Miller", BirthYear: y(1991), Gender: family.GenderMale},
			{Name: "Grace Brooks", BirthYear: y(1993), Gender: family.GenderFemale},
		},
		Links: []Link{
			{0, 1, family.RelationSpouse},
			{0, 2, family.RelationParent},
			{1, 2, family.RelationParent},
			{0, 4, family.RelationParent},
			{1, 4, family.RelationParent},
			{2, 3, family.RelationSpouse},
			{4, 5, family.RelationSpouse},
			{2, 6, family.RelationParent},
			{3, 6, family.RelationParent},
			{2, 7, family.RelationParent},
			{3, 7, family.RelationParent},
			{4, 8, family.RelationParent},
			{5, 8, family.RelationParent},
		},
	}
}

// StarterFamily is the tree a reset recreates: two parents and their three
// children, linked with child edges.
func StarterFamily() Plan {
	y := family.Year
	return Plan{
		People: []family.Person{
			{Name: "John Smith", BirthYear: y(1960), Gender: family.GenderMale},
			{Name: "Sarah Smith", BirthYear: y(1962), Gender: family.GenderFemale},
			{Name: "Michael Smith", BirthYear: y(1985), Gender: family.GenderMale},
			{Name: "Emma Smith", BirthYear: y(1988), Gender: family.GenderFemale},
			{Name: "James Smith", BirthYear: y(1990), Gender: family.GenderMale},
		},
		Links: []Link{
			{0, 1, family.RelationSpouse},
			{0, 2, family.RelationChild},
			{1, 2, family.RelationChild},
			{0, 3, family.RelationChild},
			{1, 3, family.RelationChild},
			{0, 4, family.RelationChild},
			{1, 4, family.RelationChild},
		},
	}
}
