package mongo

import (
	"time"

	"github.com/matzehuels/familytree/pkg/family"
)

type personDoc struct {
	ID            int64      `bson:"_id"`
	Name          string     `bson:"name"`
	MaidenName    string     `bson:"maiden_name,omitempty"`
	BirthYear     *int       `bson:"birth_year,omitempty"`
	BirthDate     *time.Time `bson:"birth_date,omitempty"`
	BirthPlace    string     `bson:"birth_place,omitempty"`
	DeathYear     *int       `bson:"death_year,omitempty"`
	DeathDate     *time.Time `bson:"death_date,omitempty"`
	DeathPlace    string     `bson:"death_place,omitempty"`
	MarriagePlace string     `bson:"marriage_place,omitempty"`
	Gender        string     `bson:"gender,omitempty"`
	IsFavorite    bool       `bson:"is_favorite"`
	Notes         string     `bson:"notes,omitempty"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

func newPersonDoc(p *family.Person) personDoc {
	return personDoc{
		ID:            p.ID,
		Name:          p.Name,
		MaidenName:    p.MaidenName,
		BirthYear:     p.BirthYear,
		BirthDate:     p.BirthDate,
		BirthPlace:    p.BirthPlace,
		DeathYear:     p.DeathYear,
		DeathDate:     p.DeathDate,
		DeathPlace:    p.DeathPlace,
		MarriagePlace: p.MarriagePlace,
		Gender:        string(p.Gender),
		IsFavorite:    p.IsFavorite,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d personDoc) person() family.Person {
	return family.Person{
		ID:            d.ID,
		Name:          d.Name,
		MaidenName:    d.MaidenName,
		BirthYear:     d.BirthYear,
		BirthDate:     d.BirthDate,
		BirthPlace:    d.BirthPlace,
		DeathYear:     d.DeathYear,
		DeathDate:     d.DeathDate,
		DeathPlace:    d.DeathPlace,
		MarriagePlace: d.MarriagePlace,
		Gender:        family.Gender(d.Gender),
		IsFavorite:    d.IsFavorite,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type relationshipDoc struct {
	ID              int64     `bson:"_id"`
	PersonID        int64     `bson:"person_id"`
	RelatedPersonID int64     `bson:"related_person_id"`
	Type            string    `bson:"relation_type"`
	CreatedAt       time.Time `bson:"created_at"`
}

func newRelationshipDoc(r *family.Relationship) relationshipDoc {
	return relationshipDoc{
		ID:              r.ID,
		PersonID:        r.PersonID,
		RelatedPersonID: r.RelatedPersonID,
		Type:            string(r.Type),
		CreatedAt:       r.CreatedAt,
	}
}

func (d relationshipDoc) relationship() family.Relationship {
	return family.Relationship{
		ID:              d.ID,
		PersonID:        d.PersonID,
		RelatedPersonID: d.RelatedPersonID,
		Type:            family.RelationType(d.Type),
		CreatedAt:       d.CreatedAt,
	}
}
