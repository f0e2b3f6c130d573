package family

import (
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/familytree/pkg/errors"
)

// Gender is the optional gender tag of a person. The empty value means
// unspecified.
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	// GenderOther is accepted for stored rows but renders as unspecified.
	GenderOther Gender = "other"
)

// Known reports whether g is one of the accepted gender tags.
func (g Gender) Known() bool {
	switch g {
	case GenderUnspecified, GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Person is a single member of the family tree.
type Person struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	MaidenName    string     `json:"maidenName,omitempty"`
	BirthYear     *int       `json:"birthYear"`
	BirthDate     *time.Time `json:"birthDate,omitempty"`
	BirthPlace    string     `json:"birthPlace,omitempty"`
	DeathYear     *int       `json:"deathYear"`
	DeathDate     *time.Time `json:"deathDate,omitempty"`
	DeathPlace    string     `json:"deathPlace,omitempty"`
	MarriagePlace string     `json:"marriagePlace,omitempty"`
	Gender        Gender     `json:"gender"`
	IsFavorite    bool       `json:"isFavorite,omitempty"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"createdAt,omitzero"`
	UpdatedAt     time.Time  `json:"updatedAt,omitzero"`
}

// Validate checks the fields a person must have before it is stored.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "name is required")
	}
	if !p.Gender.Known() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid gender: %q", p.Gender)
	}
	if p.BirthYear != nil && p.DeathYear != nil && *p.DeathYear < *p.BirthYear {
		return errors.New(errors.ErrCodeInvalidInput, "death year %d is before birth year %d", *p.DeathYear, *p.BirthYear)
	}
	return nil
}

// Lifespan formats the birth and death years for a label subline:
// "1940", "1940 - 2015" or "" when the birth year is unknown.
func (p *Person) Lifespan() string {
	if p.BirthYear == nil {
		return ""
	}
	s := strconv.Itoa(*p.BirthYear)
	if p.DeathYear != nil {
		s += " - " + strconv.Itoa(*p.DeathYear)
	}
	return s
}

// Year returns a pointer to y, for filling the optional year fields.
func Year(y int) *int { return &y }
