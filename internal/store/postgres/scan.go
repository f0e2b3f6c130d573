package postgres

import (
	"database/sql"
	"time"

	"github.com/matzehuels/familytree/pkg/family"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanPerson scans a row laid out as personColumns.
func scanPerson(row scannable) (family.Person, error) {
	var p family.Person
	var (
		maiden        sql.NullString
		birthYear     sql.NullInt64
		birthDate     sql.NullTime
		birthPlace    sql.NullString
		deathYear     sql.NullInt64
		deathDate     sql.NullTime
		deathPlace    sql.NullString
		marriagePlace sql.NullString
		gender        sql.NullString
		notes         sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&maiden,
		&birthYear,
		&birthDate,
		&birthPlace,
		&deathYear,
		&deathDate,
		&deathPlace,
		&marriagePlace,
		&gender,
		&p.IsFavorite,
		&notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return family.Person{}, err
	}

	p.MaidenName = maiden.String
	p.BirthYear = intPtr(birthYear)
	p.BirthDate = timePtr(birthDate)
	p.BirthPlace = birthPlace.String
	p.DeathYear = intPtr(deathYear)
	p.DeathDate = timePtr(deathDate)
	p.DeathPlace = deathPlace.String
	p.MarriagePlace = marriagePlace.String
	p.Gender = family.Gender(gender.String)
	p.Notes = notes.String
	return p, nil
}

// personArgs returns the insert/update arguments in the column order used
// by queryCreatePerson.
func personArgs(p *family.Person) []any {
	return []any{
		p.Name,
		nullString(p.MaidenName),
		nullIntPtr(p.BirthYear),
		nullTimePtr(p.BirthDate),
		nullString(p.BirthPlace),
		nullIntPtr(p.DeathYear),
		nullTimePtr(p.DeathDate),
		nullString(p.DeathPlace),
		nullString(p.MarriagePlace),
		nullString(string(p.Gender)),
		p.IsFavorite,
		nullString(p.Notes),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
