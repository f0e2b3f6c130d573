package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/lib/pq"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

// personColumns is the column list used for SELECT statements on people.
const personColumns = `id, name, maiden_name, birth_year, birth_date, birth_place,
	death_year, death_date, death_place, marriage_place, gender, is_favorite,
	notes, created_at, updated_at`

const relationshipColumns = `id, person_id, related_person_id, relation_type, created_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// foreignKeyViolation is the PostgreSQL SQLSTATE for a failed REFERENCES
// check.
const foreignKeyViolation = "23503"

// storeErr converts a driver error into a coded error.
func storeErr(err error, msg string) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return errors.Wrap(errors.ErrCodeConstraintViolation, err, "%s: referenced person does not exist", msg)
	}
	return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "%s", msg)
}

func queryListPeople(ctx context.Context, db executor) ([]family.Person, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+personColumns+` FROM people ORDER BY id`)
	if err != nil {
		return nil, storeErr(err, "list people")
	}
	defer rows.Close()

	people := []family.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, storeErr(err, "scan person")
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "list people")
	}
	return people, nil
}

func queryGetPerson(ctx context.Context, db executor, id int64) (family.Person, error) {
	row := db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = $1`, id)
	p, err := scanPerson(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return family.Person{}, errors.New(errors.ErrCodeNotFound, "person %d not found", id)
	}
	if err != nil {
		return family.Person{}, storeErr(err, "get person")
	}
	return p, nil
}

func queryCreatePerson(ctx context.Context, db executor, p *family.Person) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO people (
			name, maiden_name, birth_year, birth_date, birth_place,
			death_year, death_date, death_place, marriage_place, gender,
			is_favorite, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		personArgs(p)...,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return storeErr(err, "create person")
	}
	return nil
}

func queryUpdatePerson(ctx context.Context, db executor, p *family.Person) error {
	args := append([]any{p.ID}, personArgs(p)...)
	err := db.QueryRowContext(ctx, `
		UPDATE people SET
			name = $2, maiden_name = $3, birth_year = $4, birth_date = $5,
			birth_place = $6, death_year = $7, death_date = $8, death_place = $9,
			marriage_place = $10, gender = $11, is_favorite = $12, notes = $13,
			updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		args...,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.New(errors.ErrCodeNotFound, "person %d not found", p.ID)
	}
	if err != nil {
		return storeErr(err, "update person")
	}
	return nil
}

func queryDeleteRelationshipsOf(ctx context.Context, db executor, id int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM relationships WHERE person_id = $1 OR related_person_id = $1`, id)
	if err != nil {
		return storeErr(err, "delete relationships")
	}
	return nil
}

func queryDeletePerson(ctx context.Context, db executor, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return storeErr(err, "delete person")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(err, "delete person")
	}
	if n == 0 {
		return errors.New(errors.ErrCodeNotFound, "person %d not found", id)
	}
	return nil
}

func queryListRelationships(ctx context.Context, db executor) ([]family.Relationship, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+relationshipColumns+` FROM relationships ORDER BY id`)
	if err != nil {
		return nil, storeErr(err, "list relationships")
	}
	defer rows.Close()

	rels := []family.Relationship{}
	for rows.Next() {
		var r family.Relationship
		if err := rows.Scan(&r.ID, &r.PersonID, &r.RelatedPersonID, &r.Type, &r.CreatedAt); err != nil {
			return nil, storeErr(err, "scan relationship")
		}
		rels = append(rels, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "list relationships")
	}
	return rels, nil
}

func queryCreateRelationship(ctx context.Context, db executor, r *family.Relationship) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO relationships (person_id, related_person_id, relation_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		r.PersonID, r.RelatedPersonID, string(r.Type),
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return storeErr(err, "create relationship")
	}
	return nil
}

func queryReset(ctx context.Context, db executor) error {
	if _, err := db.ExecContext(ctx, `TRUNCATE relationships, people RESTART IDENTITY`); err != nil {
		return storeErr(err, "reset")
	}
	return nil
}
