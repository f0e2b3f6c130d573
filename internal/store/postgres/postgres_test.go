package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

var personRowColumns = []string{
	"id", "name", "maiden_name", "birth_year", "birth_date", "birth_place",
	"death_year", "death_date", "death_place", "marriage_place", "gender", "is_favorite",
	"notes", "created_at", "updated_at",
}

func TestScanHelpers(t *testing.T) {
	if nullString("").Valid {
		t.Error("nullString(\"\") should be invalid")
	}
	if ns := nullString("Boston"); !ns.Valid || ns.String != "Boston" {
		t.Errorf("nullString(\"Boston\") = %v", ns)
	}
	if nullIntPtr(nil).Valid {
		t.Error("nullIntPtr(nil) should be invalid")
	}
	if ni := nullIntPtr(family.Year(1950)); !ni.Valid || ni.Int64 != 1950 {
		t.Errorf("nullIntPtr(1950) = %v", ni)
	}
	if intPtr(sql.NullInt64{}) != nil {
		t.Error("intPtr(invalid) should be nil")
	}
	now := time.Now()
	if nt := nullTimePtr(&now); !nt.Valid || !nt.Time.Equal(now) {
		t.Errorf("nullTimePtr(now) = %v", nt)
	}
	if timePtr(sql.NullTime{}) != nil {
		t.Error("timePtr(invalid) should be nil")
	}
}

func TestQueryListPeople(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(personRowColumns).
		AddRow(1, "John Smith", nil, 1960, nil, "Boston", nil, nil, nil, nil, "male", false, nil, now, now).
		AddRow(2, "Sarah Smith", "Jones", nil, nil, nil, nil, nil, nil, nil, nil, true, "note", now, now)
	mock.ExpectQuery("SELECT .+ FROM people ORDER BY id").WillReturnRows(rows)

	people, err := queryListPeople(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("got %d people, want 2", len(people))
	}
	john, sarah := people[0], people[1]
	if john.BirthYear == nil || *john.BirthYear != 1960 || john.BirthPlace != "Boston" || john.Gender != family.GenderMale {
		t.Errorf("john = %+v", john)
	}
	if sarah.BirthYear != nil || sarah.MaidenName != "Jones" || sarah.Gender != family.GenderUnspecified || !sarah.IsFavorite {
		t.Errorf("sarah = %+v", sarah)
	}
}

func TestQueryGetPerson_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM people WHERE id = \\$1").WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)

	_, err := queryGetPerson(context.Background(), db, 7)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestQueryCreatePerson(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	p := &family.Person{Name: "Emma Smith", BirthYear: family.Year(1988), Gender: family.GenderFemale}

	mock.ExpectQuery("INSERT INTO people").
		WithArgs(
			"Emma Smith", nil, int64(1988), nil, nil,
			nil, nil, nil, nil, "female",
			false, nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, now, now))

	if err := queryCreatePerson(context.Background(), db, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 3 || !p.CreatedAt.Equal(now) {
		t.Errorf("person = %+v, want id 3 with timestamps", p)
	}
}

func TestQueryUpdatePerson_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("UPDATE people SET").WillReturnError(sql.ErrNoRows)

	err := queryUpdatePerson(context.Background(), db, &family.Person{ID: 9, Name: "Nobody"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeletePerson(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewFromDB(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM relationships WHERE person_id = \\$1 OR related_person_id = \\$1").
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM people WHERE id = \\$1").
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeletePerson(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeletePerson_NotFoundRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewFromDB(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM relationships").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM people WHERE id = \\$1").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.DeletePerson(context.Background(), 4)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestQueryListRelationships(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "person_id", "related_person_id", "relation_type", "created_at"}).
		AddRow(1, 1, 2, "spouse", now).
		AddRow(2, 1, 3, "child", now)
	mock.ExpectQuery("SELECT .+ FROM relationships ORDER BY id").WillReturnRows(rows)

	rels, err := queryListRelationships(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rels) != 2 || rels[1].Type != family.RelationChild || rels[1].RelatedPersonID != 3 {
		t.Errorf("relationships = %+v", rels)
	}
}

func TestCreateRelationship_ForeignKey(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewFromDB(db)

	mock.ExpectQuery("INSERT INTO relationships").
		WithArgs(int64(1), int64(99), "parent").
		WillReturnError(&pq.Error{Code: foreignKeyViolation})

	r := &family.Relationship{PersonID: 1, RelatedPersonID: 99, Type: family.RelationParent}
	err := s.CreateRelationship(context.Background(), r)
	if !errors.Is(err, errors.ErrCodeConstraintViolation) {
		t.Fatalf("expected CONSTRAINT_VIOLATION, got %v", err)
	}
}

func TestCreateRelationship_Invalid(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewFromDB(db)

	r := &family.Relationship{PersonID: 1, RelatedPersonID: 1, Type: family.RelationSpouse}
	if err := s.CreateRelationship(context.Background(), r); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestQueryReset(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("TRUNCATE relationships, people RESTART IDENTITY").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := queryReset(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStoreUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM people").WillReturnError(sql.ErrConnDone)

	_, err := queryListPeople(context.Background(), db)
	if !errors.Is(err, errors.ErrCodeStoreUnavailable) {
		t.Fatalf("expected STORE_UNAVAILABLE, got %v", err)
	}
}
