// Package postgres implements store.Store backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/matzehuels/familytree/internal/store"
	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store implements store.Store on a PostgreSQL database.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New opens the database at databaseURL, configures the pool and applies
// pending migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "open database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "ping database")
	}

	if _, err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewFromDB wraps an open database without migrating it.
func NewFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate applies pending migrations and returns the resulting schema
// version.
func Migrate(db *sql.DB) (uint, error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return 0, fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return 0, fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	return version, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListPeople(ctx context.Context) ([]family.Person, error) {
	return queryListPeople(ctx, s.db)
}

func (s *Store) GetPerson(ctx context.Context, id int64) (family.Person, error) {
	return queryGetPerson(ctx, s.db, id)
}

func (s *Store) CreatePerson(ctx context.Context, p *family.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return queryCreatePerson(ctx, s.db, p)
}

func (s *Store) UpdatePerson(ctx context.Context, p *family.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return queryUpdatePerson(ctx, s.db, p)
}

// DeletePerson removes the person's relationships and then the person in
// one transaction.
func (s *Store) DeletePerson(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx executor) error {
		if err := queryDeleteRelationshipsOf(ctx, tx, id); err != nil {
			return err
		}
		return queryDeletePerson(ctx, tx, id)
	})
}

func (s *Store) ListRelationships(ctx context.Context) ([]family.Relationship, error) {
	return queryListRelationships(ctx, s.db)
}

func (s *Store) CreateRelationship(ctx context.Context, r *family.Relationship) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return queryCreateRelationship(ctx, s.db, r)
}

func (s *Store) Reset(ctx context.Context) error {
	return queryReset(ctx, s.db)
}

// inTx runs fn in a transaction, committing on success and rolling back on
// error.
func (s *Store) inTx(ctx context.Context, fn func(tx executor) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err, "begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeErr(err, "commit transaction")
	}
	return nil
}
