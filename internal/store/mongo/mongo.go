// Package mongo implements store.Store backed by MongoDB.
//
// People and relationships keep the integer ids of the SQL schema: each
// collection draws ids from a document in the "counters" collection that
// is incremented with $inc.
package mongo

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/familytree/internal/store"
	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

const (
	peopleCollection        = "people"
	relationshipsCollection = "relationships"
	countersCollection      = "counters"
)

// Store implements store.Store on a MongoDB database.
type Store struct {
	client *mongo.Client
	people *mongo.Collection
	rels   *mongo.Collection
	ctrs   *mongo.Collection
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// New connects to uri and uses the database named dbName.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "ping mongodb")
	}
	s := NewFromDatabase(client.Database(dbName))
	s.client = client
	return s, nil
}

// NewFromDatabase uses an existing database handle. Close does not
// disconnect its client.
func NewFromDatabase(db *mongo.Database) *Store {
	return &Store{
		people: db.Collection(peopleCollection),
		rels:   db.Collection(relationshipsCollection),
		ctrs:   db.Collection(countersCollection),
		now:    time.Now,
	}
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

func (s *Store) ListPeople(ctx context.Context) ([]family.Person, error) {
	cur, err := s.people.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storeErr(err, "list people")
	}
	var docs []personDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr(err, "list people")
	}
	people := make([]family.Person, len(docs))
	for i, d := range docs {
		people[i] = d.person()
	}
	return people, nil
}

func (s *Store) GetPerson(ctx context.Context, id int64) (family.Person, error) {
	var d personDoc
	err := s.people.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return family.Person{}, errors.New(errors.ErrCodeNotFound, "person %d not found", id)
	}
	if err != nil {
		return family.Person{}, storeErr(err, "get person")
	}
	return d.person(), nil
}

func (s *Store) CreatePerson(ctx context.Context, p *family.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	id, err := s.nextID(ctx, peopleCollection)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	if _, err := s.people.InsertOne(ctx, newPersonDoc(p)); err != nil {
		return storeErr(err, "create person")
	}
	return nil
}

func (s *Store) UpdatePerson(ctx context.Context, p *family.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = s.now().UTC()
	d := newPersonDoc(p)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: d.Name},
		{Key: "maiden_name", Value: d.MaidenName},
		{Key: "birth_year", Value: d.BirthYear},
		{Key: "birth_date", Value: d.BirthDate},
		{Key: "birth_place", Value: d.BirthPlace},
		{Key: "death_year", Value: d.DeathYear},
		{Key: "death_date", Value: d.DeathDate},
		{Key: "death_place", Value: d.DeathPlace},
		{Key: "marriage_place", Value: d.MarriagePlace},
		{Key: "gender", Value: d.Gender},
		{Key: "is_favorite", Value: d.IsFavorite},
		{Key: "notes", Value: d.Notes},
		{Key: "updated_at", Value: d.UpdatedAt},
	}}}
	var stored personDoc
	err := s.people.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: p.ID}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&stored)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return errors.New(errors.ErrCodeNotFound, "person %d not found", p.ID)
	}
	if err != nil {
		return storeErr(err, "update person")
	}
	p.CreatedAt = stored.CreatedAt
	return nil
}

// DeletePerson removes the person and then every relationship naming them.
func (s *Store) DeletePerson(ctx context.Context, id int64) error {
	res, err := s.people.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return storeErr(err, "delete person")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "person %d not found", id)
	}
	_, err = s.rels.DeleteMany(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "person_id", Value: id}},
		bson.D{{Key: "related_person_id", Value: id}},
	}}})
	if err != nil {
		return storeErr(err, "delete relationships")
	}
	return nil
}

func (s *Store) ListRelationships(ctx context.Context) ([]family.Relationship, error) {
	cur, err := s.rels.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storeErr(err, "list relationships")
	}
	var docs []relationshipDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr(err, "list relationships")
	}
	rels := make([]family.Relationship, len(docs))
	for i, d := range docs {
		rels[i] = d.relationship()
	}
	return rels, nil
}

func (s *Store) CreateRelationship(ctx context.Context, r *family.Relationship) error {
	if err := r.Validate(); err != nil {
		return err
	}
	n, err := s.people.CountDocuments(ctx, bson.D{{Key: "_id", Value: bson.D{
		{Key: "$in", Value: bson.A{r.PersonID, r.RelatedPersonID}},
	}}})
	if err != nil {
		return storeErr(err, "check relationship endpoints")
	}
	if n != 2 {
		return errors.New(errors.ErrCodeConstraintViolation,
			"relationship %d → %d names a person that does not exist", r.PersonID, r.RelatedPersonID)
	}
	id, err := s.nextID(ctx, relationshipsCollection)
	if err != nil {
		return err
	}
	r.ID, r.CreatedAt = id, s.now().UTC()
	if _, err := s.rels.InsertOne(ctx, newRelationshipDoc(r)); err != nil {
		return storeErr(err, "create relationship")
	}
	return nil
}

// Reset deletes all documents, including the id counters.
func (s *Store) Reset(ctx context.Context) error {
	for _, c := range []*mongo.Collection{s.rels, s.people, s.ctrs} {
		if _, err := c.DeleteMany(ctx, bson.D{}); err != nil {
			return storeErr(err, "reset "+c.Name())
		}
	}
	return nil
}

// nextID increments and returns the counter named name.
func (s *Store) nextID(ctx context.Context, name string) (int64, error) {
	var c struct {
		Seq int64 `bson:"seq"`
	}
	err := s.ctrs.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, storeErr(err, "allocate "+name+" id")
	}
	return c.Seq, nil
}

func storeErr(err error, msg string) error {
	return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "%s", msg)
}
