package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/familytree/pkg/family"
)

// Source supplies the people and relationships of a tree. Store
// implementations satisfy it.
type Source interface {
	ListPeople(ctx context.Context) ([]family.Person, error)
	ListRelationships(ctx context.Context) ([]family.Relationship, error)
}

// LoadSnapshot fetches people and relationships concurrently and returns
// them together. If either fetch fails the other is cancelled and no
// snapshot is returned.
func LoadSnapshot(ctx context.Context, src Source) (family.Snapshot, error) {
	var snap family.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		people, err := src.ListPeople(gctx)
		snap.People = people
		return err
	})
	g.Go(func() error {
		rels, err := src.ListRelationships(gctx)
		snap.Relationships = rels
		return err
	})
	if err := g.Wait(); err != nil {
		return family.Snapshot{}, err
	}
	return snap, nil
}
