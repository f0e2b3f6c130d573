// Package events publishes tree change notifications.
package events

import (
	"context"

	"github.com/matzehuels/familytree/pkg/family"
)

// Event topic constants
const (
	TopicPersonCreated       = "familytree.person.created"
	TopicPersonUpdated       = "familytree.person.updated"
	TopicPersonDeleted       = "familytree.person.deleted"
	TopicRelationshipCreated = "familytree.relationship.created"
	TopicTreeReset           = "familytree.tree.reset"
)

// Event types

type PersonCreated struct {
	Person family.Person `json:"person"`
}

type PersonUpdated struct {
	Person family.Person `json:"person"`
}

type PersonDeleted struct {
	PersonID int64 `json:"person_id"`
}

type RelationshipCreated struct {
	Relationship family.Relationship `json:"relationship"`
}

type TreeReset struct {
	People int `json:"people"` // people in the tree after the reset
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
