// Package family defines the records the family tree is built from.
//
// A [Person] is a node in the tree and a [Relationship] is a typed, directed
// edge between two people. Layout never reads a store directly: it is handed a
// [Snapshot], the complete set of people and relationships at one moment.
//
// # Relationship Direction
//
// Relationships are stored as rows of (PersonID, RelatedPersonID, Type):
//
//	parent  PersonID is a parent of RelatedPersonID
//	child   RelatedPersonID is a child of PersonID
//	spouse  the two people are married (usually stored in both directions)
//
// The "parent" and "child" types describe the same physical edge and both are
// oriented parent → child. Both are hierarchy edges; "spouse" is not.
//
// # Snapshot Serialization
//
// Snapshots use the same JSON shape as the HTTP API:
//
//	{
//	  "people": [{"id": 1, "name": "John Smith", "birthYear": 1975, "gender": "male"}],
//	  "relationships": [{"personId": 1, "relatedPersonId": 2, "relationType": "spouse"}]
//	}
//
// Use [ReadSnapshot]/[WriteSnapshot] or the file variants to convert.
package family
