package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/internal/events"
	"github.com/matzehuels/familytree/pkg/family"
)

// relateCommand creates the relate command for linking two people.
func (c *CLI) relateCommand() *cobra.Command {
	var relType string

	cmd := &cobra.Command{
		Use:   "relate [person-id] [related-id]",
		Short: "Record a relationship between two people",
		Long: `Record a relationship between two people.

  parent  person-id is a parent of related-id
  child   person-id is a parent of related-id (stored as written)
  spouse  the two are partners; order does not matter`,
		Example: `  familytree relate 1 3 --type parent
  familytree relate 1 2 --type spouse`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseID(args[0])
			if err != nil {
				return err
			}
			to, err := parseID(args[1])
			if err != nil {
				return err
			}
			r := family.Relationship{PersonID: from, RelatedPersonID: to, Type: family.RelationType(relType)}
			return c.runRelate(cmd.Context(), r)
		},
	}

	cmd.Flags().StringVarP(&relType, "type", "t", string(family.RelationParent), "relationship type: parent, child, spouse")

	return cmd
}

func (c *CLI) runRelate(ctx context.Context, r family.Relationship) (err error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st.Close, &err)

	if err := st.CreateRelationship(ctx, &r); err != nil {
		return fmt.Errorf("relate: %w", err)
	}
	c.publish(ctx, events.TopicRelationshipCreated, events.RelationshipCreated{Relationship: r})

	printSuccess("Recorded %s relationship %d → %d", r.Type, r.PersonID, r.RelatedPersonID)
	return nil
}
