package cli

import (
	"cmp"
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/internal/events"
	"github.com/matzehuels/familytree/pkg/family"
)

// personCommand creates the person command group.
func (c *CLI) personCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Add, list and remove people",
	}

	cmd.AddCommand(c.personAddCommand())
	cmd.AddCommand(c.personListCommand())
	cmd.AddCommand(c.personShowCommand())
	cmd.AddCommand(c.personDeleteCommand())

	return cmd
}

// personAddCommand creates the "person add" subcommand.
func (c *CLI) personAddCommand() *cobra.Command {
	var (
		p            family.Person
		gender       string
		birth, death int
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a person to the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Name = args[0]
			p.Gender = family.Gender(gender)
			if cmd.Flags().Changed("birth") {
				p.BirthYear = family.Year(birth)
			}
			if cmd.Flags().Changed("death") {
				p.DeathYear = family.Year(death)
			}
			return c.runPersonAdd(cmd.Context(), p)
		},
	}

	cmd.Flags().StringVarP(&gender, "gender", "g", "", "gender: male, female, other")
	cmd.Flags().IntVar(&birth, "birth", 0, "birth year")
	cmd.Flags().IntVar(&death, "death", 0, "death year")
	cmd.Flags().StringVar(&p.MaidenName, "maiden-name", "", "maiden name")
	cmd.Flags().StringVar(&p.BirthPlace, "birth-place", "", "place of birth")
	cmd.Flags().StringVar(&p.DeathPlace, "death-place", "", "place of death")
	cmd.Flags().StringVar(&p.MarriagePlace, "marriage-place", "", "place of marriage")
	cmd.Flags().StringVar(&p.Notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&p.IsFavorite, "favorite", false, "highlight this person in charts")

	return cmd
}

func (c *CLI) runPersonAdd(ctx context.Context, p family.Person) (err error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st.Close, &err)

	if err := st.CreatePerson(ctx, &p); err != nil {
		return fmt.Errorf("add person: %w", err)
	}
	c.publish(ctx, events.TopicPersonCreated, events.PersonCreated{Person: p})

	printSuccess("Added %s", p.Name)
	printDetail("id %d", p.ID)
	return nil
}

// personListCommand creates the "person list" subcommand.
func (c *CLI) personListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List everyone in the tree",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			people, err := st.ListPeople(ctx)
			if err != nil {
				return fmt.Errorf("list people: %w", err)
			}
			if len(people) == 0 {
				printInfo("The tree is empty")
				printNextStep("Add sample data", appName+" seed")
				return nil
			}
			printPeopleTable(people)
			return nil
		},
	}
}

// personShowCommand creates the "person show" subcommand.
func (c *CLI) personShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one person and their relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.runPersonShow(cmd.Context(), id)
		},
	}
}

func (c *CLI) runPersonShow(ctx context.Context, id int64) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.GetPerson(ctx, id)
	if err != nil {
		return err
	}
	rels, err := st.ListRelationships(ctx)
	if err != nil {
		return fmt.Errorf("list relationships: %w", err)
	}
	people, err := st.ListPeople(ctx)
	if err != nil {
		return fmt.Errorf("list people: %w", err)
	}
	snap := family.Snapshot{People: people, Relationships: rels}

	fmt.Fprintln(out, styleTitle.Render(p.Name))
	printKeyValue("id", strconv.FormatInt(p.ID, 10))
	for _, kv := range [][2]string{
		{"maiden name", p.MaidenName},
		{"lifespan", p.Lifespan()},
		{"gender", string(p.Gender)},
		{"birth place", p.BirthPlace},
		{"death place", p.DeathPlace},
		{"marriage place", p.MarriagePlace},
		{"notes", p.Notes},
	} {
		if kv[1] != "" {
			printKeyValue(kv[0], kv[1])
		}
	}

	for _, r := range rels {
		var label string
		var other int64
		switch {
		case r.Type == family.RelationSpouse && (r.PersonID == id || r.RelatedPersonID == id):
			label, other = "spouse", r.PersonID+r.RelatedPersonID-id
		case r.Type.IsHierarchy() && r.Parent() == id:
			label, other = "child", r.Child()
		case r.Type.IsHierarchy() && r.Child() == id:
			label, other = "parent", r.Parent()
		default:
			continue
		}
		name := "#" + strconv.FormatInt(other, 10)
		if q, ok := snap.PersonByID(other); ok {
			name = q.Name
		}
		printKeyValue(label, name)
	}
	return nil
}

// personDeleteCommand creates the "person delete" subcommand. Without an id
// it opens an interactive picker.
func (c *CLI) personDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Remove a person and their relationships",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if len(args) == 1 {
				var err error
				if id, err = parseID(args[0]); err != nil {
					return err
				}
			}
			return c.runPersonDelete(cmd.Context(), id)
		},
	}
}

func (c *CLI) runPersonDelete(ctx context.Context, id int64) (err error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st.Close, &err)

	name := ""
	if id == 0 {
		people, err := st.ListPeople(ctx)
		if err != nil {
			return fmt.Errorf("list people: %w", err)
		}
		if len(people) == 0 {
			printInfo("The tree is empty")
			return nil
		}
		p, ok, err := pickPerson("Delete Person", people)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		id, name = p.ID, p.Name
	} else if p, err := st.GetPerson(ctx, id); err == nil {
		name = p.Name
	}

	if err := st.DeletePerson(ctx, id); err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}
	c.publish(ctx, events.TopicPersonDeleted, events.PersonDeleted{PersonID: id})

	printSuccess("Deleted %s", cmp.Or(name, "#"+strconv.FormatInt(id, 10)))
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// closeStore runs closeFn and reports a failure through err unless err is
// already set. File stores write their changes on close.
func closeStore(closeFn func() error, err *error) {
	if cerr := closeFn(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close store: %w", cerr)
	}
}
