package cli

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/internal/config"
	"github.com/matzehuels/familytree/internal/events"
	"github.com/matzehuels/familytree/internal/store"
	"github.com/matzehuels/familytree/internal/store/postgres"
	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/pipeline"
)

// =============================================================================
// seed
// =============================================================================

// seedCommand creates the seed command, which loads a sample
// three-generation family.
func (c *CLI) seedCommand() *cobra.Command {
	var appendData bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a sample three-generation family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSeed(cmd.Context(), appendData)
		},
	}

	cmd.Flags().BoolVar(&appendData, "append", false, "add the sample even if the tree is not empty")

	return cmd
}

func (c *CLI) runSeed(ctx context.Context, appendData bool) (err error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st.Close, &err)

	existing, err := st.ListPeople(ctx)
	if err != nil {
		return fmt.Errorf("list people: %w", err)
	}
	if len(existing) > 0 && !appendData {
		return fmt.Errorf("the tree already has %d people (use --append to add the sample anyway)", len(existing))
	}

	plan := store.SampleFamily()
	ids, err := store.Load(ctx, st, plan)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	for i, p := range plan.People {
		p.ID = ids[i]
		c.publish(ctx, events.TopicPersonCreated, events.PersonCreated{Person: p})
	}

	printSuccess("Added %d people and %d relationships", len(plan.People), len(plan.Links))
	printNextStep("Render", appName+" render -o tree.svg")
	return nil
}

// =============================================================================
// reset
// =============================================================================

// resetCommand creates the reset command, which wipes the tree and recreates
// a two-parent, three-child starter family.
func (c *CLI) resetCommand() *cobra.Command {
	var (
		force bool
		empty bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete everyone and recreate a starter family",
		Long: `Delete every person and relationship, then recreate a starter family of two
parents and three children. Use --empty to leave the tree empty instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				printWarning("This deletes every person and relationship")
				return fmt.Errorf("refusing to reset without --force")
			}
			return c.runReset(cmd.Context(), empty)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the reset")
	cmd.Flags().BoolVar(&empty, "empty", false, "do not recreate the starter family")

	return cmd
}

func (c *CLI) runReset(ctx context.Context, empty bool) (err error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st.Close, &err)

	if err := st.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	people := 0
	if !empty {
		plan := store.StarterFamily()
		if _, err := store.Load(ctx, st, plan); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		people = len(plan.People)
	}
	c.publish(ctx, events.TopicTreeReset, events.TreeReset{People: people})

	printSuccess("Reset the tree")
	printDetail("%d people", people)
	return nil
}

// =============================================================================
// stats
// =============================================================================

// statsCommand creates the stats command, which summarises the tree.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show tree counts and people by birth year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context())
		},
	}
}

func (c *CLI) runStats(ctx context.Context) (err error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st.Close, &err)

	snap, err := pipeline.LoadSnapshot(ctx, st)
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}
	s := summarize(snap)

	printKeyValue("people", strconv.Itoa(s.People))
	printKeyValue("relationships", strconv.Itoa(s.Relationships))
	for _, t := range []family.RelationType{family.RelationParent, family.RelationChild, family.RelationSpouse} {
		printKeyValue("  "+string(t), strconv.Itoa(s.ByType[t]))
	}
	printKeyValue("hash", s.Hash)

	if len(snap.People) > 0 {
		printNewline()
		printPeopleTable(byBirthYear(snap.People))
	}
	return nil
}

type treeSummary struct {
	People        int
	Relationships int
	ByType        map[family.RelationType]int
	Hash          string
}

func summarize(snap family.Snapshot) treeSummary {
	s := treeSummary{
		People:        len(snap.People),
		Relationships: len(snap.Relationships),
		ByType:        make(map[family.RelationType]int),
		Hash:          snap.Hash()[:12],
	}
	for _, r := range snap.Relationships {
		s.ByType[r.Type]++
	}
	return s
}

// byBirthYear sorts people oldest first; unknown birth years go last, ties
// by id.
func byBirthYear(people []family.Person) []family.Person {
	sorted := slices.Clone(people)
	slices.SortStableFunc(sorted, func(a, b family.Person) int {
		switch {
		case a.BirthYear == nil && b.BirthYear == nil:
		case a.BirthYear == nil:
			return 1
		case b.BirthYear == nil:
			return -1
		default:
			if c := cmp.Compare(*a.BirthYear, *b.BirthYear); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

// =============================================================================
// migrate
// =============================================================================

// migrateCommand creates the migrate command, which applies the PostgreSQL
// schema migrations.
func (c *CLI) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.Store != config.StorePostgres {
				printInfo("The %s store has no schema to migrate", cfg.Store)
				return nil
			}
			return c.runMigrate(cmd.Context(), cfg.DatabaseURL)
		},
	}
}

func (c *CLI) runMigrate(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	version, err := postgres.Migrate(db)
	if err != nil {
		return err
	}
	printSuccess("Database schema is at version %d", version)
	return nil
}
