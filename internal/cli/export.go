package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/pipeline"
)

// exportCommand creates the export command, which writes the tree as a
// snapshot file that render --input and the file store can read.
func (c *CLI) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write people and relationships to a JSON snapshot",
		Long: `Write people and relationships to a JSON snapshot.

Use "-" to write to standard output. The snapshot can be rendered offline with
'render --input' or used as the data file of the file store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runExport(ctx context.Context, path string) (err error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st.Close, &err)

	snap, err := pipeline.LoadSnapshot(ctx, st)
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}

	if path == "-" {
		return family.WriteSnapshot(snap, os.Stdout)
	}
	if err := family.WriteSnapshotFile(snap, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Exported tree")
	printFile(path)
	printStats(len(snap.People), len(snap.Relationships), false)
	return nil
}

// snapshotSource serves a snapshot read from a file as a pipeline source.
type snapshotSource struct {
	snap family.Snapshot
}

func (s snapshotSource) ListPeople(context.Context) ([]family.Person, error) {
	return s.snap.People, nil
}

func (s snapshotSource) ListRelationships(context.Context) ([]family.Relationship, error) {
	return s.snap.Relationships, nil
}

// openSource returns the snapshot at input as a source, or the configured
// store when input is empty. The returned close func must be called.
func (c *CLI) openSource(ctx context.Context, input string) (pipeline.Source, func() error, error) {
	if input != "" {
		snap, err := family.ReadSnapshotFile(input)
		if err != nil {
			return nil, nil, fmt.Errorf("load snapshot %s: %w", input, err)
		}
		return snapshotSource{snap: snap}, func() error { return nil }, nil
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return st, st.Close, nil
}
