package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
	"github.com/matzehuels/familytree/pkg/pipeline"
)

// layoutCommand creates the layout command, which computes positions and
// prints them per generation or writes them as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		input   string
		noCache bool
		orderer string
		flags   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute chart positions for the tree",
		Long: `Compute chart positions for the tree.

Without --output the generations are printed top to bottom with each person's
centre coordinates. With --output the layout is written as JSON.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.chartOptions()
			if err != nil {
				return err
			}
			opts, err := mergeLayoutFlags(cmd, base, flags, orderer)
			if err != nil {
				return err
			}
			opts.Refresh = flags.Refresh
			return c.runLayout(cmd.Context(), input, output, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().StringVarP(&input, "input", "i", "", "read a snapshot file instead of the store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.Refresh, "refresh", false, "recompute even if cached")
	addLayoutFlags(cmd, &flags, &orderer)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) (err error) {
	src, closeSrc, err := c.openSource(ctx, input)
	if err != nil {
		return err
	}
	defer closeStore(closeSrc, &err)

	runner, ch, err := c.newRunner(ctx, src, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer ch.Close()

	snap, err := runner.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Computing layout...")
	spinner.Start()
	l, cached, err := runner.Layout(ctx, snap, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Computed layout for %d people", len(snap.People)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "" {
		printLayout(l, snap)
		printStats(len(snap.People), len(snap.Relationships), cached)
		return nil
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(snap.People), len(snap.Relationships), cached)
	printNewline()
	printNextStep("Render", appName+" render -o tree.svg")
	return nil
}

// printLayout prints one table row per person, grouped by generation.
func printLayout(l layout.Layout, snap family.Snapshot) {
	var rows [][]string
	for gen, row := range l.Rows() {
		for _, n := range row {
			name := "#" + strconv.FormatInt(n.PersonID, 10)
			if p, ok := snap.PersonByID(n.PersonID); ok {
				name = p.Name
			}
			partner := ""
			if q, ok := snap.PersonByID(n.Partner); ok {
				partner = q.Name
			}
			rows = append(rows, []string{
				strconv.Itoa(gen),
				name,
				strconv.FormatFloat(n.X, 'f', 0, 64),
				strconv.FormatFloat(n.Y, 'f', 0, 64),
				partner,
			})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Gen", "Name", "X", "Y", "Partner").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0 || col == 2 || col == 3:
				return styleNumber
			case col == 1:
				return styleValue
			}
			return styleDim
		})
	fmt.Fprintln(out, t.Render())
	printDetail("%.0f × %.0f", l.Width, l.Height)
}
