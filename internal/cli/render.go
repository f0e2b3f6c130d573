package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/pkg/pipeline"
)

// renderCommand creates the render command, which draws the tree in one or
// more output formats.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		input      string
		noCache    bool
		orderer    string
		flags      pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the family chart",
		Long: `Render the family chart.

Formats:
  svg       generation chart (default)
  png, pdf  generation chart converted with rsvg-convert
  json      positioned boxes and connectors
  dot       Graphviz source
  nodelink  Graphviz-drawn SVG

Results are cached locally for faster subsequent runs.`,
		Example: `  familytree render -o tree.svg
  familytree render -f svg,png,dot -o charts/family --title "The Millers"
  familytree render --input backup.json -f nodelink`,
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
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Title = flags.Title
			opts.Detailed = flags.Detailed
			opts.Static = flags.Static
			opts.Scale = flags.Scale
			opts.Refresh = flags.Refresh
			return c.runRender(cmd.Context(), input, output, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, nodelink (comma-separated)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "read a snapshot file instead of the store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.Refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().StringVar(&flags.Title, "title", "", "chart title")
	cmd.Flags().BoolVar(&flags.Detailed, "detailed", false, "show places and notes (dot, nodelink)")
	cmd.Flags().BoolVar(&flags.Static, "static", false, "SVG without hover highlighting")
	cmd.Flags().Float64Var(&flags.Scale, "scale", 2, "PNG scale factor")
	addLayoutFlags(cmd, &flags, &orderer)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) (err error) {
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

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	if len(result.Snapshot.People) == 0 {
		printWarning("The tree is empty")
	}

	paths := outputPaths(output, opts.Formats)
	for _, f := range opts.Formats {
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered family chart")
	for _, f := range opts.Formats {
		printFile(paths[f])
	}
	printStats(result.Stats.People, result.Stats.Relationships, result.CacheInfo.RenderHit)
	return nil
}

// outputPaths chooses a file per format. A single format is written to
// output as given; otherwise output (minus any extension) is the base path.
// The default base is "familytree".
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	if base == "" {
		base = appName
	}
	for _, f := range formats {
		paths[f] = base + formatExt(f)
	}
	return paths
}

func formatExt(format string) string {
	if format == pipeline.FormatNodelink {
		return ".nodelink.svg"
	}
	return "." + format
}
