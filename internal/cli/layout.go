package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbass698-121/aveva-diagram-style/pkg/pipeline"
	"github.com/jbass698-121/aveva-diagram-style/pkg/render/sink"
)

// layoutCommand creates the layout command, which writes the resolved model.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  diagramFlags
		output string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "layout <diagram|->",
		Short: "Compute the lane layout of a diagram and write it as JSON",
		Long: `Compute the lane layout of a diagram.

The output holds resolved lane, node, edge, band, bus and note geometry plus
the diagnostics of everything the engine dropped or repaired. It is the same
document 'render -f json' produces.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.cfg.PipelineOptions())
			return c.runLayout(cmd, args[0], output, stdout || (args[0] == "-" && output == ""), opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write to stdout")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme name recorded in the output")
	flags.bindLayout(cmd)

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input, output string, toStdout bool, opts pipeline.Options, noCache bool) error {
	ctx := cmd.Context()
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	data, err := readInput(cmd, input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	g, _, _, err := runner.Decode(ctx, data, opts.Refresh)
	if err != nil {
		spinner.StopWithError("Cannot read diagram")
		return err
	}
	m, cacheHit, err := runner.Layout(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := sink.RenderJSON(m, sink.WithJSONTheme(opts.Theme))
	if err != nil {
		return err
	}
	if toStdout {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(pipeline.Stats{
		NodeCount: len(m.Nodes),
		EdgeCount: len(m.Edges),
		LaneCount: len(m.Lanes),
		Dropped:   m.Diagnostics.DroppedCount(),
	}, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
