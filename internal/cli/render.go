package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbass698-121/aveva-diagram-style/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  diagramFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render <diagram|->",
		Short: "Render a diagram document to SVG, PNG, JSON or DOT",
		Long: `Render a diagram document.

The input may be canonical, lane-grouped or zone-grouped JSON or YAML, and
may be wrapped in a Markdown fence. Use "-" to read from stdin.

With one format, -o names the output file. With several, -o is a base path
and each format gets its own extension. Without -o, outputs are written next
to the input, or to stdout for a single format read from stdin.`,
		Example: `  archdiagram render arch.json
  archdiagram render arch.yaml -f svg,png --theme dark
  archdiagram render arch.json -t nodelink -o arch-graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.cfg.PipelineOptions())
			return c.runRender(cmd, args[0], output, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.bindRender(cmd)
	flags.bindLayout(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input, output string, opts pipeline.Options, noCache bool) error {
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

	res, err := c.execute(ctx, runner, data, opts)
	if err != nil {
		return err
	}

	if input == "-" && output == "" && len(opts.Formats) == 1 {
		_, err := cmd.OutOrStdout().Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(output, input, opts.Formats)
	for _, f := range opts.Formats {
		if err := os.WriteFile(paths[f], res.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
	}

	printSuccess("Rendered %s", res.Graph.Metadata.Title)
	for _, f := range opts.Formats {
		printFile(paths[f])
	}
	printStats(res.Stats, res.CacheInfo.RenderHit)
	if res.Stats.Dropped > 0 {
		printWarning("%d entities could not be placed", res.Stats.Dropped)
		printNextStep("Details", appName+" inspect "+input)
	}
	return nil
}

// execute runs the pipeline behind a spinner.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, data []byte, opts pipeline.Options) (*pipeline.Result, error) {
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	res, err := runner.Execute(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(res.Artifacts)))
	return res, nil
}

// outputPaths maps each format to its output file.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or any extension
// from input when output is empty. Stdin input defaults to "diagram".
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "diagram"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
