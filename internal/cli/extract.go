package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbass698-121/aveva-diagram-style/pkg/errors"
	gio "github.com/jbass698-121/aveva-diagram-style/pkg/io"
)

// extractCommand creates the extract command, which turns prose into a
// canonical diagram document.
func (c *CLI) extractCommand() *cobra.Command {
	var (
		output  string
		format  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "extract <text-file|->",
		Short: "Build a diagram document from a plain-text description",
		Long: `Build a diagram document from a plain-text description.

Zones such as "DMZ", "internal" or "cloud" become lanes, recognised
components become nodes, and phrases like "connects to" or "->" become
edges. The result is a canonical document that can be edited and rendered.`,
		Example: `  echo "The web app in the DMZ talks to the Postgres database" | archdiagram extract -
  archdiagram extract notes.txt -o arch.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			f := gio.Format(format)
			if !cmd.Flags().Changed("format") && output != "" {
				f = gio.FormatForPath(output)
			}
			if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", string(f),
				[]string{string(gio.FormatJSON), string(gio.FormatYAML)}); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			g, _, err := runner.Extract(cmd.Context(), string(text), false)
			if err != nil {
				return err
			}
			data, err := gio.Marshal(g, f)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Extracted %d lanes, %d nodes, %d edges", len(g.Lanes), len(g.Nodes), len(g.Edges))
			printFile(output)
			printNextStep("Render", appName+" render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", string(gio.FormatJSON), "document encoding: json, yaml")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
