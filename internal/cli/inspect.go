package cli

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags       diagramFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <diagram|->",
		Short: "Show placed nodes and layout diagnostics",
		Long: `Lay out a diagram and print where every node landed, followed by
everything the engine dropped or repaired: nodes on unknown lanes, dangling
edges, unknown bus references, cycles and horizontal overflow.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.cfg.PipelineOptions())
			ctx := cmd.Context()

			data, err := readInput(cmd, args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			g, shape, _, err := runner.Decode(ctx, data, opts.Refresh)
			if err != nil {
				return err
			}
			m, _, err := runner.Layout(ctx, g, opts)
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}

			if interactive {
				_, err := tea.NewProgram(NewNodeBrowserModel(m), tea.WithAltScreen()).Run()
				return err
			}
			printModel(m, shape)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse nodes in a terminal UI")
	flags.bindLayout(cmd)

	return cmd
}

func printModel(m *layout.Model, shape string) {
	fmt.Println(StyleTitle.Render(diagramTitle(m)))
	printKeyValue("Input", shape)
	printKeyValue("Canvas", fmt.Sprintf("%.0f × %.0f", m.Width, m.Height))
	printKeyValue("Lanes", strconv.Itoa(len(m.Lanes)))
	if m.Diagnostics.Scale < 1 {
		printKeyValue("Overflow", fmt.Sprintf("scaled to %.0f%%", m.Diagnostics.Scale*100))
	}
	printNewline()

	if len(m.Nodes) > 0 {
		fmt.Println(nodeTable(m))
		printNewline()
	}
	printDiagnostics(m.Diagnostics)
}

func nodeTable(m *layout.Model) string {
	rows := make([][]string, len(m.Nodes))
	for i, n := range m.Nodes {
		rows[i] = []string{
			n.Lane,
			n.ID,
			string(n.Kind.OrApp()),
			strconv.Itoa(n.Rank),
			fmt.Sprintf("%.0f", n.X),
			fmt.Sprintf("%.0f", n.Y),
			fmt.Sprintf("%.0f×%.0f", n.W, n.H),
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Lane", "Node", "Kind", "Rank", "X", "Y", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Foreground(colorGray).Bold(true)
			case col == 1:
				return s.Foreground(colorCyan)
			case col >= 3:
				return s.Align(lipgloss.Right)
			}
			return s
		}).
		Render()
}

func printDiagnostics(d layout.Diagnostics) {
	if d.Clean() && len(d.Cycles) == 0 {
		printSuccess("No diagnostics")
		return
	}
	groups := []struct {
		name    string
		entries []layout.Dropped
	}{
		{"Dropped node", d.DroppedNodes},
		{"Dropped edge", d.DroppedEdges},
		{"Dropped band", d.DroppedBands},
		{"Dropped bus", d.DroppedBusses},
		{"Unknown via", d.UnknownVias},
	}
	for _, g := range groups {
		for _, e := range g.entries {
			printWarning("%s %s: %s", g.name, e.ID, e.Reason)
		}
	}
	for _, cyc := range d.Cycles {
		printInfo("Cycle: %v", cyc)
	}
	if len(d.Unranked) > 0 {
		printDetail("%d node(s) given the fallback rank", len(d.Unranked))
	}
	if d.BackEdges > 0 {
		printDetail("%d back edge(s) ignored for ranking", d.BackEdges)
	}
	for _, id := range d.Cramped {
		printWarning("Node %s is wider than the canvas; widen it with --width", id)
	}
}
