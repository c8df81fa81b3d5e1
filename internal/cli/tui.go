package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jbass698-121/aveva-diagram-style/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// NodeBrowserModel - Interactive node inspection
// =============================================================================

// NodeBrowserModel lists the placed nodes of a model and shows the geometry
// and connections of the selected one.
type NodeBrowserModel struct {
	Model  *layout.Model
	Cursor int
	Height int
	Offset int
}

// NewNodeBrowserModel creates a browser over m.
func NewNodeBrowserModel(m *layout.Model) NodeBrowserModel {
	return NodeBrowserModel{Model: m, Height: 15}
}

func (m NodeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m NodeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Model.Nodes)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m NodeBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(diagramTitle(m.Model)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Model.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  no nodes placed"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Model.Nodes))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		nd := m.Model.Nodes[i]
		line := fmt.Sprintf("%-10s %-18s", truncateText(nd.Lane, 10), truncateText(nd.ID, 18))
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			list.WriteString(listNormalStyle.Render("  " + line))
		}
		list.WriteString("\n")
	}

	detail := detailBoxStyle.Render(m.detail(m.Model.Nodes[m.Cursor]))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Model.Nodes))))

	return b.String()
}

func (m NodeBrowserModel) detail(nd layout.Node) string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(nd.Title))
	if nd.Sub != "" {
		b.WriteString("  " + StyleDim.Render(nd.Sub))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "kind  %s\nrank  %d\nat    %.0f, %.0f\nsize  %.0f × %.0f\n",
		nd.Kind.OrApp(), nd.Rank, nd.X, nd.Y, nd.W, nd.H)

	var rows [][]string
	for _, e := range m.Model.Edges {
		switch nd.ID {
		case e.From:
			rows = append(rows, []string{"→", e.To, e.Label, e.Via})
		case e.To:
			rows = append(rows, []string{"←", e.From, e.Label, e.Via})
		}
	}
	if len(rows) == 0 {
		b.WriteString(StyleDim.Render("no connections"))
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("", "Node", "Label", "Via").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			return lipgloss.NewStyle()
		}).
		Render())
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func diagramTitle(m *layout.Model) string {
	if m.Metadata.Title != "" {
		return m.Metadata.Title
	}
	return "Diagram"
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
