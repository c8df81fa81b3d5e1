package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jbass698-121/aveva-diagram-style/pkg/pipeline"
)

// Palette, ANSI 256.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Shared text styles.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// status is a one-line message prefixed by a colored marker.
type status struct {
	marker string
	style  lipgloss.Style
	tint   bool // also color the message
}

var (
	statusSuccess = status{marker: "✓", style: lipgloss.NewStyle().Foreground(colorGreen)}
	statusError   = status{marker: "✗", style: lipgloss.NewStyle().Foreground(colorRed)}
	statusWarning = status{marker: "!", style: StyleWarning, tint: true}
	statusInfo    = status{marker: "›", style: lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) println(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.tint {
		msg = s.style.Render(msg)
	}
	fmt.Println(s.style.Render(s.marker) + " " + msg)
}

func printSuccess(format string, args ...any) { statusSuccess.println(format, args...) }

func printError(format string, args ...any) { statusError.println(format, args...) }

func printWarning(format string, args ...any) { statusWarning.println(format, args...) }

func printInfo(format string, args ...any) { statusInfo.println(format, args...) }

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints lane, node and edge counts, dropped entities and
// whether the artifacts came from cache, on one line.
func printStats(stats pipeline.Stats, cached bool) {
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(count(stats.LaneCount, "lane")),
		StyleDim.Render(count(stats.NodeCount, "node")),
		StyleDim.Render(count(stats.EdgeCount, "edge")),
	}
	if stats.Dropped > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d dropped", stats.Dropped)))
	}
	if cached {
		parts = append(parts, statusSuccess.style.Render("cached"))
	} else {
		parts = append(parts, statusInfo.style.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, sep))
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
