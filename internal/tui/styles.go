package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the CATALYST wordmark.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderWordmark renders "CATALYST" as a slow wave of violet light,
// deep (#2e1a5c) to bright (#a78bfa), with letter spacing and no box.
func renderWordmark(frame int) string {
	const text = "CATALYST"
	n := len(text)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		b = math.Max(0.05, math.Min(1.0, b))

		r := clampByte(46 + b*(167-46))
		g := clampByte(26 + b*(139-26))
		bl := clampByte(92 + b*(250-92))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))

		if i < n-1 {
			out.WriteString("  ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8a84c")).
			Italic(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#111118")).
			Background(lipgloss.Color("#a78bfa")).
			Bold(true).
			Padding(0, 1)

	secondaryActionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0c4d0")).
				Underline(true)

	borderColor  = lipgloss.Color("#1e1e2a")
	surfaceColor = lipgloss.Color("#111118")

	// Per-program accents, keyed by program id.
	programColors = map[string]lipgloss.Color{
		"early-stage": lipgloss.Color("#60a0e0"),
		"growth":      lipgloss.Color("#4ade80"),
		"impact":      lipgloss.Color("#f0944a"),
	}
)

const fallbackGlyph = "\u2726" // sparkle

var programGlyphs = map[string]string{
	"early-stage": "\U0001f680", // rocket
	"growth":      "\U0001f4c8", // chart
	"impact":      "\u2764",     // heart
}

// ProgramGlyph returns the icon for a program id. Unknown ids get a sparkle.
func ProgramGlyph(programID string) string {
	if g, ok := programGlyphs[programID]; ok {
		return g
	}
	return fallbackGlyph
}

// ProgramStyle returns a bold style in the program's accent colour.
func ProgramStyle(programID string) lipgloss.Style {
	if c, ok := programColors[programID]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// statLine joins duration, funding and cohort with separators.
func statLine(duration, funding, cohort string) string {
	return metaStyle.Render(duration + " · " + funding + " · " + cohort)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Programs", "catalyst.vc/programs", "https://catalyst.vc/programs"},
	{"Portfolio", "catalyst.vc/portfolio", "https://catalyst.vc/portfolio"},
	{"Contact", "catalyst.vc/contact", "https://catalyst.vc/contact"},
	{"Website", "catalyst.vc", "https://catalyst.vc"},
}

// helpView renders the help overlay: key bindings per screen, CLI commands
// and the selectable links, with cursor on the selected link.
func helpView(cursor int) string {
	keyStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	linkSelected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))

	var b strings.Builder
	for _, sec := range keys.sections() {
		fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render(sec.title))
		for _, kb := range sec.bindings {
			fmt.Fprintf(&b, "    %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-14s", strings.Join(kb.Keys(), "/"))),
				descStyle.Render(kb.Help().Desc))
		}
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Commands"))
	for _, c := range cliCommands {
		fmt.Fprintf(&b, "    %s  %s\n", keyStyle.Render(fmt.Sprintf("%-24s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range helpItems {
		prefix, label := "    ", keyStyle.Render(fmt.Sprintf("%-24s", item.label))
		if i == cursor {
			prefix, label = "  > ", linkSelected.Render(fmt.Sprintf("%-24s", item.label))
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, descStyle.Render(item.desc))
	}
	return b.String()
}

var cliCommands = []struct{ cmd, desc string }{
	{"catalyst", "browse programs"},
	{"catalyst programs list", "print the catalog"},
	{"catalyst programs show", "print one or more programs"},
	{"catalyst fixture serve", "serve the sample catalog"},
	{"catalyst version", "print the version"},
}
