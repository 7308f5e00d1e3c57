package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/catalyst/internal/browser"
	"github.com/naveenspark/catalyst/pkg/domain"
)

// backMsg asks the App to return to the catalog.
type backMsg struct{}

// linkResultMsg reports the outcome of an open or copy action.
type linkResultMsg struct {
	notice string
	err    error
}

// Swapped in tests.
var (
	openLink = browser.Open
	copyLink = clipboard.WriteAll
)

type detailModel struct {
	loader   detailLoader
	siblings []string // catalog order, for next/prev
	spinner  spinner.Model
	body     string // rendered description for the loaded program
	notice   string
	scroll   int // first visible line of a loaded program
	width    int
	height   int
}

func newDetailModel(src ProgramSource, siblings []string) detailModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle
	return detailModel{loader: newDetailLoader(src), siblings: siblings, spinner: s}
}

// show points the view at programID, superseding any outstanding load.
func (m detailModel) show(programID string) (detailModel, tea.Cmd) {
	var load tea.Cmd
	m.loader, load = m.loader.activate(programID)
	m.body = ""
	m.notice = ""
	m.scroll = 0
	if load == nil {
		return m, nil
	}
	return m, tea.Batch(load, m.spinner.Tick)
}

func (m detailModel) program() *domain.ProgramDetail {
	if m.loader.status != statusSuccess {
		return nil
	}
	return m.loader.program
}

func (m detailModel) contentWidth() int {
	if m.width <= 0 {
		return 76
	}
	return max(m.width-4, 20)
}

// sibling returns the id offset steps away from the current program.
func (m detailModel) sibling(offset int) (string, bool) {
	n := len(m.siblings)
	if n < 2 {
		return "", false
	}
	for i, id := range m.siblings {
		if id == m.loader.programID {
			return m.siblings[((i+offset)%n+n)%n], true
		}
	}
	return "", false
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		var applied bool
		m.loader, applied = m.loader.resolve(msg)
		if applied && m.loader.status == statusSuccess {
			m.body = renderMarkdown(domain.OrPlaceholder(m.loader.program.Description), m.contentWidth())
		}
		return m, nil

	case linkResultMsg:
		if msg.err != nil {
			m.notice = errorStyle.Render(msg.err.Error())
		} else {
			m.notice = accentStyle.Render(msg.notice)
		}
		return m, nil

	case spinner.TickMsg:
		if m.loader.status != statusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		resized := msg.Width != m.width
		m.width = msg.Width
		m.height = msg.Height
		if resized && m.program() != nil {
			m.body = renderMarkdown(domain.OrPlaceholder(m.loader.program.Description), m.contentWidth())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.loader.stop()
		return m, func() tea.Msg { return backMsg{} }
	case key.Matches(msg, keys.Reload):
		if m.loader.status != statusLoading {
			return m.show(m.loader.programID)
		}
	case key.Matches(msg, keys.Next):
		if id, ok := m.sibling(1); ok {
			return m.show(id)
		}
	case key.Matches(msg, keys.Prev):
		if id, ok := m.sibling(-1); ok {
			return m.show(id)
		}
	}

	p := m.program()
	if p == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Down):
		m.scroll = min(m.scroll+1, m.maxScroll())
	case key.Matches(msg, keys.Up):
		m.scroll = max(m.scroll-1, 0)
	case key.Matches(msg, keys.Apply):
		if p.Widget.HasPrimaryAction() {
			return m, openCmd(p.Widget.PrimaryLink())
		}
	case key.Matches(msg, keys.Schedule):
		if p.Widget.HasCallAction() {
			return m, openCmd(p.Widget.ScheduleLink())
		}
	case key.Matches(msg, keys.CopyLink):
		if p.Widget.HasPrimaryAction() {
			link := p.Widget.PrimaryLink()
			return m, func() tea.Msg {
				if err := copyLink(link); err != nil {
					return linkResultMsg{err: fmt.Errorf("copy failed: %w", err)}
				}
				return linkResultMsg{notice: "link copied"}
			}
		}
	}
	return m, nil
}

func openCmd(link string) tea.Cmd {
	return func() tea.Msg {
		if err := openLink(link); err != nil {
			return linkResultMsg{err: err}
		}
		return linkResultMsg{notice: "opened " + link}
	}
}

func (m detailModel) View() string {
	switch m.loader.status {
	case statusFailure:
		return "\n " + errorStyle.Render("could not load program: "+m.loader.err) +
			"\n\n " + helpEntry("r", "retry") + "  " + helpEntry("esc", "back")
	case statusSuccess:
		lines := strings.Split(m.viewProgram(m.loader.program), "\n")
		return strings.Join(lines[min(m.scroll, m.maxScroll()):], "\n")
	default:
		return "\n " + m.spinner.View() + " " + dimStyle.Render("loading program...")
	}
}

func (m detailModel) viewProgram(p *domain.ProgramDetail) string {
	var b strings.Builder

	b.WriteString("\n " + ProgramGlyph(p.ID) + " " + ProgramStyle(p.ID).Render(domain.OrPlaceholder(p.Title)) + "\n")
	if p.Subtitle != "" {
		b.WriteString("   " + subtitleStyle.Render(p.Subtitle) + "\n")
	}
	b.WriteString("\n" + m.body + "\n\n")
	b.WriteString(" " + statLine(p.Stats()) + "\n")

	b.WriteString("\n" + m.panel(p.Widget) + "\n")
	if m.notice != "" {
		b.WriteString(" " + m.notice + "\n")
	}

	textWidth := max(m.contentWidth()-3, 20)
	if p.Overview != "" {
		b.WriteString(sectionHeader("OVERVIEW"))
		b.WriteString(indent(normalStyle.Width(textWidth).Render(p.Overview), "   ") + "\n")
	}
	if len(p.Features) > 0 {
		b.WriteString(sectionHeader("WHAT YOU GET"))
		for _, f := range p.Features {
			b.WriteString("   " + accentStyle.Render("•") + " " + normalStyle.Render(f) + "\n")
		}
	}
	if len(p.Curriculum) > 0 {
		b.WriteString(sectionHeader("CURRICULUM"))
		weekWidth := 0
		for _, c := range p.Curriculum {
			weekWidth = max(weekWidth, lipgloss.Width(c.Week))
		}
		pad := strings.Repeat(" ", weekWidth+5)
		for _, c := range p.Curriculum {
			week := fmt.Sprintf("%-*s", weekWidth, c.Week)
			b.WriteString("   " + metaStyle.Render(week) + "  " + selectedStyle.Render(c.Title) + "\n")
			if c.Description != "" {
				b.WriteString(pad + dimStyle.Render(truncStr(c.Description, textWidth-weekWidth-2)) + "\n")
			}
		}
	}
	if len(p.Mentors) > 0 {
		b.WriteString(sectionHeader("MENTORS"))
		for _, mt := range p.Mentors {
			line := "   " + accentStyle.Render("•") + " " + selectedStyle.Render(mt.Name)
			var about []string
			for _, s := range []string{mt.Role, mt.Expertise} {
				if s != "" {
					about = append(about, s)
				}
			}
			if len(about) > 0 {
				line += "  " + dimStyle.Render(strings.Join(about, " · "))
			}
			b.WriteString(line + "\n")
		}
	}
	if len(p.Outcomes) > 0 {
		b.WriteString(sectionHeader("OUTCOMES"))
		for _, o := range p.Outcomes {
			b.WriteString("   " + accentStyle.Render("✓") + " " + normalStyle.Render(o) + "\n")
		}
	}
	return b.String()
}

func sectionHeader(title string) string {
	return "\n " + sectionHeaderStyle.Render("── "+title+" ──") + "\n"
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

// maxScroll is the last scroll offset that still fills the view.
func (m detailModel) maxScroll() int {
	p := m.program()
	if p == nil {
		return 0
	}
	lines := strings.Count(m.viewProgram(p), "\n") + 1
	return max(lines-max(m.height, 1), 0)
}

// panel renders the call-to-action box. A nil widget renders defaults and
// placeholders with no actions.
func (m detailModel) panel(w *domain.Widget) string {
	panelWidth := min(60, m.contentWidth())
	if panelWidth < 30 {
		panelWidth = 30
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(0, 2).
		Width(panelWidth)

	var sb strings.Builder
	sb.WriteString(selectedStyle.Render(w.PanelTitle()) + "\n")
	sb.WriteString(dimStyle.Render(w.PanelDescription()) + "\n\n")
	sb.WriteString(metaStyle.Render("Applications  ") + normalStyle.Render(w.ApplicationTimeText()) + "\n")
	sb.WriteString(metaStyle.Render("Next event    ") + normalStyle.Render(w.NextEventText()))

	if w.HasPrimaryAction() {
		sb.WriteString("\n\n" + helpKeyStyle.Render("a") + " " + actionStyle.Render(w.PrimaryLabel()))
	}
	if w.HasCallAction() {
		sb.WriteString("\n" + helpKeyStyle.Render("s") + " " + secondaryActionStyle.Render(domain.CallLabel))
	}
	return " " + strings.ReplaceAll(box.Render(sb.String()), "\n", "\n ")
}

// helpKeys returns the help bar for the current state.
func (m detailModel) helpKeys() string {
	bindings := []key.Binding{keys.Back}
	if m.maxScroll() > 0 {
		bindings = append(bindings, keys.Down, keys.Up)
	}
	if len(m.siblings) > 1 {
		bindings = append(bindings, keys.Next, keys.Prev)
	}
	if p := m.program(); p != nil {
		if p.Widget.HasPrimaryAction() {
			bindings = append(bindings, keys.Apply, keys.CopyLink)
		}
		if p.Widget.HasCallAction() {
			bindings = append(bindings, keys.Schedule)
		}
	}
	bindings = append(bindings, keys.Help, keys.Quit)
	return helpBar(bindings...)
}
