package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/catalyst/pkg/domain"
)

// openProgramMsg asks the App to navigate to a program's detail screen.
type openProgramMsg struct {
	id string
}

type catalogModel struct {
	loader  catalogLoader
	cursor  int
	spinner spinner.Model
	width   int
	height  int
}

func newCatalogModel(src ProgramSource) catalogModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle
	return catalogModel{loader: newCatalogLoader(src), spinner: s}
}

// mount activates the loader. Every mount starts from Loading.
func (m catalogModel) mount() (catalogModel, tea.Cmd) {
	var load tea.Cmd
	m.loader, load = m.loader.activate()
	m.cursor = 0
	return m, tea.Batch(load, m.spinner.Tick)
}

func (m catalogModel) programs() []domain.ProgramSummary {
	if m.loader.status != statusSuccess {
		return nil
	}
	return m.loader.programs
}

func (m catalogModel) selected() (domain.ProgramSummary, bool) {
	programs := m.programs()
	if m.cursor < 0 || m.cursor >= len(programs) {
		return domain.ProgramSummary{}, false
	}
	return programs[m.cursor], true
}

func (m catalogModel) Update(msg tea.Msg) (catalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.loader, _ = m.loader.resolve(msg)
		if m.cursor >= len(m.programs()) {
			m.cursor = 0
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
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.programs())-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Open):
			if p, ok := m.selected(); ok {
				id := p.ID
				return m, func() tea.Msg { return openProgramMsg{id: id} }
			}
		case key.Matches(msg, keys.Reload):
			if m.loader.status != statusLoading {
				return m.mount()
			}
		}
	}
	return m, nil
}

// entries renders one block per program, in source order.
func (m catalogModel) entries() []string {
	programs := m.programs()
	out := make([]string, 0, len(programs))

	maxW := m.width - 8
	if maxW < 20 {
		maxW = 60
	}
	for i, p := range programs {
		var b strings.Builder
		marker := "  "
		title := normalStyle.Render(p.Title)
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			title = selectedStyle.Render(p.Title)
		}
		b.WriteString(marker + ProgramGlyph(p.ID) + " " + title + "\n")

		blurb := p.Subtitle
		if blurb == "" {
			blurb = p.Description
		}
		b.WriteString("     " + dimStyle.Render(truncStr(oneLine(domain.OrPlaceholder(blurb)), maxW)) + "\n")
		b.WriteString("     " + statLine(p.Stats()))
		out = append(out, b.String())
	}
	return out
}

func (m catalogModel) View() string {
	switch m.loader.status {
	case statusFailure:
		return "\n " + errorStyle.Render("could not load programs: "+m.loader.err) +
			"\n\n " + helpEntry("r", "retry")
	case statusSuccess:
		rows := m.entries()
		if len(rows) == 0 {
			return "\n " + dimStyle.Render("no programs yet")
		}
		header := " " + sectionHeaderStyle.Render("── PROGRAMS ──") + "\n\n"
		return "\n" + header + strings.Join(rows, "\n\n")
	default:
		return "\n " + m.spinner.View() + " " + dimStyle.Render("loading programs...")
	}
}
