package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

type view int

const (
	viewCatalog view = iota
	viewDetail
)

func (v view) String() string {
	if v == viewDetail {
		return "detail"
	}
	return "catalog"
}

// Chrome: header(2) + help(1).
const chromeLines = 3

// App is the root Bubbletea model.
type App struct {
	source     ProgramSource
	logger     zerolog.Logger
	view       view
	catalog    catalogModel
	detail     detailModel
	helpOpen   bool
	helpCursor int
	width      int
	height     int
	frame      int // wordmark shimmer frame
	notice     string
	initCmd    tea.Cmd
}

// NewApp creates the TUI with the catalog mounted and loading.
func NewApp(src ProgramSource, logger zerolog.Logger) App {
	a := App{
		source: src,
		logger: logger,
		view:   viewCatalog,
		detail: newDetailModel(src, nil),
	}
	a.catalog, a.initCmd = newCatalogModel(src).mount()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.initCmd, shimmerTickCmd())
}

func (a App) bodySize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: a.height - chromeLines}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.catalog, _ = a.catalog.Update(a.bodySize())
		a.detail, _ = a.detail.Update(a.bodySize())
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case openProgramMsg:
		a.logger.Debug().Str("program", msg.id).Msg("open program")
		a.catalog.loader.stop()
		siblings := make([]string, 0, len(a.catalog.programs()))
		for _, p := range a.catalog.programs() {
			siblings = append(siblings, p.ID)
		}
		var cmd tea.Cmd
		a.detail, _ = newDetailModel(a.source, siblings).Update(a.bodySize())
		a.detail, cmd = a.detail.show(msg.id)
		a.view = viewDetail
		return a, cmd

	case backMsg:
		a.logger.Debug().Stringer("from", a.view).Msg("back to catalog")
		a.detail.loader.stop()
		var cmd tea.Cmd
		a.catalog, _ = newCatalogModel(a.source).Update(a.bodySize())
		a.catalog, cmd = a.catalog.mount()
		a.view = viewCatalog
		return a, cmd

	case catalogLoadedMsg:
		if msg.err != nil {
			a.logger.Warn().Err(msg.err).Msg("catalog load failed")
		}
		var cmd tea.Cmd
		a.catalog, cmd = a.catalog.Update(msg)
		return a, cmd

	case detailLoadedMsg:
		if msg.err != nil {
			a.logger.Warn().Err(msg.err).Str("program", msg.programID).Msg("program load failed")
		}
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case linkResultMsg:
		if msg.err != nil {
			a.logger.Warn().Err(msg.err).Msg("link action failed")
		}
		if a.view == viewDetail {
			var cmd tea.Cmd
			a.detail, cmd = a.detail.Update(msg)
			return a, cmd
		}
		if msg.err != nil {
			a.notice = errorStyle.Render(msg.err.Error())
		} else {
			a.notice = accentStyle.Render(msg.notice)
		}
		return a, nil

	case tea.KeyMsg:
		a.notice = ""
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch {
			case key.Matches(msg, keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, keys.CloseHelp):
				a.helpOpen = false
			case key.Matches(msg, keys.Down):
				if a.helpCursor < len(helpItems)-1 {
					a.helpCursor++
				}
			case key.Matches(msg, keys.Up):
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case key.Matches(msg, keys.Open):
				if item := helpItems[a.helpCursor]; item.url != "" {
					return a, openCmd(item.url)
				}
			}
			return a, nil
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.helpOpen = true
			a.helpCursor = 0
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewCatalog:
		a.catalog, cmd = a.catalog.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	logo := renderWordmark(a.frame)
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	tagline := metaStyle.Render("programs for founders")
	tagPad := max((a.width-lipgloss.Width(tagline))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo + "\n" + strings.Repeat(" ", tagPad) + tagline

	var body, help string
	switch a.view {
	case viewCatalog:
		body = a.catalog.View()
		help = helpBar(keys.Down, keys.Up, keys.Open, keys.Reload, keys.Help, keys.Quit)
	case viewDetail:
		body = a.detail.View()
		help = a.detail.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = helpBar(keys.Down, keys.Open, keys.CloseHelp)
	}

	bodyHeight := a.height - chromeLines
	if a.notice != "" {
		bodyHeight--
		help = " " + a.notice + "\n" + help
	}
	body = strings.TrimRight(truncateToHeight(body, bodyHeight), "\n")
	return header + "\n" + body + "\n" + help
}
