package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Reload    key.Binding
	Back      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Apply     key.Binding
	Schedule  key.Binding
	CopyLink  key.Binding
	Help      key.Binding
	CloseHelp key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Next:      key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next")),
	Prev:      key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev")),
	Apply:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
	Schedule:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "call")),
	CopyLink:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
	Help:      key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
	CloseHelp: key.NewBinding(key.WithKeys("h", "?", "esc"), key.WithHelp("esc", "close")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type keySection struct {
	title    string
	bindings []key.Binding
}

// sections groups bindings by the screen they act on, for the help overlay.
func (k keyMap) sections() []keySection {
	return []keySection{
		{"Catalog", []key.Binding{k.Down, k.Up, k.Open, k.Reload}},
		{"Program", []key.Binding{k.Down, k.Up, k.Next, k.Prev, k.Apply, k.Schedule, k.CopyLink, k.Reload, k.Back}},
		{"Anywhere", []key.Binding{k.Help, k.Quit}},
	}
}

// helpBar renders bindings as a single help line.
func helpBar(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += helpEntry(h.Key, h.Desc)
	}
	return " " + out
}
