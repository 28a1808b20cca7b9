package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Search     key.Binding
	Summarize  key.Binding
	Reset      key.Binding
	Prompt     key.Binding
	NextFocus  key.Binding
	PrevFocus  key.Binding
	Activate   key.Binding
	Help       key.Binding
	HelpAny    key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

// Bindings avoid the ctrl chords the textarea already claims (ctrl+p, ctrl+n, ctrl+f...).
var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Close overlay / quit")),
	Search:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("Ctrl+S", "Find tickets")),
	Summarize:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("Ctrl+G", "Generate summary")),
	Reset:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("Ctrl+L", "Reset session")),
	Prompt:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("Ctrl+O", "Toggle model prompt")),
	NextFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Next control")),
	PrevFocus:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("Shift+Tab", "Previous control")),
	Activate:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("Enter", "Press button")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Toggle help")),
	HelpAny:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "Toggle help")),
	ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Scroll")),
	ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Scroll")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "Page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "Page down")),
}

func (k keyMap) legend() []key.Binding {
	return []key.Binding{
		k.Search, k.Summarize, k.NextFocus,
		k.Activate, k.Prompt, k.Reset,
		k.PageUp, k.PageDown, k.HelpAny,
		k.Back, k.Quit,
	}
}
