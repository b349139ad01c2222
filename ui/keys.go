package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevCat   key.Binding
	NextCat   key.Binding
	Open      key.Binding
	Kind      key.Binding
	Retry     key.Binding
	Back      key.Binding
	Focus     key.Binding
	Movies    key.Binding
	Search    key.Binding
	TV        key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PrevCat: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "prev category"),
	),
	NextCat: key.NewBinding(
		key.WithKeys("right", "l", "c"),
		key.WithHelp("→/c", "next category"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Kind: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "search type"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Focus: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "edit query"),
	),
	Movies: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "movies"),
	),
	Search: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "search"),
	),
	TV: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "tv shows"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
