package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the terminal UI.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding

	Filter       key.Binding
	NextCategory key.Binding
	NextTab      key.Binding

	Toggle  key.Binding
	Contact key.Binding

	GoBrowseFound key.Binding
	GoBrowseLost  key.Binding
	GoPostFound   key.Binding
	GoPostLost    key.Binding
	GoMine        key.Binding
	GoSignup      key.Binding
	Logout        key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextCategory: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "resolve/reactivate"),
	),
	Contact: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "contact"),
	),
	GoBrowseFound: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "browse found"),
	),
	GoBrowseLost: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "browse lost"),
	),
	GoPostFound: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "post found"),
	),
	GoPostLost: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "post lost"),
	),
	GoMine: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "my items"),
	),
	GoSignup: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "sign up"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "log out"),
	),
}
