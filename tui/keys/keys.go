package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
	Pause   key.Binding
	Reset   key.Binding
	Refresh key.Binding
	Units   key.Binding
	Tab     key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Pause:   key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
	Reset:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset history")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh interfaces")),
	Units:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "toggle units")),
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
}
