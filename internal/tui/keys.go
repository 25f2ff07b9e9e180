package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Confirm key.Binding
	Up      key.Binding
	Down    key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Confirm: key.NewBinding(key.WithKeys("enter", " ", "z"), key.WithHelp("enter/z", "confirm")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop event")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() string {
	var s string
	for i, b := range []key.Binding{k.Confirm, k.Up, k.Down, k.Cancel, k.Quit} {
		if i > 0 {
			s += "  "
		}
		h := b.Help()
		s += h.Key + " " + h.Desc
	}
	return s
}
