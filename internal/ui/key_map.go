package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	stop   key.Binding
	remove key.Binding
	reload key.Binding
	fetch  key.Binding
	back   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		remove: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		fetch:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch new")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.stop, k.fetch, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.stop, k.remove, k.reload},
		{k.fetch, k.back, k.quit},
	}
}
