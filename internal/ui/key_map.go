package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	play    key.Binding
	pause   key.Binding
	resume  key.Binding
	next    key.Binding
	prev    key.Binding
	shuffle key.Binding
	dismiss key.Binding
	connect key.Binding
	refresh key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		play:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		resume:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		prev:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "prev")),
		shuffle: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "proceed anyway")),
		connect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh token")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.pause, k.resume, k.next, k.prev, k.shuffle, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.play},
		{k.pause, k.resume, k.next, k.prev, k.shuffle},
		{k.dismiss, k.connect, k.refresh, k.quit},
	}
}
