package ui

import (
	"github.com/Mshel/sshnake/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Autopilot key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Autopilot: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle autopilot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Autopilot, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Autopilot, k.Help, k.Quit},
	}
}

// Direction maps a movement key to its heading.
func (k KeyMap) Direction(keyMsg tea.KeyMsg) (game.Direction, bool) {
	switch {
	case key.Matches(keyMsg, k.Up):
		return game.Up, true
	case key.Matches(keyMsg, k.Down):
		return game.Down, true
	case key.Matches(keyMsg, k.Left):
		return game.Left, true
	case key.Matches(keyMsg, k.Right):
		return game.Right, true
	}
	return game.Up, false
}
