package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a frontend-level request derived from input.
type Action int

const (
	ActionNone Action = iota
	ActionTap
	ActionPause
	ActionQuit
)

// KeyMap defines the key bindings for play.
type KeyMap struct {
	Tap   key.Binding
	Pause key.Binding
	Quit  key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Pause, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tap, k.Pause, k.Quit}}
}

// DefaultKeyMap returns the default play bindings.
// Every tap key is the same single input; the session decides whether it
// jumps or restarts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tap: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k", "enter"),
			key.WithHelp("space/click", "flap"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an action.
func (k KeyMap) MapKey(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return ActionQuit
	case key.Matches(msg, k.Pause):
		return ActionPause
	case key.Matches(msg, k.Tap):
		return ActionTap
	}
	return ActionNone
}

// MapMouse translates a mouse message to an action. A left press is a tap.
func MapMouse(msg tea.MouseMsg) Action {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return ActionTap
	}
	return ActionNone
}
