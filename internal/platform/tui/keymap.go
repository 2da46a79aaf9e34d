package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// PlayerKeys are the controls of one player slot.
type PlayerKeys struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Shoot key.Binding
}

func (p PlayerKeys) bindings() []struct {
	b key.Binding
	a core.Action
} {
	return []struct {
		b key.Binding
		a core.Action
	}{
		{p.Up, core.ActionUp},
		{p.Down, core.ActionDown},
		{p.Left, core.ActionLeft},
		{p.Right, core.ActionRight},
		{p.Shoot, core.ActionShoot},
	}
}

// GameKeyMap defines the in-game key bindings. Both players share one
// keyboard: player one on WASD, player two on the arrow keys.
type GameKeyMap struct {
	P1      PlayerKeys
	P2      PlayerKeys
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1.Up, k.P1.Shoot, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1.Up, k.P1.Down, k.P1.Left, k.P1.Right, k.P1.Shoot},
		{k.P2.Up, k.P2.Down, k.P2.Left, k.P2.Right, k.P2.Shoot},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns the bindings for a two-player game.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		P1: PlayerKeys{
			Up:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "P1 up")),
			Down:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "P1 down")),
			Left:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "P1 left")),
			Right: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "P1 right")),
			Shoot: key.NewBinding(key.WithKeys(" ", "f"), key.WithHelp("space/f", "P1 fire")),
		},
		P2: PlayerKeys{
			Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "P2 up")),
			Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "P2 down")),
			Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "P2 left")),
			Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "P2 right")),
			Shoot: key.NewBinding(key.WithKeys("enter", "/"), key.WithHelp("enter", "P2 fire")),
		},
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// SoloGameKeyMap returns the bindings for a one-player game, where both key
// sets drive player one.
func SoloGameKeyMap() GameKeyMap {
	k := DefaultGameKeyMap()
	k.P1 = PlayerKeys{
		Up:    key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "up")),
		Down:  key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "down")),
		Left:  key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "left")),
		Right: key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "right")),
		Shoot: key.NewBinding(key.WithKeys(" ", "f", "enter", "/"), key.WithHelp("space", "fire")),
	}
	k.P2 = PlayerKeys{}
	return k
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a key mapper for a one- or two-player game.
func NewKeyMapper(duo bool) *KeyMapper {
	if duo {
		return &KeyMapper{keys: DefaultGameKeyMap()}
	}
	return &KeyMapper{keys: SoloGameKeyMap()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action and the player it belongs
// to. Global actions (pause, restart, quit) are reported for Player1.
// Returns ActionNone for unbound keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.Player1, core.ActionQuit
	case key.Matches(msg, km.keys.Pause):
		return core.Player1, core.ActionPause
	case key.Matches(msg, km.keys.Restart):
		return core.Player1, core.ActionRestart
	case key.Matches(msg, km.keys.Back):
		return core.Player1, core.ActionBack
	}

	for _, bind := range km.keys.P1.bindings() {
		if key.Matches(msg, bind.b) {
			return core.Player1, bind.a
		}
	}
	for _, bind := range km.keys.P2.bindings() {
		if key.Matches(msg, bind.b) {
			return core.Player2, bind.a
		}
	}
	return core.Player1, core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
