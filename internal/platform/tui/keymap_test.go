package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestKeyMapperDuo(t *testing.T) {
	km := NewKeyMapper(true)

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		action core.Action
	}{
		{"w", runeKey("w"), core.Player1, core.ActionUp},
		{"d", runeKey("d"), core.Player1, core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.Player1, core.ActionShoot},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.Player2, core.ActionUp},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.Player2, core.ActionLeft},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.Player2, core.ActionShoot},
		{"p", runeKey("p"), core.Player1, core.ActionPause},
		{"r", runeKey("r"), core.Player1, core.ActionRestart},
		{"q", runeKey("q"), core.Player1, core.ActionQuit},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.Player1, core.ActionBack},
		{"x", runeKey("x"), core.Player1, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, a := km.MapKey(tt.msg)
			if p != tt.player || a != tt.action {
				t.Errorf("MapKey() = %v %v, expected %v %v", p, a, tt.player, tt.action)
			}
		})
	}
}

func TestKeyMapperSoloArrowsDriveP1(t *testing.T) {
	km := NewKeyMapper(false)

	p, a := km.MapKey(tea.KeyMsg{Type: tea.KeyDown})
	if p != core.Player1 || a != core.ActionDown {
		t.Errorf("MapKey(down) = %v %v, expected P1 Down", p, a)
	}
	p, a = km.MapKey(tea.KeyMsg{Type: tea.KeyEnter})
	if p != core.Player1 || a != core.ActionShoot {
		t.Errorf("MapKey(enter) = %v %v, expected P1 Shoot", p, a)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}
