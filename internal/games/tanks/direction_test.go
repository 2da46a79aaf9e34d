package tanks

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func TestDirectionStackOrder(t *testing.T) {
	var s DirectionStack

	if _, ok := s.Top(); ok {
		t.Fatal("zero stack should be empty")
	}

	s.Push(Up)
	s.Push(Left)
	s.Push(Down)
	if d, _ := s.Top(); d != Down {
		t.Fatalf("top = %v, want down", d)
	}

	s.Remove(Left)
	if got := s.Items(); !slices.Equal(got, []Direction{Up, Down}) {
		t.Fatalf("items = %v, want [up down]", got)
	}

	// pushing a held direction moves it to the top
	s.Push(Up)
	if got := s.Items(); !slices.Equal(got, []Direction{Down, Up}) {
		t.Fatalf("items = %v, want [down up]", got)
	}

	s.Remove(Up)
	s.Remove(Up)
	if d, _ := s.Top(); d != Down || s.Len() != 1 {
		t.Fatalf("top = %v len = %d, want down 1", d, s.Len())
	}

	s.Remove(Down)
	if _, ok := s.Top(); ok || s.Len() != 0 {
		t.Fatal("stack should be empty")
	}

	s.Push(Right)
	if d, _ := s.Top(); d != Right {
		t.Fatalf("top = %v after reuse, want right", d)
	}
}

func TestDirectionStackSet(t *testing.T) {
	s := NewDirectionStack()
	s.Push(Up)
	s.Push(Left)
	s.Set(Right)
	if got := s.Items(); !slices.Equal(got, []Direction{Right}) {
		t.Errorf("items = %v, want [right]", got)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Error("clear left entries")
	}
}

func TestDirectionStackCopyIsIndependent(t *testing.T) {
	a := NewDirectionStack()
	a.Push(Up)
	b := a
	b.Push(Left)
	if d, _ := a.Top(); d != Up {
		t.Errorf("copy mutated the original, top = %v", d)
	}
}

func TestDirectionFor(t *testing.T) {
	tests := []struct {
		action core.Action
		want   Direction
		ok     bool
	}{
		{core.ActionUp, Up, true},
		{core.ActionDown, Down, true},
		{core.ActionLeft, Left, true},
		{core.ActionRight, Right, true},
		{core.ActionShoot, 0, false},
	}
	for _, tt := range tests {
		got, ok := directionFor(tt.action)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("directionFor(%v) = %v,%v want %v,%v", tt.action, got, ok, tt.want, tt.ok)
		}
	}
}
