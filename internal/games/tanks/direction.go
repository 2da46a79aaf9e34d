package tanks

import "github.com/vovakirdan/tui-tanks/internal/core"

// Direction is one of the four cardinal headings.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every heading in a fixed order. Random picks index into it.
var Directions = [4]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "?"
	}
}

// Horizontal reports whether the heading moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Delta returns the unit step for the heading.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// directionFor maps a movement action to its heading.
func directionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	}
	return 0, false
}

const noLink int8 = -1

// DirectionStack is the ordered set of currently held directions, most
// recent last. It is an intrusive doubly linked list over the four headings,
// so push, remove and top are O(1) and removing from the middle keeps the
// order of the rest.
type DirectionStack struct {
	present    [4]bool
	prev, next [4]int8
	head, tail int8
	n          int
}

// NewDirectionStack returns an empty stack.
func NewDirectionStack() DirectionStack {
	return DirectionStack{head: noLink, tail: noLink}
}

// Push makes d the most recent direction. Pushing a held direction moves it
// to the top.
func (s *DirectionStack) Push(d Direction) {
	if s.n == 0 {
		s.head, s.tail = noLink, noLink
	}
	if s.present[d] {
		s.Remove(d)
	}
	i := int8(d)
	s.present[d] = true
	s.prev[d] = s.tail
	s.next[d] = noLink
	if s.tail != noLink {
		s.next[s.tail] = i
	} else {
		s.head = i
	}
	s.tail = i
	s.n++
}

// Remove drops d wherever it is. Removing an absent direction is a no-op.
func (s *DirectionStack) Remove(d Direction) {
	if !s.present[d] {
		return
	}
	p, n := s.prev[d], s.next[d]
	if p != noLink {
		s.next[p] = n
	} else {
		s.head = n
	}
	if n != noLink {
		s.prev[n] = p
	} else {
		s.tail = p
	}
	s.present[d] = false
	s.n--
}

// Top returns the most recently pushed direction still held.
func (s *DirectionStack) Top() (Direction, bool) {
	if s.n == 0 {
		return 0, false
	}
	return Direction(s.tail), true
}

// Set replaces the contents with a single direction.
func (s *DirectionStack) Set(d Direction) {
	s.Clear()
	s.Push(d)
}

// Clear empties the stack.
func (s *DirectionStack) Clear() {
	*s = NewDirectionStack()
}

// Len returns the number of held directions.
func (s *DirectionStack) Len() int {
	return s.n
}

// Items returns the held directions, oldest first.
func (s *DirectionStack) Items() []Direction {
	out := make([]Direction, 0, s.n)
	if s.n == 0 {
		return out
	}
	for i := s.head; i != noLink; i = s.next[i] {
		out = append(out, Direction(i))
	}
	return out
}
