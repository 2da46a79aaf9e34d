package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with high-level intents rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up
	ActionDown           // S, Down arrow - move down
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionShoot          // Space, F, Enter, slash - fire a projectile
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionShoot:
		return "Shoot"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action is one of the four movement actions.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}

// PlayerID identifies a player slot.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// String returns "P1" or "P2".
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "P?"
	}
}

// KeyEvent is a single press or release of an action.
type KeyEvent struct {
	Action   Action
	Released bool
}

// InputFrame holds the input of a single player during one simulation tick.
// Events keep their arrival order, which matters for direction stacking: a
// press followed by a release within the same tick is not the same as a
// release followed by a press.
type InputFrame struct {
	events []KeyEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Press appends a press of the action.
func (f *InputFrame) Press(a Action) {
	f.events = append(f.events, KeyEvent{Action: a})
}

// Release appends a release of the action.
func (f *InputFrame) Release(a Action) {
	f.events = append(f.events, KeyEvent{Action: a, Released: true})
}

// Set marks an action as triggered for this frame. It is an alias for Press
// used by menu-style consumers.
func (f *InputFrame) Set(a Action) {
	f.Press(a)
}

// Has returns true if the action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	for _, ev := range f.events {
		if ev.Action == a && !ev.Released {
			return true
		}
	}
	return false
}

// Events returns the ordered key events of the frame.
func (f InputFrame) Events() []KeyEvent {
	return f.events
}

// Empty reports whether the frame carries no events.
func (f InputFrame) Empty() bool {
	return len(f.events) == 0
}

// Clear resets all events for the next frame.
func (f *InputFrame) Clear() {
	f.events = f.events[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	if len(f.events) == 0 {
		return InputFrame{}
	}
	events := make([]KeyEvent, len(f.events))
	copy(events, f.events)
	return InputFrame{events: events}
}

// MultiInputFrame contains input from all players for a single tick.
// The platform builds it from the keyboard (both players share one terminal)
// or from bots in headless runs. Games consume it without knowing the source.
type MultiInputFrame struct {
	// ByPlayer maps player IDs to their input frames.
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if m.ByPlayer == nil {
		return NewInputFrame()
	}
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}

// Press records a press for the given player.
func (m *MultiInputFrame) Press(id PlayerID, a Action) {
	frame := m.Player(id)
	frame.Press(a)
	m.SetPlayer(id, frame)
}

// Release records a release for the given player.
func (m *MultiInputFrame) Release(id PlayerID, a Action) {
	frame := m.Player(id)
	frame.Release(a)
	m.SetPlayer(id, frame)
}

// Player1 returns the input frame for Player 1 (convenience method).
func (m MultiInputFrame) Player1() InputFrame {
	return m.Player(Player1)
}

// Player2 returns the input frame for Player 2 (convenience method).
func (m MultiInputFrame) Player2() InputFrame {
	return m.Player(Player2)
}

// Has reports whether any player pressed the action this frame.
func (m MultiInputFrame) Has(a Action) bool {
	for _, frame := range m.ByPlayer {
		if frame.Has(a) {
			return true
		}
	}
	return false
}

// Clear resets all player inputs for the next frame.
func (m *MultiInputFrame) Clear() {
	for id := range m.ByPlayer {
		frame := m.ByPlayer[id]
		frame.Clear()
		m.ByPlayer[id] = frame
	}
}

// Clone creates a deep copy of this multi-input frame.
func (m MultiInputFrame) Clone() MultiInputFrame {
	clone := NewMultiInputFrame()
	for id, frame := range m.ByPlayer {
		clone.ByPlayer[id] = frame.Clone()
	}
	return clone
}
