package tui

import (
	"slices"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// DefaultHoldTimeout is how long a direction stays held after its last key
// message. Terminals report presses and auto-repeats but no releases, so a
// key that stops repeating is treated as released. It has to outlast the
// usual auto-repeat start delay.
const DefaultHoldTimeout = 550 * time.Millisecond

type heldKey struct {
	player core.PlayerID
	action core.Action
}

// HoldTracker turns a stream of terminal key messages into press and release
// events for the simulation.
type HoldTracker struct {
	timeout time.Duration
	seen    map[heldKey]time.Time
	last    map[core.PlayerID]core.Action // most recently pressed direction
}

// NewHoldTracker creates a tracker. A non-positive timeout uses
// DefaultHoldTimeout.
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HoldTracker{
		timeout: timeout,
		seen:    make(map[heldKey]time.Time),
		last:    make(map[core.PlayerID]core.Action),
	}
}

// Press records a direction key message at now. A press event is appended
// to frame unless the direction is already held and on top; auto-repeats
// only refresh the hold.
func (h *HoldTracker) Press(frame *core.MultiInputFrame, p core.PlayerID, a core.Action, now time.Time) {
	k := heldKey{p, a}
	_, held := h.seen[k]
	h.seen[k] = now
	if held && h.last[p] == a {
		return
	}
	h.last[p] = a
	frame.Press(p, a)
}

// Expire appends a release for every direction not refreshed within the
// timeout.
func (h *HoldTracker) Expire(frame *core.MultiInputFrame, now time.Time) {
	for _, k := range h.sortedKeys() {
		if now.Sub(h.seen[k]) >= h.timeout {
			h.release(frame, k)
		}
	}
}

// ReleaseAll appends a release for every held direction.
func (h *HoldTracker) ReleaseAll(frame *core.MultiInputFrame) {
	for _, k := range h.sortedKeys() {
		h.release(frame, k)
	}
}

// Held reports whether the direction is currently held.
func (h *HoldTracker) Held(p core.PlayerID, a core.Action) bool {
	_, ok := h.seen[heldKey{p, a}]
	return ok
}

func (h *HoldTracker) release(frame *core.MultiInputFrame, k heldKey) {
	delete(h.seen, k)
	if h.last[k.player] == k.action {
		delete(h.last, k.player)
	}
	frame.Release(k.player, k.action)
}

// sortedKeys keeps release order independent of map iteration.
func (h *HoldTracker) sortedKeys() []heldKey {
	keys := make([]heldKey, 0, len(h.seen))
	for k := range h.seen {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b heldKey) int {
		if a.player != b.player {
			return int(a.player) - int(b.player)
		}
		return int(a.action) - int(b.action)
	})
	return keys
}
