package tanks

import (
	"math/rand"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Bot produces pseudo-random key presses for both player slots. It drives
// headless runs; the same seed yields the same input sequence.
type Bot struct {
	rng  *rand.Rand
	held map[core.PlayerID]core.Action
}

// NewBot creates a bot with its own random source.
func NewBot(seed int64) *Bot {
	return &Bot{
		rng:  rand.New(rand.NewSource(seed)),
		held: make(map[core.PlayerID]core.Action),
	}
}

var botMoves = [...]core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

// Next returns the input of one tick. Every player occasionally swaps the
// held direction and fires.
func (b *Bot) Next() core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		if b.rng.Intn(20) == 0 {
			if prev, ok := b.held[id]; ok {
				in.Release(id, prev)
			}
			a := botMoves[b.rng.Intn(len(botMoves))]
			in.Press(id, a)
			b.held[id] = a
		}
		if b.rng.Intn(10) == 0 {
			in.Press(id, core.ActionShoot)
		}
	}
	return in
}
