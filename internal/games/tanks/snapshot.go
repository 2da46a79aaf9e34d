package tanks

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// TankSnapshot is the observable state of one tank.
type TankSnapshot struct {
	ID        EntityID
	Kind      TankKind
	X, Y      int
	Dir       Direction
	State     Lifecycle
	Ammo      int
	Protected bool
	Frozen    bool
}

// Snapshot captures the complete session state for determinism testing and
// replay checks.
type Snapshot struct {
	Tick             uint64
	Stage            int
	Phase            Phase
	RemainingToSpawn int
	Lives            []int
	Scores           []int
	Tanks            []TankSnapshot
	Projectiles      int
	Foods            int
	Terrain          uint64 // hash of the grid
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:             s.state.Tick,
		Stage:            s.state.Stage,
		Phase:            s.state.Phase,
		RemainingToSpawn: s.state.RemainingToSpawn,
		Projectiles:      len(s.Projectiles()),
		Foods:            len(s.Foods()),
		Terrain:          s.grid.Hash(),
	}
	for _, slot := range s.state.Slots {
		snap.Lives = append(snap.Lives, slot.Lives)
		snap.Scores = append(snap.Scores, slot.Score)
	}
	for _, t := range s.tanks {
		if !t.Alive() {
			continue
		}
		snap.Tanks = append(snap.Tanks, TankSnapshot{
			ID:        t.ID,
			Kind:      t.Kind,
			X:         t.X,
			Y:         t.Y,
			Dir:       t.Dir,
			State:     t.State,
			Ammo:      t.AmmoAvailable,
			Protected: t.Protected,
			Frozen:    t.Frozen,
		})
	}
	return snap
}

// Hash folds the snapshot into a single value. Two sessions with the same
// seed, config and inputs hash equal tick for tick.
func (snap Snapshot) Hash() uint64 {
	d := xxhash.New()
	fmt.Fprintf(d, "%d/%d/%d/%d/%v/%v/%d/%d/%d|",
		snap.Tick, snap.Stage, snap.Phase, snap.RemainingToSpawn,
		snap.Lives, snap.Scores, snap.Projectiles, snap.Foods, snap.Terrain)
	for _, t := range snap.Tanks {
		fmt.Fprintf(d, "%d:%d:%d:%d:%d:%d:%d:%t:%t;",
			t.ID, t.Kind, t.X, t.Y, t.Dir, t.State, t.Ammo, t.Protected, t.Frozen)
	}
	return d.Sum64()
}

// Hash returns a digest of every tile kind and quadrant bit.
func (g *Grid) Hash() uint64 {
	buf := make([]byte, 0, len(g.tiles)*2)
	for _, t := range g.tiles {
		var bits byte
		for q, present := range t.Quads {
			if present {
				bits |= 1 << q
			}
		}
		buf = append(buf, byte(t.Kind), bits)
	}
	return xxhash.Sum64(buf)
}
