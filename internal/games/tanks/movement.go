package tanks

import "github.com/vovakirdan/tui-tanks/internal/core"

// moveTank advances one active tank by one tick.
//
// With a held direction the tank turns, snapping the axis it leaves to the
// nearest half tile, then steps by its speed inside the map. Without one it
// creeps toward the next half-tile boundary along its last heading.
func (s *Session) moveTank(t *Tank) {
	startX, startY, startDir := t.X, t.Y, t.Dir

	if d, ok := t.Pending.Top(); ok {
		if d != t.Dir {
			if d.Horizontal() != t.Dir.Horizontal() {
				s.snapTurn(t)
			}
			t.Dir = d
		}

		preX, preY := t.X, t.Y
		dx, dy := d.Delta()
		t.X += dx * t.Speed
		t.Y += dy * t.Speed
		if s.clamp(t) {
			t.blocked = true
			t.blockedDir = d
		}
		if t.X != preX || t.Y != preY {
			s.resolveTankMove(t, preX, preY)
		}
	} else {
		preX, preY := t.X, t.Y
		if s.alignResidual(t) {
			s.resolveTankMove(t, preX, preY)
		}
	}

	if t.State == Active && (t.X != startX || t.Y != startY || t.Dir != startDir) {
		s.emit(Event{Type: EventTankMoved, ID: t.ID, X: t.X, Y: t.Y, Dir: t.Dir, Tank: t.Kind})
	}
}

// snapOffset returns the shift that moves pos to the nearest multiple of
// half. Misalignment past a quarter tile snaps forward, otherwise back.
func snapOffset(pos, half, quarter int) int {
	p := core.Mod(pos, half)
	if p == 0 {
		return 0
	}
	if p > quarter {
		return half - p
	}
	return -p
}

// snapTurn aligns the axis of travel before a perpendicular turn. A snap
// that would push the tank into something it was not already touching is
// skipped.
func (s *Session) snapTurn(t *Tank) {
	cube := s.cfg.Map.Cube
	half, quarter := cube/2, cube/4
	old := t.Rect(cube)

	if t.Dir.Horizontal() {
		t.X += snapOffset(t.X, half, quarter)
	} else {
		t.Y += snapOffset(t.Y, half, quarter)
	}
	s.clamp(t)

	if t.X == old.X && t.Y == old.Y {
		return
	}
	if s.obstructed(t, old, t.Rect(cube)) {
		t.X, t.Y = old.X, old.Y
	}
}

// alignResidual steps toward the next half-tile boundary along the last
// heading, by at most the tank's speed. It reports whether the tank moved.
func (s *Session) alignResidual(t *Tank) bool {
	half := s.cfg.Map.Cube / 2
	pos := t.Y
	if t.Dir.Horizontal() {
		pos = t.X
	}
	p := core.Mod(pos, half)
	if p == 0 {
		return false
	}

	step := 0
	switch t.Dir {
	case Down, Right:
		step = min(t.Speed, half-p)
	default:
		step = -min(t.Speed, p)
	}
	if t.Dir.Horizontal() {
		t.X += step
	} else {
		t.Y += step
	}
	s.clamp(t)
	return true
}

// clamp keeps the tank inside the map and reports whether it had to.
func (s *Session) clamp(t *Tank) bool {
	cube := s.cfg.Map.Cube
	maxX := s.cfg.Map.Width() - cube
	maxY := s.cfg.Map.Height() - cube
	x := core.Clamp(t.X, 0, maxX)
	y := core.Clamp(t.Y, 0, maxY)
	clamped := x != t.X || y != t.Y
	t.X, t.Y = x, y
	return clamped
}

// obstructed reports whether moving t from old to cur newly overlaps another
// active tank or an impassable terrain quadrant. It has no side effects.
func (s *Session) obstructed(t *Tank, old, cur core.Rect) bool {
	cube := s.cfg.Map.Cube
	for _, o := range s.tanks {
		if o == t || o.State != Active {
			continue
		}
		r := o.Rect(cube)
		if r.Intersects(cur) && !r.Intersects(old) {
			return true
		}
	}
	blocked := false
	s.grid.QuadsIn(cur, func(q QuadRef, kind TerrainKind) bool {
		if !kind.Props().TankPassable && !s.grid.QuadRect(q).Intersects(old) {
			blocked = true
			return false
		}
		return true
	})
	return blocked
}

// stepProjectile advances a projectile and applies everything it hits this
// tick before deciding whether it survives.
func (s *Session) stepProjectile(p *Projectile) {
	dx, dy := p.Dir.Delta()
	p.X += dx * p.Speed
	p.Y += dy * p.Speed

	if !p.Rect().Within(s.grid.Bounds()) {
		s.destroyProjectile(p)
		return
	}
	s.emit(Event{Type: EventProjectileMoved, ID: p.ID, X: p.X, Y: p.Y, Dir: p.Dir})

	mover := contact{kind: KindProjectile, proj: p}
	die := false
	for _, c := range s.projectileContacts(p) {
		if s.collide(&mover, c) == outcomeStop {
			die = true
		}
	}
	if die {
		s.destroyProjectile(p)
	}
}
