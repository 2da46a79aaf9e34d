package tanks

// enemyDecide runs one decision tick for an enemy. Both rolls are drawn
// every time so the random stream does not depend on which branch ran.
func (s *Session) enemyDecide(t *Tank) {
	if t.State != Active || t.Frozen {
		return
	}
	change := chance(s.rng, s.enemies.ChangeWeight)
	shoot := chance(s.rng, s.enemies.ShootWeight)

	if t.blocked || change {
		s.chooseDirection(t, t.blocked)
	}
	if shoot {
		s.fire(t)
	}
}

// redirectEnemy picks a new heading right away, never the blocked one.
func (s *Session) redirectEnemy(t *Tank, blocked Direction) {
	t.blocked = true
	t.blockedDir = blocked
	s.chooseDirection(t, true)
}

// chooseDirection draws a heading uniformly from those that do not run off
// the map, minus the blocked heading when forced. With no candidate left the
// current heading is kept.
func (s *Session) chooseDirection(t *Tank, forced bool) {
	var candidates [4]Direction
	n := 0
	for _, d := range Directions {
		if s.atEdge(t, d) {
			continue
		}
		if forced && d == t.blockedDir {
			continue
		}
		candidates[n] = d
		n++
	}
	t.blocked = false
	if n == 0 {
		return
	}
	t.Pending.Set(candidates[s.rng.Intn(n)])
}

// atEdge reports whether the tank already touches the map edge in d.
func (s *Session) atEdge(t *Tank, d Direction) bool {
	cube := s.cfg.Map.Cube
	switch d {
	case Up:
		return t.Y <= 0
	case Down:
		return t.Y >= s.cfg.Map.Height()-cube
	case Left:
		return t.X <= 0
	default:
		return t.X >= s.cfg.Map.Width()-cube
	}
}
