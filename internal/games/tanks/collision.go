package tanks

import "github.com/vovakirdan/tui-tanks/internal/core"

// contact is one participant of a collision.
type contact struct {
	kind EntityKind
	tank *Tank
	proj *Projectile
	food *Food
	quad QuadRef
	tk   TerrainKind
}

// outcome is what a collision does to the mover.
type outcome uint8

const (
	outcomeNone outcome = iota
	outcomeStop         // tank: roll back the move; projectile: destroy it
)

type collisionHandler func(s *Session, mover, target *contact) outcome

// collisionTable dispatches on (mover kind, target kind). Pairs without an
// entry do not interact.
var collisionTable [kindCount][kindCount]collisionHandler

func init() {
	collisionTable[KindTank][KindTank] = tankHitsTank
	collisionTable[KindTank][KindTerrain] = tankHitsTerrain
	collisionTable[KindTank][KindFood] = tankHitsFood
	collisionTable[KindProjectile][KindTerrain] = projectileHitsTerrain
	collisionTable[KindProjectile][KindTank] = projectileHitsTank
	collisionTable[KindProjectile][KindProjectile] = projectileHitsProjectile
}

func (s *Session) collide(mover *contact, target contact) outcome {
	h := collisionTable[mover.kind][target.kind]
	if h == nil {
		return outcomeNone
	}
	return h(s, mover, &target)
}

// resolveTankMove checks the tank's new box against everything it did not
// already overlap at (preX, preY). Tanks and terrain are checked before food
// so a rejected move never picks anything up. It reports whether the move
// was rolled back.
func (s *Session) resolveTankMove(t *Tank, preX, preY int) bool {
	mover := contact{kind: KindTank, tank: t}
	for _, c := range s.tankContacts(t, core.NewRect(preX, preY, s.cfg.Map.Cube, s.cfg.Map.Cube)) {
		if s.collide(&mover, c) == outcomeStop {
			t.X, t.Y = preX, preY
			return true
		}
	}
	return false
}

// tankContacts lists what the tank newly overlaps: tanks in spawn order,
// then terrain quadrants in row-major order, then food.
func (s *Session) tankContacts(t *Tank, old core.Rect) []contact {
	cube := s.cfg.Map.Cube
	cur := t.Rect(cube)
	s.contacts = s.contacts[:0]

	for _, o := range s.tanks {
		if o == t || !o.Alive() {
			continue
		}
		r := o.Rect(cube)
		if r.Intersects(cur) && !r.Intersects(old) {
			s.contacts = append(s.contacts, contact{kind: KindTank, tank: o})
		}
	}
	s.grid.QuadsIn(cur, func(q QuadRef, kind TerrainKind) bool {
		if !s.grid.QuadRect(q).Intersects(old) {
			s.contacts = append(s.contacts, contact{kind: KindTerrain, quad: q, tk: kind})
		}
		return true
	})
	for _, f := range s.foods {
		if !f.eaten && f.Rect(cube).Intersects(cur) {
			s.contacts = append(s.contacts, contact{kind: KindFood, food: f})
		}
	}
	return s.contacts
}

// projectileContacts lists everything the projectile overlaps: terrain
// quadrants, tanks, then other projectiles.
func (s *Session) projectileContacts(p *Projectile) []contact {
	cube := s.cfg.Map.Cube
	r := p.Rect()
	s.contacts = s.contacts[:0]

	s.grid.QuadsIn(r, func(q QuadRef, kind TerrainKind) bool {
		s.contacts = append(s.contacts, contact{kind: KindTerrain, quad: q, tk: kind})
		return true
	})
	for _, t := range s.tanks {
		if t.Alive() && t.Rect(cube).Intersects(r) {
			s.contacts = append(s.contacts, contact{kind: KindTank, tank: t})
		}
	}
	for _, o := range s.projectiles {
		if o != p && o.alive && o.Rect().Intersects(r) {
			s.contacts = append(s.contacts, contact{kind: KindProjectile, proj: o})
		}
	}
	return s.contacts
}

func tankHitsTank(_ *Session, mover, target *contact) outcome {
	// appearing tanks are not collidable
	if target.tank.State != Active {
		return outcomeNone
	}
	mover.tank.blocked = true
	mover.tank.blockedDir = mover.tank.Dir
	return outcomeStop
}

func tankHitsTerrain(s *Session, mover, target *contact) outcome {
	if target.tk.Props().TankPassable {
		return outcomeNone
	}
	if t := mover.tank; !t.IsPlayer() {
		s.redirectEnemy(t, t.Dir)
	}
	return outcomeStop
}

func tankHitsFood(s *Session, mover, target *contact) outcome {
	if mover.tank.IsPlayer() {
		s.consumeFood(mover.tank, target.food)
	}
	return outcomeNone
}

func projectileHitsTerrain(s *Session, mover, target *contact) outcome {
	p := mover.proj
	props := target.tk.Props()
	if s.grid.DestroyQuadrant(target.quad, p.Power) {
		r := s.grid.QuadRect(target.quad)
		s.emit(Event{Type: EventQuadrantDestroyed, X: r.X, Y: r.Y, Quad: target.quad, By: p.Owner})
	}
	if !props.ProjectilePassable {
		return outcomeStop
	}
	return outcomeNone
}

func projectileHitsTank(s *Session, mover, target *contact) outcome {
	p, t := mover.proj, target.tank
	// appearing tanks are not collidable, the firer is never hit
	if t.State != Active || t.ID == p.Owner {
		return outcomeNone
	}
	if t.IsPlayer() != p.OwnerIsPlayer && !t.Protected {
		credit := core.PlayerID(0)
		if p.OwnerIsPlayer {
			credit = p.OwnerSlot
		}
		s.destroyTank(t, p.ID, credit)
	}
	return outcomeStop
}

func projectileHitsProjectile(s *Session, _, target *contact) outcome {
	if !target.proj.alive {
		return outcomeNone
	}
	s.destroyProjectile(target.proj)
	return outcomeStop
}
