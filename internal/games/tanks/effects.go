package tanks

import "time"

// consumeFood removes a food item and applies its effect for the consumer.
func (s *Session) consumeFood(t *Tank, f *Food) {
	if f.eaten {
		return
	}
	f.eaten = true
	cube := s.cfg.Map.Cube
	s.emit(Event{Type: EventFoodConsumed, ID: f.ID, X: f.Col * cube, Y: f.Row * cube, Food: f.Kind, By: t.ID, Slot: t.Slot})
	s.logger.Debug("food consumed", "kind", f.Kind, "slot", t.Slot)

	switch f.Kind {
	case FoodDetonate:
		s.detonate(t)
	case FoodFreeze:
		s.freeze()
	case FoodFortify:
		s.fortify()
	case FoodInvulnerability:
		s.protect(t, s.cfg.Timers.Protect)
	case FoodExtraLife:
		if slot := s.slot(t.Slot); slot != nil {
			slot.Lives++
		}
	case FoodExtraGun, FoodExtraScore:
		// no numeric effect
	}
}

// detonate destroys every active enemy and credits the consumer.
func (s *Session) detonate(by *Tank) {
	for _, e := range s.tanks {
		if !e.IsPlayer() && e.State == Active {
			s.destroyTank(e, by.ID, by.Slot)
		}
	}
}

// protect makes the tank immune to projectiles for d. A second grant
// replaces the pending expiry.
func (s *Session) protect(t *Tank, d time.Duration) {
	t.protectJob.Cancel()
	t.Protected = true
	t.protectJob = s.sched.After(d, t.ID, func() {
		t.Protected = false
	})
}

// freeze stops every enemy, including those spawned while it lasts.
// Freezing again restarts the timer.
func (s *Session) freeze() {
	s.sched.CancelOwner(ownerFreeze)
	s.state.Frozen = true
	for _, e := range s.tanks {
		if !e.IsPlayer() && e.Alive() {
			e.Frozen = true
		}
	}
	s.sched.After(s.cfg.Timers.Freeze, ownerFreeze, s.thaw)
}

// thaw releases frozen enemies; active ones pick a fresh heading.
func (s *Session) thaw() {
	s.state.Frozen = false
	for _, e := range s.tanks {
		if e.IsPlayer() || !e.Alive() {
			continue
		}
		e.Frozen = false
		if e.State == Active {
			s.chooseDirection(e, false)
		}
	}
}

// fortify turns the remaining home guard bricks to steel. Fortifying again
// restarts the timer.
func (s *Session) fortify() {
	s.sched.CancelOwner(ownerFortify)
	if !s.state.Fortified {
		for _, c := range s.cfg.Terrain.BrickAreas {
			if s.grid.Tile(c.Row, c.Col).Empty() {
				continue
			}
			if s.grid.Convert(c.Row, c.Col, Brick, Steel) {
				s.fortified = append(s.fortified, c)
			}
		}
		s.state.Fortified = true
	}
	s.sched.After(s.cfg.Timers.Fortify, ownerFortify, s.unfortify)
}

func (s *Session) unfortify() {
	for _, c := range s.fortified {
		s.grid.Convert(c.Row, c.Col, Steel, Brick)
	}
	s.fortified = nil
	s.state.Fortified = false
}
