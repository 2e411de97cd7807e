package sim

import (
	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
)

// stepPhysics integrates every live player by one fixed tick using
// semi-implicit Euler: velocity is updated from this tick's accumulated
// force first, then position from the new velocity. The pre-integration
// position is recorded in PrevPos for render interpolation.
//
// Players are integrated in index order. They do not collide with each
// other, only with the solid arena geometry, so index order is a tie-break
// in name only — but it stays fixed so any future shared-resource
// interaction inherits a deterministic order.
//
// Determinism note: all arithmetic here is IEEE 754 float64 add/sub/mul
// with no math-library calls, which Go evaluates bit-identically across
// supported platforms. The resolv broadphase is consumed as a deterministic
// black box: both peers build the same space in the same order.
func (s *Simulation) stepPhysics() {
	dt := config.TickSeconds

	for i := range s.state.Players {
		p := &s.state.Players[i]
		if !p.Alive {
			continue
		}

		// Velocity from force, then friction, then the speed cap.
		p.Vel.X += s.forces[i].X * dt
		p.Vel.Y += s.forces[i].Y * dt
		p.Vel.X = applyFriction(p.Vel.X, config.Player.Friction*dt)
		p.Vel.Y = applyFriction(p.Vel.Y, config.Player.Friction*dt)

		limit := config.Player.MaxSpeed
		if dashActive(p) {
			limit = config.Player.DashMaxSpeed
		}
		p.Vel.X = clampSpeed(p.Vel.X, limit)
		p.Vel.Y = clampSpeed(p.Vel.Y, limit)

		p.PrevPos = p.Pos
		s.moveAgainstWalls(i, p.Vel.X*dt, p.Vel.Y*dt)
	}
}

// moveAgainstWalls moves player i by (dx, dy) through the collision space,
// one axis at a time, stopping at solid geometry and zeroing the blocked
// velocity component.
func (s *Simulation) moveAgainstWalls(i int, dx, dy float64) {
	p := &s.state.Players[i]
	obj := s.playerObjs[i]
	if obj == nil {
		p.Pos.X += dx
		p.Pos.Y += dy
		return
	}

	obj.X = p.Pos.X
	obj.Y = p.Pos.Y
	obj.Update()

	if dx != 0 {
		if check := obj.Check(dx, 0, tagSolid); check != nil {
			if solids := check.ObjectsByTags(tagSolid); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dx = contact.X()
				p.Vel.X = 0
			}
		}
		obj.X += dx
		obj.Update()
	}

	if dy != 0 {
		if check := obj.Check(0, dy, tagSolid); check != nil {
			if solids := check.ObjectsByTags(tagSolid); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dy = contact.Y()
				p.Vel.Y = 0
			}
		}
		obj.Y += dy
		obj.Update()
	}

	p.Pos.X = obj.X
	p.Pos.Y = obj.Y
}

// applyFriction reduces speed toward zero by the friction amount.
func applyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// clampSpeed clamps a value to [-max, max].
func clampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// overlap reports whether two players' collision boxes intersect.
func overlap(a, b *components.PlayerState) bool {
	w := config.Player.CollisionWidth
	h := config.Player.CollisionHeight
	return a.Pos.X < b.Pos.X+w && b.Pos.X < a.Pos.X+w &&
		a.Pos.Y < b.Pos.Y+h && b.Pos.Y < a.Pos.Y+h
}
