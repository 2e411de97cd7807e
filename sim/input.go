package sim

import (
	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
)

// invSqrt2 normalizes diagonal movement so it is no faster than cardinal.
const invSqrt2 = 0.7071067811865476

// applyInputs maps each player's input record onto that player's own entity:
// held directions accumulate acceleration for the physics step, and the dash
// button fires the attacker's lunge. No cross-player effects happen here;
// players are visited in fixed index order regardless.
func (s *Simulation) applyInputs(inputs [config.NumPlayers]components.Input) {
	for i := range s.state.Players {
		p := &s.state.Players[i]
		s.forces[i] = components.Vector{}

		if p.DashCooldown > 0 {
			p.DashCooldown--
		}
		if !p.Alive {
			continue
		}

		in := inputs[i]
		ax, ay := in.AxisX(), in.AxisY()
		if ax != 0 && ay != 0 {
			ax *= invSqrt2
			ay *= invSqrt2
		}
		if ax != 0 || ay != 0 {
			p.Facing = components.Vector{X: ax, Y: ay}
		}
		s.forces[i] = components.Vector{
			X: ax * config.Player.Accel,
			Y: ay * config.Player.Accel,
		}

		// Dash: attacker-only lunge along the current facing. Holding the
		// button re-fires on cooldown expiry; no edge state to replicate.
		if in.Pressed(components.ButtonDash) && p.Role == components.RoleAttacker && p.DashCooldown == 0 {
			p.Vel = components.Vector{
				X: p.Facing.X * config.Player.DashSpeed,
				Y: p.Facing.Y * config.Player.DashSpeed,
			}
			p.DashCooldown = config.Player.DashCooldownTicks
		}
	}
}

// dashActive reports whether the raised dash speed cap applies to p this tick.
func dashActive(p *components.PlayerState) bool {
	return p.DashCooldown > config.Player.DashCooldownTicks-config.Player.DashDurationTicks
}
