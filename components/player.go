package components

// Role distinguishes the chaser from the runner for the current stretch of a
// round. Contact is resolved by role: an attacker touching the defender
// eliminates the defender, never the reverse.
type Role uint8

const (
	RoleDefender Role = iota
	RoleAttacker
)

func (r Role) String() string {
	if r == RoleAttacker {
		return "attacker"
	}
	return "defender"
}

// PlayerState is the full replicated state of one player entity. Players are
// materialized at round start and reset at round cleanup; between rounds the
// zero value (Alive=false) stands in.
//
// Every field here is read by at least one pipeline system and therefore must
// survive snapshot/restore bit-exactly.
type PlayerState struct {
	Index int // fixed player index, 0..NumPlayers-1

	Pos Vector
	// PrevPos is the position before this tick's integration. The
	// presentation layer interpolates between PrevPos and Pos for sub-tick
	// rendering; the deterministic pipeline only ever writes it.
	PrevPos Vector
	Vel     Vector

	// Facing is the last non-zero move direction and sets the dash heading.
	Facing Vector

	Role  Role
	Alive bool

	// DashCooldown counts down to the next allowed dash. While it is in the
	// top DashDurationTicks of its range the dash speed cap applies.
	DashCooldown int
}
