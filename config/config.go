package config

// PlayerConfig contains all player movement and combat tuning.
// Linear units are world units per second (or per second squared), scaled by
// TickSeconds inside the physics step.
type PlayerConfig struct {
	// Movement
	Accel    float64 // acceleration from a held direction
	Friction float64 // deceleration toward zero each tick
	MaxSpeed float64 // per-axis speed cap outside a dash

	// Dash (attacker lunge)
	DashSpeed         float64 // velocity along facing when a dash fires
	DashMaxSpeed      float64 // per-axis speed cap while a dash is live
	DashCooldownTicks int     // ticks between dashes
	DashDurationTicks int     // ticks the raised speed cap lasts

	// Collision box
	CollisionWidth  float64
	CollisionHeight float64
}

// RoundConfig contains round and match pacing.
// All timers are tick counts.
type RoundConfig struct {
	InterludeTicks int // pre-round countdown/banner duration
	RoundTicks     int // round length before the timeout rule fires
	RoleSwapTicks  int // interval at which attacker/defender roles alternate
	MatchWinRounds int // round wins needed to take the match
}

// Player is the player tuning used by the simulation.
var Player = PlayerConfig{
	Accel:    2700.0,
	Friction: 1800.0,
	MaxSpeed: 360.0,

	DashSpeed:         540.0,
	DashMaxSpeed:      540.0,
	DashCooldownTicks: 45,
	DashDurationTicks: 8,

	CollisionWidth:  16,
	CollisionHeight: 16,
}

// Round is the round pacing used by the simulation.
var Round = RoundConfig{
	InterludeTicks: 120,
	RoundTicks:     60 * TickRate,
	RoleSwapTicks:  10 * TickRate,
	MatchWinRounds: 3,
}
