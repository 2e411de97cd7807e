package sim

import (
	"testing"

	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
	"github.com/arcadewire/tagduel/leveldata"
)

var neutral [config.NumPlayers]components.Input

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(leveldata.DefaultArena())
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return s
}

// withRoundConfig swaps the round pacing for one test.
func withRoundConfig(t *testing.T, rc config.RoundConfig) {
	t.Helper()
	old := config.Round
	config.Round = rc
	t.Cleanup(func() { config.Round = old })
}

// advanceUntil runs neutral ticks until the given phase executes.
func advanceUntil(t *testing.T, s *Simulation, want components.PhaseID, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		s.Advance(neutral)
		if s.LastPhase() == want {
			return
		}
	}
	t.Fatalf("phase %v not reached within %d ticks (last was %v)", want, limit, s.LastPhase())
}

func TestPhaseFlowThroughFirstRound(t *testing.T) {
	s := newTestSim(t)

	s.Advance(neutral)
	if got := s.LastPhase(); got != components.PhaseInterludeStart {
		t.Fatalf("tick 1: ran %v, want InterludeStart", got)
	}
	if got := s.State().Round.Interlude; got != config.Round.InterludeTicks {
		t.Fatalf("countdown not armed: got %d want %d", got, config.Round.InterludeTicks)
	}

	// The countdown runs for exactly InterludeTicks ticks.
	for i := 0; i < config.Round.InterludeTicks; i++ {
		s.Advance(neutral)
		if got := s.LastPhase(); got != components.PhaseInterlude {
			t.Fatalf("countdown tick %d: ran %v, want Interlude", i, got)
		}
	}
	if got := s.State().Round.Interlude; got != 0 {
		t.Fatalf("countdown not elapsed: %d ticks remain", got)
	}

	s.Advance(neutral)
	if got := s.LastPhase(); got != components.PhaseInterludeEnd {
		t.Fatalf("ran %v, want InterludeEnd", got)
	}

	s.Advance(neutral)
	if got := s.LastPhase(); got != components.PhaseRoundStart {
		t.Fatalf("ran %v, want RoundStart", got)
	}
	if got := s.State().Round.RoundTimer; got != config.Round.RoundTicks {
		t.Fatalf("round timer not armed: got %d want %d", got, config.Round.RoundTicks)
	}
	if len(s.State().Walls) == 0 {
		t.Fatal("world geometry not spawned at round start")
	}

	arena := leveldata.DefaultArena()
	for i, p := range s.State().Players {
		if !p.Alive {
			t.Fatalf("player %d not alive after spawn", i)
		}
		if p.Pos.X != arena.Spawns[i].X || p.Pos.Y != arena.Spawns[i].Y {
			t.Fatalf("player %d spawned at (%v,%v), want spawn point (%v,%v)",
				i, p.Pos.X, p.Pos.Y, arena.Spawns[i].X, arena.Spawns[i].Y)
		}
	}
	if s.State().Players[0].Role != components.RoleAttacker {
		t.Fatal("player 0 should open round 0 as attacker")
	}
	if s.State().Players[1].Role != components.RoleDefender {
		t.Fatal("player 1 should open round 0 as defender")
	}

	s.Advance(neutral)
	if got := s.LastPhase(); got != components.PhaseRound {
		t.Fatalf("ran %v, want Round", got)
	}
}

func TestDeterminismTwinRun(t *testing.T) {
	s1 := newTestSim(t)
	s2 := newTestSim(t)

	script := func(tick uint64) [config.NumPlayers]components.Input {
		return [config.NumPlayers]components.Input{
			{Buttons: components.Buttons(tick % 32)},
			{Buttons: components.Buttons((tick / 3) % 32)},
		}
	}

	for tick := uint64(1); tick <= 800; tick++ {
		in := script(tick)
		c1 := s1.Advance(in)
		c2 := s2.Advance(in)
		if c1 != c2 {
			t.Fatalf("checksum mismatch at tick %d: %016x vs %016x", tick, c1, c2)
		}
	}

	b1, err := s1.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	b2, err := s2.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if string(b1) != string(b2) {
		t.Fatal("twin runs ended in different states despite equal checksums")
	}
}

func TestChecksumSeesSingleFieldDivergence(t *testing.T) {
	s1 := newTestSim(t)
	s2 := newTestSim(t)
	s1.Advance(neutral)
	s2.Advance(neutral)

	s2.state.Players[0].Vel.X = 0.0000001
	if s1.fold() == s2.fold() {
		t.Fatal("checksum did not change for a one-field divergence")
	}
}

// The elimination scenario: the attacker chases down the defender, the
// evaluator declares the attacker round winner on the contact tick, the score
// is recorded and the phase moves to RoundEnd on the following tick.
func TestAttackerEliminationWinsRound(t *testing.T) {
	s := newTestSim(t)
	advanceUntil(t, s, components.PhaseRoundStart, config.Round.InterludeTicks+8)

	chase := [config.NumPlayers]components.Input{
		{Buttons: components.ButtonRight | components.ButtonDash},
		{},
	}

	var winnerTick uint64
	for i := 0; i < 2000; i++ {
		s.Advance(chase)
		if s.State().Round.RoundWinner != components.NoWinner {
			winnerTick = s.Tick()
			break
		}
	}
	if winnerTick == 0 {
		t.Fatal("attacker never caught the defender")
	}

	if got := s.State().Round.RoundWinner; got != 0 {
		t.Fatalf("round winner = %d, want player 0", got)
	}
	if s.State().Players[1].Alive {
		t.Fatal("defender still alive after contact elimination")
	}
	if got := s.State().Round.Wins[0]; got != 0 {
		t.Fatalf("score recorded early: wins[0] = %d before RoundEnd ran", got)
	}
	if got := s.LastPhase(); got != components.PhaseRound {
		t.Fatalf("deciding tick ran %v, want Round", got)
	}

	s.Advance(neutral)
	if got := s.LastPhase(); got != components.PhaseRoundEnd {
		t.Fatalf("tick %d ran %v, want RoundEnd", winnerTick+1, got)
	}
	if got := s.State().Round.Wins[0]; got != 1 {
		t.Fatalf("wins[0] = %d after RoundEnd, want 1", got)
	}
	if got := s.State().Round.RoundNumber; got != 1 {
		t.Fatalf("round number = %d after cleanup, want 1", got)
	}
	if len(s.State().Walls) != 0 {
		t.Fatal("world geometry survived round cleanup")
	}
	for i, p := range s.State().Players {
		if p.Alive {
			t.Fatalf("player %d survived round cleanup", i)
		}
	}

	s.Advance(neutral)
	if got := s.LastPhase(); got != components.PhaseInterludeStart {
		t.Fatalf("ran %v after RoundEnd, want InterludeStart", got)
	}
}

func TestTimeoutHandsRoundToDefender(t *testing.T) {
	withRoundConfig(t, config.RoundConfig{
		InterludeTicks: 5,
		RoundTicks:     30,
		RoleSwapTicks:  1000,
		MatchWinRounds: 3,
	})

	s := newTestSim(t)
	advanceUntil(t, s, components.PhaseRoundStart, 20)

	for i := 0; i < config.Round.RoundTicks; i++ {
		s.Advance(neutral)
	}
	if got := s.State().Round.RoundWinner; got != 1 {
		t.Fatalf("timeout winner = %d, want defender (player 1)", got)
	}
}

func TestMatchWinnerRecordedAtRoundEnd(t *testing.T) {
	withRoundConfig(t, config.RoundConfig{
		InterludeTicks: 5,
		RoundTicks:     30,
		RoleSwapTicks:  1000,
		MatchWinRounds: 1,
	})

	s := newTestSim(t)
	var endTick uint64
	for i := 0; i < 200; i++ {
		s.Advance(neutral)
		if s.LastPhase() == components.PhaseRoundEnd {
			endTick = s.Tick()
			break
		}
	}
	if endTick == 0 {
		t.Fatal("round never ended")
	}

	winner, ok := s.MatchWinner()
	if !ok {
		t.Fatal("match winner not recorded")
	}
	if winner != 1 {
		t.Fatalf("match winner = %d, want 1", winner)
	}
	if got := s.State().Round.MatchEndTick; got != endTick {
		t.Fatalf("match end tick = %d, want %d", got, endTick)
	}
}

func TestRoleSwapAlternatesAttacker(t *testing.T) {
	withRoundConfig(t, config.RoundConfig{
		InterludeTicks: 5,
		RoundTicks:     600,
		RoleSwapTicks:  20,
		MatchWinRounds: 3,
	})

	s := newTestSim(t)
	advanceUntil(t, s, components.PhaseRoundStart, 20)

	// First swap window: player 0 attacks.
	for i := 0; i < config.Round.RoleSwapTicks; i++ {
		s.Advance(neutral)
		if got := s.State().Players[0].Role; got != components.RoleAttacker {
			t.Fatalf("tick %d of first window: player 0 is %v", i, got)
		}
	}

	// Second window: roles swapped.
	s.Advance(neutral)
	if got := s.State().Players[0].Role; got != components.RoleDefender {
		t.Fatalf("player 0 still %v after the swap window", got)
	}
	if got := s.State().Players[1].Role; got != components.RoleAttacker {
		t.Fatalf("player 1 is %v after the swap window, want attacker", got)
	}
}

// evaluateProgress must decide the same outcome for any permutation of the
// player set: swapping the two players' states must swap the declared winner
// and nothing else.
func TestEvaluatorOrderIndependence(t *testing.T) {
	run := func(attackerIdx int) int {
		s := newTestSim(t)
		advanceUntil(t, s, components.PhaseRound, config.Round.InterludeTicks+10)

		defenderIdx := (attackerIdx + 1) % config.NumPlayers
		s.state.Players[attackerIdx].Role = components.RoleAttacker
		s.state.Players[attackerIdx].Pos = components.Vector{X: 100, Y: 100}
		s.state.Players[defenderIdx].Role = components.RoleDefender
		s.state.Players[defenderIdx].Pos = components.Vector{X: 105, Y: 100}

		s.evaluateProgress()
		return s.state.Round.RoundWinner
	}

	if got := run(0); got != 0 {
		t.Fatalf("attacker as player 0: winner = %d, want 0", got)
	}
	if got := run(1); got != 1 {
		t.Fatalf("attacker as player 1: winner = %d, want 1", got)
	}
}

// Exactly one run criterion must hold for every reachable combination of
// stored phase and round data.
func TestPhaseCriteriaExhaustive(t *testing.T) {
	storedPhases := []components.PhaseID{
		components.PhaseInterludeStart,
		components.PhaseInterlude,
		components.PhaseRoundStart,
		components.PhaseRound,
	}
	interludes := []int{0, 1, 60}
	winners := []int{components.NoWinner, components.Draw, 0, 1}

	for _, ph := range storedPhases {
		for _, interlude := range interludes {
			for _, winner := range winners {
				rd := components.RoundData{Interlude: interlude, RoundWinner: winner}
				matched := 0
				for _, c := range phaseCriteria {
					if c.pred(ph, &rd) {
						matched++
					}
				}
				if matched != 1 {
					t.Errorf("phase %v, interlude %d, winner %d: %d criteria match, want 1",
						ph, interlude, winner, matched)
				}
			}
		}
	}
}

func TestActivePhasePanicsOnCorruptPhase(t *testing.T) {
	s := newTestSim(t)
	s.state.Phase = components.PhaseID(99)

	defer func() {
		if recover() == nil {
			t.Fatal("activePhase did not panic on an unreachable stored phase")
		}
	}()
	s.Advance(neutral)
}
