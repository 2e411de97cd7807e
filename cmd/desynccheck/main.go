// Command desynccheck runs two independent tagduel sessions over a simulated
// jittery link and cross-checks their per-tick checksums, the same comparison
// the real network collaborator performs between peers. A mismatch means the
// deterministic core diverged; a clean run is the determinism smoke test.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata"

	"github.com/arcadewire/tagduel/components"
	"github.com/arcadewire/tagduel/config"
	"github.com/arcadewire/tagduel/leveldata"
	"github.com/arcadewire/tagduel/rollback"
	"github.com/arcadewire/tagduel/sim"
)

// MatchRecord is the stored result of one desync check run.
type MatchRecord struct {
	ID         string    `json:"id"`
	Seed       int64     `json:"seed"`
	Ticks      uint64    `json:"ticks"`
	Winner     int       `json:"winner"` // -1 if the match didn't conclude
	Wins       []int     `json:"wins"`
	LinkLag    int       `json:"linkLag"`
	FinishedAt time.Time `json:"finishedAt"`
}

type wireMsg struct {
	deliverAt uint64
	applyTick uint64
	input     components.Input
}

func main() {
	ticks := flag.Uint64("ticks", 3600, "number of ticks to simulate")
	seed := flag.Int64("seed", 1, "seed for the scripted input streams")
	lag := flag.Int("lag", 3, "one-way link delay in ticks")
	arenaPath := flag.String("arena", "", "TMX arena file (empty = built-in arena)")
	record := flag.Bool("record", false, "persist the run result")
	flag.Parse()

	if *lag+config.InputDelay > config.MaxPrediction {
		log.Fatalf("link lag %d exceeds the prediction window", *lag)
	}

	arena := loadArena(*arenaPath)

	sessA := newSession(arena, 0)
	sessB := newSession(arena, 1)

	winner := components.NoWinner
	sessA.SetMatchEndHandler(func(w int) {
		winner = w
		log.Printf("match decided: player %d wins", w)
	})

	// Each player's input stream is scripted from its own seeded source, so
	// both sessions observe the identical stream for a given player.
	scripts := [config.NumPlayers]*rand.Rand{
		rand.New(rand.NewSource(*seed)),
		rand.New(rand.NewSource(*seed + 1)),
	}
	var held [config.NumPlayers]components.Input

	var aToB, bToA []wireMsg

	for t := uint64(1); t <= *ticks; t++ {
		for p := range held {
			// Re-roll the held buttons every 8 ticks for a drifting but
			// deterministic play pattern.
			if t%8 == 1 {
				held[p] = components.Input{Buttons: components.Buttons(scripts[p].Intn(32))}
			}
		}

		applyA := sessA.AddLocalInput(held[0])
		aToB = append(aToB, wireMsg{deliverAt: t + uint64(*lag), applyTick: applyA, input: held[0]})

		applyB := sessB.AddLocalInput(held[1])
		bToA = append(bToA, wireMsg{deliverAt: t + uint64(*lag), applyTick: applyB, input: held[1]})

		aToB = deliver(sessB, aToB, t)
		bToA = deliver(sessA, bToA, t)

		if _, err := sessA.Advance(); err != nil {
			log.Fatalf("session A tick %d: %v", t, err)
		}
		if _, err := sessB.Advance(); err != nil {
			log.Fatalf("session B tick %d: %v", t, err)
		}

		if t%config.CheckDistance == 0 {
			compareChecksums(sessA, sessB)
		}
	}

	wins := sessA.Sim().State().Round.Wins
	log.Printf("clean run: %d ticks, score %v, no desync", *ticks, wins)

	if *record {
		saveRecord(MatchRecord{
			ID:         uuid.NewString(),
			Seed:       *seed,
			Ticks:      *ticks,
			Winner:     winner,
			Wins:       wins[:],
			LinkLag:    *lag,
			FinishedAt: time.Now(),
		})
	}
}

func loadArena(path string) *leveldata.ArenaData {
	if path == "" {
		return leveldata.DefaultArena()
	}
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	arena, err := leveldata.LoadArena(os.DirFS(dir), file)
	if err != nil {
		log.Fatalf("load arena: %v", err)
	}
	return arena
}

func newSession(arena *leveldata.ArenaData, localPlayer int) *rollback.Session {
	s, err := sim.New(arena)
	if err != nil {
		log.Fatalf("create simulation: %v", err)
	}
	sess, err := rollback.NewSession(s, localPlayer)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}
	return sess
}

// deliver hands every queued message due at or before tick to the session
// and returns the remaining queue.
func deliver(sess *rollback.Session, queue []wireMsg, tick uint64) []wireMsg {
	kept := queue[:0]
	for _, m := range queue {
		if m.deliverAt > tick {
			kept = append(kept, m)
			continue
		}
		if err := sess.AddRemoteInput(m.applyTick, m.input); err != nil {
			log.Fatalf("deliver input for tick %d: %v", m.applyTick, err)
		}
	}
	return kept
}

// compareChecksums cross-checks the newest tick both sessions have fully
// confirmed. Confirmed ticks can no longer change on either side, so any
// mismatch is a genuine desync.
func compareChecksums(a, b *rollback.Session) {
	tick := a.ConfirmedTick()
	if bt := b.ConfirmedTick(); bt < tick {
		tick = bt
	}
	if tick == 0 {
		return
	}

	sumA, okA := a.ChecksumAt(tick)
	sumB, okB := b.ChecksumAt(tick)
	if !okA || !okB {
		// Tick already left one session's history window; nothing to compare.
		return
	}
	if sumA != sumB {
		log.Fatalf("desync at tick %d: %016x vs %016x", tick, sumA, sumB)
	}
}

func saveRecord(rec MatchRecord) {
	m, err := gdata.Open(gdata.Config{AppName: "tagduel"})
	if err != nil {
		log.Printf("Warning: could not open result storage: %v", err)
		return
	}

	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("Warning: could not serialize run record: %v", err)
		return
	}
	if err := m.SaveItem("lastrun", data); err != nil {
		log.Printf("Warning: could not save run record: %v", err)
		return
	}
	log.Printf("run record %s saved", rec.ID)
}
