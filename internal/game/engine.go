package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/amalg/cupid-panda/internal/physics"
)

// WorldFactory builds a fresh collision world for a new session.
type WorldFactory func() physics.World

// Engine is the game loop that processes all game logic. All state changes
// happen inside a single tick under mu, one tick at a time.
type Engine struct {
	State  *GameState
	Config GameConfig

	world    physics.World
	newWorld WorldFactory
	spawner  Spawner

	done     chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
	onTick   func(Snapshot) // Callback after each tick with a COPY of state
}

// NewEngine creates an engine and starts its first session.
func NewEngine(config GameConfig, newWorld WorldFactory, spawner Spawner) *Engine {
	e := &Engine{
		Config:   config,
		newWorld: newWorld,
		spawner:  spawner,
		done:     make(chan struct{}),
	}
	e.resetLocked()
	return e
}

// OnTick sets a callback that is invoked after every tick with a snapshot.
// Front ends use it to redraw and to play event sounds.
func (e *Engine) OnTick(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// Reset discards the session and starts a new one from the config.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// resetLocked builds a new session. MUST be called while e.mu is held.
func (e *Engine) resetLocked() {
	e.world = e.newWorld()
	e.State = &GameState{
		Bamboo: NewBambooClock(e.Config),
		Status: StatusRunning,
	}
	e.State.Player = e.newPlayer()
	for i := 0; i < e.Config.InitialPandas; i++ {
		e.spawnPanda(e.spawner.SpawnPoint())
	}
	logf("Session started: %d pandas, %.0f bamboo", len(e.State.Pandas), e.State.Bamboo.Stock)
}

// Run steps the engine at the configured tick rate, sampling in each tick.
// This blocks until Stop() is called.
func (e *Engine) Run(in Input) {
	ticker := time.NewTicker(time.Second / time.Duration(e.Config.TickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-e.done:
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			e.Step(dt, in)
		}
	}
}

// Stop halts the game loop.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.done) })
}

// Step advances the session by dt. It does nothing to the state once the
// game is over, but still reports a snapshot.
// The snapshot is taken while holding the lock and the callback runs after
// the lock is released, since the callback may call back into the engine.
func (e *Engine) Step(dt time.Duration, in Input) {
	e.mu.Lock()

	if e.State.Status == StatusRunning {
		e.tick(dt.Seconds(), in)
	} else {
		e.State.events = e.State.events[:0]
	}
	snap := e.snapshotLocked()
	fn := e.onTick

	e.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// tick runs one frame in a fixed order. Matching reads the positions that
// movement just wrote, and the bamboo clock reads the states matching just
// changed, so the order matters.
func (e *Engine) tick(dt float64, src Input) {
	in := sample(src)
	st := e.State
	st.events = st.events[:0]
	st.Tick++
	st.Time += dt

	e.updatePlayer(dt, in)

	e.ageOut()
	e.movePandas(dt)
	e.moveStorks(dt)

	e.grabPass(in)
	e.pairingPass()

	starved := e.updateBamboo(dt)
	e.checkGameOver(starved)

	e.advanceTimers(dt)
}

// checkGameOver ends the session when the bamboo is gone or at most one
// living panda is left.
func (e *Engine) checkGameOver(starved bool) {
	st := e.State
	pos := e.world.ActorPos(st.Player.Actor)

	switch {
	case starved:
		st.Status = StatusOver
		st.Reason = ReasonStarved
		e.emit(EventStarved, -1, -1, pos)
	case e.aliveCount() <= 1:
		st.Status = StatusOver
		st.Reason = ReasonCollapsed
		e.emit(EventCollapsed, -1, -1, pos)
	default:
		return
	}
	logf("Game over (%s) after %.1fs, score %d", st.Reason, st.Time, st.Score)
}

func (e *Engine) aliveCount() int {
	n := 0
	for _, p := range e.State.Pandas {
		if p.State != PandaDead {
			n++
		}
	}
	return n
}

// advanceTimers counts down the loving cooldowns and steps animations.
func (e *Engine) advanceTimers(dt float64) {
	frame := e.Config.FrameTime.Seconds()

	p := e.State.Player
	if p.Moving {
		p.frameCountdown -= dt
		if p.frameCountdown <= 0 {
			p.frameCountdown = frame
			p.WalkFrame = (p.WalkFrame + 1) % 4
		}
	}

	for _, panda := range e.State.Pandas {
		if panda.State == PandaDead {
			continue
		}
		if panda.LoveCooldown > 0 {
			panda.LoveCooldown -= dt
			if panda.LoveCooldown < 0 {
				panda.LoveCooldown = 0
			}
		}
		panda.frameCountdown -= dt
		if panda.frameCountdown <= 0 {
			panda.frameCountdown = frame
			panda.advanceFrames()
		}
	}

	for _, s := range e.State.Storks {
		s.frameCountdown -= dt
		if s.frameCountdown <= 0 {
			s.frameCountdown = frame
			s.Frame = (s.Frame + 1) % 3
		}
	}
}

func logf(format string, args ...interface{}) {
	log.Printf("[GAME] %s", fmt.Sprintf(format, args...))
}
