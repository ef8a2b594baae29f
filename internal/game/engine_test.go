package game

import (
	"math"
	"testing"
	"time"

	"github.com/amalg/cupid-panda/internal/mover"
	"github.com/amalg/cupid-panda/internal/physics"
	"github.com/amalg/cupid-panda/internal/vmath"
)

const frame = time.Second / 60

// fixedSpawner hands out spawn points in order and a constant velocity
// component, so tests control exactly where pandas are and how they move.
type fixedSpawner struct {
	points []vmath.Vec2
	next   int
	speed  float64
}

func (s *fixedSpawner) SpawnPoint() vmath.Vec2 {
	p := s.points[s.next%len(s.points)]
	s.next++
	return p
}

func (s *fixedSpawner) Range(lo, hi float64) float64 { return s.speed }

func openWorld() physics.World {
	return physics.NewTileWorld(40, 30, 32, nil)
}

// newTestEngine starts a session with one still panda at each point.
func newTestEngine(cfg GameConfig, points ...vmath.Vec2) *Engine {
	cfg.InitialPandas = len(points)
	return NewEngine(cfg, openWorld, &fixedSpawner{points: points})
}

func pandaPos(e *Engine, i int) vmath.Vec2 {
	return e.world.ActorPos(e.State.Pandas[i].Actor)
}

func playerPos(e *Engine) vmath.Vec2 {
	return e.world.ActorPos(e.State.Player.Actor)
}

func countEvents(s Snapshot, kind EventKind) int {
	n := 0
	for _, ev := range s.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewEngine(t *testing.T) {
	config := DefaultConfig()
	engine := NewEngine(config, openWorld, NewRandSpawner(nil, config.SpawnPoints))

	if len(engine.State.Pandas) != config.InitialPandas {
		t.Fatalf("expected %d pandas, got %d", config.InitialPandas, len(engine.State.Pandas))
	}
	if engine.State.Status != StatusRunning {
		t.Fatalf("expected running session, got %d", engine.State.Status)
	}
	if engine.State.Bamboo.Stock != config.InitialBamboo {
		t.Errorf("expected %g bamboo, got %g", config.InitialBamboo, engine.State.Bamboo.Stock)
	}
	if got := playerPos(engine); got != config.PlayerStart {
		t.Errorf("expected player at %v, got %v", config.PlayerStart, got)
	}

	for i, p := range engine.State.Pandas {
		if p.State != PandaNormal {
			t.Errorf("panda %d should start Normal, got %s", i, p.State)
		}
		if p.Mover.Kind() != mover.KindWander {
			t.Errorf("panda %d should start with a wander mover, got %s", i, p.Mover.Kind())
		}
		if p.Velocity.X < 0 || p.Velocity.X >= 50 || p.Velocity.Y < 0 || p.Velocity.Y >= 50 {
			t.Errorf("panda %d velocity %v outside [0,50)", i, p.Velocity)
		}
	}
}

func TestPlayerMovement(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), vmath.V(600, 600), vmath.V(700, 600))
	start := playerPos(engine)

	engine.Step(500*time.Millisecond, FrameInput{Right: true})
	if got := playerPos(engine); math.Abs(got.X-(start.X+50)) > 1e-9 || got.Y != start.Y {
		t.Errorf("after moving right: expected (%g,%g), got %v", start.X+50, start.Y, got)
	}
	if engine.State.Player.Facing != vmath.V(1, 0) {
		t.Errorf("expected facing right, got %v", engine.State.Player.Facing)
	}

	// No keys: the player stays put and keeps facing right.
	before := playerPos(engine)
	engine.Step(500*time.Millisecond, NoInput)
	if playerPos(engine) != before {
		t.Errorf("player moved without input: %v -> %v", before, playerPos(engine))
	}
	if engine.State.Player.Facing != vmath.V(1, 0) {
		t.Errorf("facing should survive idle ticks, got %v", engine.State.Player.Facing)
	}
}

func TestPlayerDiagonalSpeedMatchesAxial(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), vmath.V(600, 600), vmath.V(700, 600))
	start := playerPos(engine)

	engine.Step(500*time.Millisecond, FrameInput{Down: true, Right: true})
	moved := playerPos(engine).Sub(start).Len()
	if math.Abs(moved-50) > 1e-6 {
		t.Errorf("diagonal move covered %g px, want 50", moved)
	}
	if math.Abs(engine.State.Player.Facing.Len()-1) > 1e-9 {
		t.Errorf("facing %v is not unit length", engine.State.Player.Facing)
	}
}

func TestGrabScenario(t *testing.T) {
	config := DefaultConfig()
	engine := newTestEngine(config, config.PlayerStart.Add(vmath.V(5, 5)), vmath.V(600, 600))

	engine.Step(frame, FrameInput{Action: true})

	if engine.State.Player.State != PlayerGrabbing {
		t.Fatalf("expected player Grabbing, got %s", engine.State.Player.State)
	}
	if engine.State.Pandas[0].State != PandaGrabbed {
		t.Fatalf("expected panda Grabbed, got %s", engine.State.Pandas[0].State)
	}
	want := playerPos(engine).Add(config.GrabOffset)
	if got := pandaPos(engine, 0); got != want {
		t.Errorf("grabbed panda at %v, want %v", got, want)
	}
	if engine.State.Pandas[1].State != PandaNormal {
		t.Errorf("far panda should stay Normal, got %s", engine.State.Pandas[1].State)
	}
	if n := countEvents(engine.Snapshot(), EventGrabbed); n != 1 {
		t.Errorf("expected 1 grab event, got %d", n)
	}
}

func TestGrabNeedsPressAndNormalPlayer(t *testing.T) {
	config := DefaultConfig()
	engine := newTestEngine(config, config.PlayerStart, vmath.V(600, 600))

	engine.Step(frame, NoInput)
	if engine.State.Pandas[0].State != PandaNormal {
		t.Fatalf("grab without a press: panda is %s", engine.State.Pandas[0].State)
	}

	engine.State.Player.State = PlayerThrowing
	engine.State.Player.ThrowCooldown = 10
	engine.Step(frame, FrameInput{Action: true})
	if engine.State.Pandas[0].State != PandaNormal {
		t.Errorf("grab during throw cooldown: panda is %s", engine.State.Pandas[0].State)
	}
}

func TestGrabAllPandasInRange(t *testing.T) {
	config := DefaultConfig()
	start := config.PlayerStart
	engine := newTestEngine(config, start.Add(vmath.V(5, 5)), start.Add(vmath.V(-5, -5)), vmath.V(600, 600))

	engine.Step(frame, FrameInput{Action: true})

	for i := 0; i < 2; i++ {
		if engine.State.Pandas[i].State != PandaGrabbed {
			t.Errorf("panda %d in range should be Grabbed, got %s", i, engine.State.Pandas[i].State)
		}
	}
	if engine.State.Score != 0 || len(engine.State.Storks) != 0 {
		t.Errorf("grabbed pandas must not pair")
	}

	engine.Step(frame, FrameInput{Action: true})
	for i := 0; i < 2; i++ {
		if engine.State.Pandas[i].State != PandaThrown {
			t.Errorf("panda %d should be Thrown, got %s", i, engine.State.Pandas[i].State)
		}
	}
}

func TestGrabbedPandaFollowsPlayer(t *testing.T) {
	config := DefaultConfig()
	engine := newTestEngine(config, config.PlayerStart, vmath.V(600, 600))
	engine.State.Pandas[0].Velocity = vmath.V(-40, 40)

	engine.Step(frame, FrameInput{Action: true})
	for i := 0; i < 30; i++ {
		engine.Step(frame, FrameInput{Right: true, Down: true})

		want := playerPos(engine).Add(config.GrabOffset)
		if got := pandaPos(engine, 0); got != want {
			t.Fatalf("tick %d: grabbed panda at %v, want %v", i, got, want)
		}
	}
}

func TestThrowAndLand(t *testing.T) {
	config := DefaultConfig()
	engine := newTestEngine(config, config.PlayerStart, vmath.V(600, 600))

	engine.Step(frame, FrameInput{Action: true})
	held := pandaPos(engine, 0)

	engine.Step(frame, FrameInput{Action: true})
	panda := engine.State.Pandas[0]
	if panda.State != PandaThrown {
		t.Fatalf("expected panda Thrown, got %s", panda.State)
	}
	thrown, ok := panda.Mover.(*mover.Thrown)
	if !ok {
		t.Fatalf("thrown panda has a %s mover", panda.Mover.Kind())
	}
	if thrown.Direction() != vmath.V(1, 0) {
		t.Errorf("throw should follow facing (1,0), got %v", thrown.Direction())
	}
	if engine.State.Player.State != PlayerThrowing {
		t.Errorf("expected player Throwing, got %s", engine.State.Player.State)
	}
	if pandaPos(engine, 0).X <= held.X {
		t.Errorf("panda should fly right: %v -> %v", held, pandaPos(engine, 0))
	}

	for i := 0; i < 120; i++ {
		engine.Step(frame, NoInput)
	}
	if panda.State != PandaNormal {
		t.Errorf("panda should land Normal, got %s", panda.State)
	}
	if panda.Mover.Kind() != mover.KindWander {
		t.Errorf("landed panda should wander, got %s", panda.Mover.Kind())
	}
	if engine.State.Player.State != PlayerNormal {
		t.Errorf("player should be Normal after cooldown, got %s", engine.State.Player.State)
	}
}

func TestAgeOut(t *testing.T) {
	config := DefaultConfig()
	config.IndependenceAge = time.Second
	engine := newTestEngine(config, config.PlayerStart, vmath.V(300, 300), vmath.V(600, 600))

	engine.Step(frame, FrameInput{Action: true})
	far := pandaPos(engine, 2)

	engine.Step(time.Second, NoInput)

	if engine.State.Pandas[0].State != PandaGrabbed {
		t.Errorf("grabbed panda must not age out, got %s", engine.State.Pandas[0].State)
	}
	for i := 1; i < 3; i++ {
		if engine.State.Pandas[i].State != PandaDead {
			t.Errorf("panda %d should be Dead, got %s", i, engine.State.Pandas[i].State)
		}
	}
	if len(engine.State.Pandas) != 3 {
		t.Errorf("dead pandas must stay in the collection, got %d", len(engine.State.Pandas))
	}
	if pandaPos(engine, 2) != far {
		t.Errorf("dead panda moved: %v -> %v", far, pandaPos(engine, 2))
	}

	// One living panda left.
	if engine.State.Status != StatusOver || engine.State.Reason != ReasonCollapsed {
		t.Errorf("expected collapse, got status %d reason %s", engine.State.Status, engine.State.Reason)
	}
}

func TestStarvation(t *testing.T) {
	config := DefaultConfig()
	config.HungerRate = 1000
	engine := newTestEngine(config, vmath.V(300, 300), vmath.V(600, 600))

	engine.Step(time.Second, NoInput)

	snap := engine.Snapshot()
	if snap.Status != StatusOver || snap.Reason != ReasonStarved {
		t.Fatalf("expected starvation, got status %d reason %s", snap.Status, snap.Reason)
	}
	if snap.Bamboo != 0 {
		t.Errorf("bamboo should floor at 0, got %g", snap.Bamboo)
	}
	if countEvents(snap, EventStarved) != 1 {
		t.Errorf("expected a starved event")
	}
}

func TestStepAfterGameOver(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), vmath.V(300, 300))

	engine.Step(frame, NoInput)
	if engine.State.Status != StatusOver {
		t.Fatalf("a lone panda should collapse the session")
	}
	tick := engine.State.Tick

	engine.Step(frame, FrameInput{Right: true})
	if engine.State.Tick != tick {
		t.Errorf("tick advanced after game over")
	}
	if n := len(engine.Snapshot().Events); n != 0 {
		t.Errorf("events repeated after game over: %d", n)
	}

	engine.Reset()
	if engine.State.Status != StatusRunning || engine.State.Tick != 0 {
		t.Errorf("reset should start a fresh session")
	}
}

func TestInvariantViolationPanics(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), vmath.V(300, 300), vmath.V(600, 600))
	engine.State.Pandas[0].State = PandaGrabbed

	defer func() {
		if recover() == nil {
			t.Error("a grabbed panda without a grabbing player should panic")
		}
	}()
	engine.Step(frame, NoInput)
}

func TestMoverStateMismatchPanics(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), vmath.V(300, 300), vmath.V(600, 600))
	engine.State.Pandas[0].State = PandaFoundLove

	defer func() {
		if recover() == nil {
			t.Error("a FoundLove panda with a wander mover should panic")
		}
	}()
	engine.Step(frame, NoInput)
}

func TestPatrolMovementStyle(t *testing.T) {
	config := DefaultConfig()
	config.PandaMovement = MovePatrolY
	engine := newTestEngine(config, vmath.V(300, 300), vmath.V(600, 600))

	for _, p := range engine.State.Pandas {
		if p.Mover.Kind() != mover.KindPatrol {
			t.Errorf("expected patrol mover, got %s", p.Mover.Kind())
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), vmath.V(300, 300), vmath.V(600, 600))
	engine.Step(frame, NoInput)

	snap := engine.Snapshot()
	snap.Pandas[0].State = PandaDead
	snap.Pandas = append(snap.Pandas, PandaView{})

	if engine.State.Pandas[0].State != PandaNormal {
		t.Error("editing a snapshot changed the engine")
	}
	if len(engine.Snapshot().Pandas) != 2 {
		t.Error("snapshot append leaked into the engine")
	}
}

func TestOnTickReceivesSnapshot(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), vmath.V(300, 300), vmath.V(600, 600))

	var got []uint64
	engine.OnTick(func(s Snapshot) {
		got = append(got, s.Tick)
		// Calling back into the engine must not deadlock.
		_ = engine.Snapshot()
	})
	engine.Step(frame, NoInput)
	engine.Step(frame, NoInput)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected ticks [1 2], got %v", got)
	}
}

func TestRunAndStop(t *testing.T) {
	engine := newTestEngine(DefaultConfig(), vmath.V(300, 300), vmath.V(600, 600))

	ticked := make(chan struct{}, 1)
	engine.OnTick(func(Snapshot) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	stopped := make(chan struct{})
	go func() {
		engine.Run(NoInput)
		close(stopped)
	}()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("engine never ticked")
	}
	engine.Stop()
	engine.Stop()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
