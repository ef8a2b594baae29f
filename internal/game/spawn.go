package game

import (
	"math/rand"

	"github.com/amalg/cupid-panda/internal/mover"
	"github.com/amalg/cupid-panda/internal/vmath"
)

// Spawner supplies the randomness the session needs: where new pandas
// appear and the random components of wander velocities.
type Spawner interface {
	SpawnPoint() vmath.Vec2
	Range(lo, hi float64) float64
}

// RandSpawner draws from a fixed list of spawn points with a math/rand source.
type RandSpawner struct {
	rng    *rand.Rand
	points []vmath.Vec2
}

// NewRandSpawner returns a Spawner over points. A nil rng uses a fixed seed.
func NewRandSpawner(rng *rand.Rand, points []vmath.Vec2) *RandSpawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &RandSpawner{rng: rng, points: points}
}

// SpawnPoint picks one of the configured points at random.
func (s *RandSpawner) SpawnPoint() vmath.Vec2 {
	if len(s.points) == 0 {
		return vmath.Vec2{}
	}
	return s.points[s.rng.Intn(len(s.points))]
}

// Range returns a float in [lo, hi).
func (s *RandSpawner) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// spawnPanda creates a Normal panda at pos with a fresh wander velocity.
func (e *Engine) spawnPanda(pos vmath.Vec2) *Panda {
	p := &Panda{
		ID:             len(e.State.Pandas),
		Actor:          e.world.AddActor(pos, e.Config.PandaSize, e.Config.PandaSize),
		Velocity:       e.randomVelocity(),
		Mover:          e.normalMover(),
		State:          PandaNormal,
		SpawnedAt:      e.State.Time,
		frameCountdown: e.Config.FrameTime.Seconds() / 2,
	}
	e.State.Pandas = append(e.State.Pandas, p)
	return p
}

// randomVelocity draws each component independently from the wander range.
func (e *Engine) randomVelocity() vmath.Vec2 {
	lo, hi := e.Config.WanderSpeedMin, e.Config.WanderSpeedMax
	return vmath.V(e.spawner.Range(lo, hi), e.spawner.Range(lo, hi))
}

// normalMover returns the Mover a Normal panda uses under the configured
// movement style.
func (e *Engine) normalMover() mover.Mover {
	switch e.Config.PandaMovement {
	case MovePatrolX:
		return &mover.Patrol{Axis: mover.AxisX, Min: e.Config.PatrolMin, Max: e.Config.PatrolMax}
	case MovePatrolY:
		return &mover.Patrol{Axis: mover.AxisY, Min: e.Config.PatrolMin, Max: e.Config.PatrolMax}
	default:
		return mover.NewWander(e.Config.WanderTurnInterval.Seconds())
	}
}
