// Package mover implements the per-tick motion strategies an entity owns.
// An entity swaps its Mover when its state changes; the Mover only knows
// how motion evolves, never which state the entity is in.
package mover

import (
	"math"

	"github.com/amalg/cupid-panda/internal/physics"
	"github.com/amalg/cupid-panda/internal/vmath"
)

// Kind identifies a Mover variant. The set is closed.
type Kind int

const (
	KindPatrol Kind = iota
	KindWander
	KindThrown
	KindLove
)

func (k Kind) String() string {
	switch k {
	case KindPatrol:
		return "patrol"
	case KindWander:
		return "wander"
	case KindThrown:
		return "thrown"
	case KindLove:
		return "love"
	}
	return "unknown"
}

// Mover advances one entity by one tick. dt is in seconds.
type Mover interface {
	Apply(w physics.World, id physics.ActorID, vel *vmath.Vec2, dt float64)
	// Complete reports whether the motion reached its natural end.
	// Movers without an endpoint never complete.
	Complete() bool
	Kind() Kind
}

// moveBy applies delta as a horizontal then a vertical swept move.
func moveBy(w physics.World, id physics.ActorID, delta vmath.Vec2) {
	w.MoveH(id, delta.X)
	w.MoveV(id, delta.Y)
}

// Axis selects which axis a Patrol reflects on.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// minPatrolSpeed is the velocity a component must exceed to count as moving
// toward a bound.
const minPatrolSpeed = 1.0

// Patrol moves by velocity and negates the velocity component on Axis when
// the actor has crossed Min or Max while heading that way.
type Patrol struct {
	Axis Axis
	Min  float64
	Max  float64
}

func (p *Patrol) Apply(w physics.World, id physics.ActorID, vel *vmath.Vec2, dt float64) {
	moveBy(w, id, vel.Scale(dt))

	pos := w.ActorPos(id)
	at, v := pos.X, &vel.X
	if p.Axis == AxisY {
		at, v = pos.Y, &vel.Y
	}
	if *v > minPatrolSpeed && at >= p.Max {
		*v = -*v
	}
	if *v < -minPatrolSpeed && at <= p.Min {
		*v = -*v
	}
}

func (p *Patrol) Complete() bool { return false }

func (p *Patrol) Kind() Kind { return KindPatrol }

// Wander moves by velocity and turns the velocity a quarter turn every
// Interval seconds, which traces a lazy square.
type Wander struct {
	Interval float64
	elapsed  float64
}

// NewWander returns a Wander that turns every interval seconds.
func NewWander(interval float64) *Wander {
	return &Wander{Interval: interval}
}

func (m *Wander) Apply(w physics.World, id physics.ActorID, vel *vmath.Vec2, dt float64) {
	moveBy(w, id, vel.Scale(dt))

	if m.Interval <= 0 {
		return
	}
	m.elapsed += dt
	for m.elapsed >= m.Interval {
		m.elapsed -= m.Interval
		*vel = vel.Rotate90()
	}
}

func (m *Wander) Complete() bool { return false }

func (m *Wander) Kind() Kind { return KindWander }

// FallbackDirection is used when a throw is requested with a zero direction.
var FallbackDirection = vmath.V(1, 0)

// ThrowParams tunes a Thrown mover.
type ThrowParams struct {
	Speed     float64 // initial speed, px/s
	DecayRate float64 // k in decay = 1 - (k*t)^2, 1/s
	StopSpeed float64 // below this the throw snaps to rest
}

// Thrown is a projectile along a fixed unit direction whose speed is
// multiplied each tick by 1 - (k*t)^2, t being the time since the throw.
type Thrown struct {
	dir     vmath.Vec2
	speed   float64
	params  ThrowParams
	elapsed float64
	done    bool
}

// NewThrown normalizes dir, falling back to FallbackDirection when dir is
// zero.
func NewThrown(dir vmath.Vec2, p ThrowParams) *Thrown {
	m := &Thrown{
		dir:    dir.NormalizeOr(FallbackDirection),
		speed:  p.Speed,
		params: p,
	}
	if m.speed <= p.StopSpeed {
		m.speed = 0
		m.done = true
	}
	return m
}

// Apply ignores vel: a thrown entity follows its throw direction only.
func (m *Thrown) Apply(w physics.World, id physics.ActorID, _ *vmath.Vec2, dt float64) {
	if m.done {
		return
	}
	moveBy(w, id, m.dir.Scale(m.speed*dt))

	m.elapsed += dt
	kt := m.params.DecayRate * m.elapsed
	decay := 1 - kt*kt
	if decay <= 0 || math.IsNaN(decay) {
		m.speed = 0
	} else {
		m.speed *= decay
	}
	if m.speed < m.params.StopSpeed || m.speed == 0 {
		m.speed = 0
		m.done = true
	}
}

func (m *Thrown) Complete() bool { return m.done }

func (m *Thrown) Kind() Kind { return KindThrown }

// Direction returns the unit throw direction.
func (m *Thrown) Direction() vmath.Vec2 { return m.dir }

// Speed returns the current speed.
func (m *Thrown) Speed() float64 { return m.speed }

// Love holds its entity in place for Duration seconds.
type Love struct {
	Duration float64
	elapsed  float64
}

// NewLove returns a Love hold lasting duration seconds.
func NewLove(duration float64) *Love {
	return &Love{Duration: duration}
}

func (m *Love) Apply(_ physics.World, _ physics.ActorID, _ *vmath.Vec2, dt float64) {
	m.elapsed += dt
}

func (m *Love) Complete() bool { return m.elapsed >= m.Duration }

func (m *Love) Kind() Kind { return KindLove }
