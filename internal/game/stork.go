package game

import (
	"github.com/amalg/cupid-panda/internal/vmath"
)

// newStork starts a stork just off whichever horizontal screen edge is
// closer to dest, flying level toward it.
func newStork(id int, dest vmath.Vec2, cfg GameConfig) *Stork {
	s := &Stork{
		ID:    id,
		Pos:   vmath.V(0, dest.Y),
		Dest:  dest,
		State: StorkLoaded,
	}
	if dest.X < cfg.ScreenWidth*0.5 {
		s.Pos.X = -cfg.StorkEdgeMargin
		s.Velocity.X = cfg.StorkSpeed
	} else {
		s.Pos.X = cfg.ScreenWidth + cfg.StorkEdgeMargin
		s.Velocity.X = -cfg.StorkSpeed
	}
	return s
}

// advance moves the stork and reports whether it unloaded this tick.
// An unloaded stork keeps flying out of the scene but never unloads again.
func (s *Stork) advance(dt, arrivalDist float64) bool {
	s.Pos = s.Pos.Add(s.Velocity.Scale(dt))

	if s.State != StorkLoaded {
		return false
	}
	if s.Pos.Sub(s.Dest).LenSq() >= arrivalDist*arrivalDist {
		return false
	}
	s.State = StorkUnloaded
	s.Frame = 0
	s.frameCountdown = 0
	return true
}

// spawnStork sends a stork toward dest.
func (e *Engine) spawnStork(dest vmath.Vec2) *Stork {
	s := newStork(len(e.State.Storks), dest, e.Config)
	e.State.Storks = append(e.State.Storks, s)
	return s
}

// moveStorks advances every stork and drops one new panda for each stork
// that reached its destination.
func (e *Engine) moveStorks(dt float64) {
	// Storks spawned later in this tick are not in this slice.
	for _, s := range e.State.Storks {
		if !s.advance(dt, e.Config.StorkArrivalDist) {
			continue
		}
		p := e.spawnPanda(s.Pos)
		e.emit(EventDelivered, p.ID, -1, s.Pos)
		logf("Stork %d delivered panda %d at (%.0f,%.0f)", s.ID, p.ID, s.Pos.X, s.Pos.Y)
	}
}
