package game

import (
	"github.com/amalg/cupid-panda/internal/mover"
	"github.com/amalg/cupid-panda/internal/vmath"
)

// newPlayer places the player actor at the configured start, facing right.
func (e *Engine) newPlayer() *Player {
	size := e.Config.PlayerSize
	return &Player{
		Actor:  e.world.AddActor(e.Config.PlayerStart, size, size),
		Speed:  e.Config.PlayerSpeed,
		Facing: vmath.V(1, 0),
		State:  PlayerNormal,
	}
}

// updatePlayer resolves this tick's input: throw cooldown, movement through
// the world, then the throw itself.
func (e *Engine) updatePlayer(dt float64, in Input) {
	p := e.State.Player

	if p.State == PlayerThrowing {
		p.ThrowCooldown -= dt
		if p.ThrowCooldown <= 0 {
			p.ThrowCooldown = 0
			p.State = PlayerNormal
		}
	}

	dir := inputDirection(in)
	p.Moving = !dir.IsZero()
	p.Velocity = dir.Scale(p.Speed)
	if p.Moving {
		p.Facing = dir
		e.world.MoveH(p.Actor, p.Velocity.X*dt)
		e.world.MoveV(p.Actor, p.Velocity.Y*dt)
	}

	if p.State == PlayerGrabbing && in.ActionPressed() {
		e.throw()
	}
}

// throw launches every grabbed panda along the player's facing and starts
// the throw cooldown.
func (e *Engine) throw() {
	p := e.State.Player
	p.State = PlayerThrowing
	p.ThrowCooldown = e.Config.ThrowCooldown.Seconds()

	params := mover.ThrowParams{
		Speed:     e.Config.ThrowSpeed,
		DecayRate: e.Config.ThrowDecayRate,
		StopSpeed: e.Config.ThrowStopSpeed,
	}
	for _, panda := range e.State.Pandas {
		if panda.State != PandaGrabbed {
			continue
		}
		panda.State = PandaThrown
		panda.Mover = mover.NewThrown(p.Facing, params)
		e.emit(EventThrown, panda.ID, -1, e.world.ActorPos(panda.Actor))
	}
}

// holdPosition is where a grabbed panda sits relative to the player.
func (e *Engine) holdPosition() vmath.Vec2 {
	return e.world.ActorPos(e.State.Player.Actor).Add(e.Config.GrabOffset)
}
