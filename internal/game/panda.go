package game

import (
	"fmt"

	"github.com/amalg/cupid-panda/internal/mover"
)

// ageOut retires every panda older than the independence age, except one
// the player is holding.
func (e *Engine) ageOut() {
	lifetime := e.Config.IndependenceAge.Seconds()
	for _, p := range e.State.Pandas {
		if p.State == PandaDead || p.State == PandaGrabbed {
			continue
		}
		if e.State.Time-p.SpawnedAt <= lifetime {
			continue
		}
		p.State = PandaDead
		e.emit(EventAgedOut, p.ID, -1, e.world.ActorPos(p.Actor))
	}
}

// movePandas runs each live panda's Mover. Grabbed pandas skip their Mover
// and are pinned to the player instead.
func (e *Engine) movePandas(dt float64) {
	for _, p := range e.State.Pandas {
		switch p.State {
		case PandaDead:
			continue
		case PandaGrabbed:
			if e.State.Player.State != PlayerGrabbing {
				panic(fmt.Sprintf("game: panda %d grabbed while player is %s", p.ID, e.State.Player.State))
			}
			e.world.SetActorPos(p.Actor, e.holdPosition())
		default:
			p.Mover.Apply(e.world, p.Actor, &p.Velocity, dt)
			if p.Mover.Complete() {
				e.settle(p)
			}
		}
		p.mustBeConsistent()
	}
}

// settle returns a panda whose throw or love hold finished to wandering.
func (e *Engine) settle(p *Panda) {
	switch p.State {
	case PandaThrown:
	case PandaFoundLove:
		p.LoveCooldown = e.Config.LoveCooldown.Seconds()
	default:
		return
	}
	p.State = PandaNormal
	p.Mover = e.normalMover()
	p.Velocity = e.randomVelocity()
}

// fallInLove switches a paired panda to the Love hold.
func (e *Engine) fallInLove(p *Panda) {
	p.State = PandaFoundLove
	p.Mover = mover.NewLove(e.Config.LoveDuration.Seconds())
	p.LoveFrame = 0
}

// pairable reports whether p may take part in the pairing pass.
func (p *Panda) pairable() bool {
	return p.State == PandaNormal && p.LoveCooldown <= 0
}

// mustBeConsistent panics when the panda's state and Mover disagree.
func (p *Panda) mustBeConsistent() {
	if p.Mover == nil {
		panic(fmt.Sprintf("game: panda %d has no mover", p.ID))
	}
	k := p.Mover.Kind()
	ok := true
	switch p.State {
	case PandaNormal, PandaGrabbed:
		ok = k == mover.KindWander || k == mover.KindPatrol
	case PandaThrown:
		ok = k == mover.KindThrown
	case PandaFoundLove:
		ok = k == mover.KindLove
	}
	if !ok {
		panic(fmt.Sprintf("game: panda %d is %s with a %s mover", p.ID, p.State, k))
	}
}

// advanceFrames steps every animation counter by one frame.
func (p *Panda) advanceFrames() {
	p.HeartFrame = (p.HeartFrame + 1) % 4
	p.WalkFrame = (p.WalkFrame + 1) % 4
	p.LoveFrame = (p.LoveFrame + 1) % 9
	p.ThrownFrame = (p.ThrownFrame + 1) % 2
}
