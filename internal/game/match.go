package game

import (
	"github.com/amalg/cupid-panda/internal/vmath"
)

// grabPass lets the player pick up Normal pandas within grab range on the
// tick the action key goes down. The player's state is read once before the
// scan, so every eligible panda in range is grabbed, not just the first.
func (e *Engine) grabPass(in Input) {
	player := e.State.Player
	if !in.ActionPressed() || player.State != PlayerNormal {
		return
	}

	playerPos := e.world.ActorPos(player.Actor)
	hold := playerPos.Add(e.Config.GrabOffset)
	for _, p := range e.State.Pandas {
		if p.State != PandaNormal {
			continue
		}
		if !vmath.WithinBox(playerPos, e.world.ActorPos(p.Actor), e.Config.GrabRange) {
			continue
		}
		p.State = PandaGrabbed
		player.State = PlayerGrabbing
		e.world.SetActorPos(p.Actor, hold)
		e.emit(EventGrabbed, p.ID, -1, hold)
	}
}

// pair records one love match found during the scan.
type pair struct {
	a, b int
}

// pairingPass matches Normal pandas within pairing range. Matches are
// collected first and applied after the scan; a panda is in at most one
// match per tick.
func (e *Engine) pairingPass() {
	pandas := e.State.Pandas
	claimed := make(map[int]bool)
	var pairs []pair

	// First pass: find matches
	for i := 0; i < len(pandas); i++ {
		if claimed[i] || !pandas[i].pairable() {
			continue
		}
		pi := e.world.ActorPos(pandas[i].Actor)
		for j := i + 1; j < len(pandas); j++ {
			if claimed[j] || !pandas[j].pairable() {
				continue
			}
			if !vmath.WithinBox(pi, e.world.ActorPos(pandas[j].Actor), e.Config.PairRange) {
				continue
			}
			claimed[i], claimed[j] = true, true
			pairs = append(pairs, pair{a: i, b: j})

			e.spawnStork(pi)
			e.State.Score += e.Config.PairBonus
			e.emit(EventPaired, pandas[i].ID, pandas[j].ID, pi)
			break
		}
	}

	// Second pass: apply
	for _, m := range pairs {
		e.fallInLove(pandas[m.a])
		e.fallInLove(pandas[m.b])
	}
}
