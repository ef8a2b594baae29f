package game

import (
	"github.com/amalg/cupid-panda/internal/mover"
	"github.com/amalg/cupid-panda/internal/vmath"
)

// PlayerView is a read-only copy of the player for drawing.
type PlayerView struct {
	Pos       vmath.Vec2  `json:"pos"`
	Size      int         `json:"size"`
	Facing    vmath.Vec2  `json:"facing"`
	Moving    bool        `json:"moving"`
	State     PlayerState `json:"state"`
	WalkFrame int         `json:"walk_frame"`
}

// PandaView is a read-only copy of one panda for drawing.
type PandaView struct {
	ID          int        `json:"id"`
	Pos         vmath.Vec2 `json:"pos"`
	Size        int        `json:"size"`
	State       PandaState `json:"state"`
	Mover       mover.Kind `json:"mover"`
	Age         float64    `json:"age"`
	Cooldown    float64    `json:"cooldown"`
	HeartFrame  int        `json:"heart_frame"`
	WalkFrame   int        `json:"walk_frame"`
	LoveFrame   int        `json:"love_frame"`
	ThrownFrame int        `json:"thrown_frame"`
}

// StorkView is a read-only copy of one stork for drawing.
type StorkView struct {
	ID    int        `json:"id"`
	Pos   vmath.Vec2 `json:"pos"`
	Dest  vmath.Vec2 `json:"dest"`
	State StorkState `json:"state"`
	Frame int        `json:"frame"`
}

// Snapshot is a deep copy of the session after a tick. Events holds only
// what happened during that tick.
type Snapshot struct {
	Tick   uint64      `json:"tick"`
	Time   float64     `json:"time"`
	Player PlayerView  `json:"player"`
	Pandas []PandaView `json:"pandas"`
	Storks []StorkView `json:"storks"`
	Bamboo float64     `json:"bamboo"`
	Score  int         `json:"score"`
	Hungry int         `json:"hungry"`
	Alive  int         `json:"alive"`
	Status GameStatus  `json:"status"`
	Reason OverReason  `json:"reason"`
	Events []Event     `json:"events"`
}

// Snapshot returns a deep copy of the current session.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// snapshotLocked copies the session.
// MUST be called while e.mu is held.
func (e *Engine) snapshotLocked() Snapshot {
	st := e.State
	p := st.Player

	pandas := make([]PandaView, len(st.Pandas))
	for i, pd := range st.Pandas {
		pandas[i] = PandaView{
			ID:          pd.ID,
			Pos:         e.world.ActorPos(pd.Actor),
			Size:        e.Config.PandaSize,
			State:       pd.State,
			Mover:       pd.Mover.Kind(),
			Age:         st.Time - pd.SpawnedAt,
			Cooldown:    pd.LoveCooldown,
			HeartFrame:  pd.HeartFrame,
			WalkFrame:   pd.WalkFrame,
			LoveFrame:   pd.LoveFrame,
			ThrownFrame: pd.ThrownFrame,
		}
	}

	storks := make([]StorkView, len(st.Storks))
	for i, s := range st.Storks {
		storks[i] = StorkView{ID: s.ID, Pos: s.Pos, Dest: s.Dest, State: s.State, Frame: s.Frame}
	}

	events := make([]Event, len(st.events))
	copy(events, st.events)

	return Snapshot{
		Tick: st.Tick,
		Time: st.Time,
		Player: PlayerView{
			Pos:       e.world.ActorPos(p.Actor),
			Size:      e.Config.PlayerSize,
			Facing:    p.Facing,
			Moving:    p.Moving,
			State:     p.State,
			WalkFrame: p.WalkFrame,
		},
		Pandas: pandas,
		Storks: storks,
		Bamboo: st.Bamboo.Stock,
		Score:  st.Score,
		Hungry: e.hungryCount(),
		Alive:  e.aliveCount(),
		Status: st.Status,
		Reason: st.Reason,
		Events: events,
	}
}
