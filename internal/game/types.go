package game

import (
	"github.com/amalg/cupid-panda/internal/mover"
	"github.com/amalg/cupid-panda/internal/physics"
	"github.com/amalg/cupid-panda/internal/vmath"
)

// Direction represents a movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// PlayerState is the Cupid Panda's current phase.
type PlayerState int

const (
	PlayerNormal   PlayerState = iota
	PlayerGrabbing             // Holding one or more pandas
	PlayerThrowing             // Throw cooldown running
)

func (s PlayerState) String() string {
	switch s {
	case PlayerNormal:
		return "normal"
	case PlayerGrabbing:
		return "grabbing"
	case PlayerThrowing:
		return "throwing"
	}
	return "unknown"
}

// PandaState is a wandering panda's current phase.
type PandaState int

const (
	PandaNormal PandaState = iota
	PandaGrabbed
	PandaThrown
	PandaFoundLove
	PandaDead // Terminal; the panda stays in the collection
)

func (s PandaState) String() string {
	switch s {
	case PandaNormal:
		return "normal"
	case PandaGrabbed:
		return "grabbed"
	case PandaThrown:
		return "thrown"
	case PandaFoundLove:
		return "in love"
	case PandaDead:
		return "dead"
	}
	return "unknown"
}

// StorkState tracks whether a stork still carries its baby panda.
type StorkState int

const (
	StorkLoaded StorkState = iota
	StorkUnloaded
)

func (s StorkState) String() string {
	if s == StorkLoaded {
		return "loaded"
	}
	return "unloaded"
}

// Player is the character the user steers.
type Player struct {
	Actor         physics.ActorID
	Speed         float64
	Facing        vmath.Vec2 // Last non-zero movement direction
	Velocity      vmath.Vec2
	Moving        bool
	State         PlayerState
	ThrowCooldown float64 // Seconds left in PlayerThrowing

	WalkFrame      int
	frameCountdown float64
}

// Panda is a wandering panda. It owns exactly one Mover at a time.
type Panda struct {
	ID       int
	Actor    physics.ActorID
	Velocity vmath.Vec2
	Mover    mover.Mover
	State    PandaState

	SpawnedAt    float64 // Session time in seconds
	LoveCooldown float64 // Seconds before the panda may pair again

	HeartFrame     int
	WalkFrame      int
	LoveFrame      int
	ThrownFrame    int
	frameCountdown float64
}

// Stork carries a baby panda from off-screen to a pairing spot.
type Stork struct {
	ID       int
	Pos      vmath.Vec2
	Dest     vmath.Vec2
	Velocity vmath.Vec2
	State    StorkState

	Frame          int
	frameCountdown float64
}

// GameStatus represents the current game phase.
type GameStatus int

const (
	StatusRunning GameStatus = iota
	StatusOver
)

// OverReason explains why a session ended.
type OverReason int

const (
	ReasonNone      OverReason = iota
	ReasonStarved              // Bamboo ran out
	ReasonCollapsed            // One or no living pandas left
)

func (r OverReason) String() string {
	switch r {
	case ReasonStarved:
		return "starved"
	case ReasonCollapsed:
		return "collapsed"
	}
	return ""
}

// GameState is the live session. Entities are only ever appended: Dead
// pandas and unloaded storks stay as inert records, so slice indices are
// stable handles for the whole session.
// Concurrency protection is handled by the Engine's mutex, not by this struct.
type GameState struct {
	Player *Player
	Pandas []*Panda
	Storks []*Stork
	Bamboo BambooClock
	Score  int
	Time   float64 // Session clock in seconds
	Tick   uint64
	Status GameStatus
	Reason OverReason

	events []Event // Emitted during the last tick
}
