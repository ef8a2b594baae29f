package game

import "github.com/amalg/cupid-panda/internal/vmath"

// EventKind identifies a discrete gameplay event for presentation layers.
type EventKind int

const (
	EventGrabbed   EventKind = iota // Player picked up Panda
	EventThrown                     // Panda left the player's hands
	EventPaired                     // Panda and Other fell in love; a stork is on its way
	EventDelivered                  // A stork dropped Panda
	EventAgedOut                    // Panda became independent and left for good
	EventStarved                    // Bamboo ran out
	EventCollapsed                  // Population dropped to one or none
)

func (k EventKind) String() string {
	switch k {
	case EventGrabbed:
		return "grabbed"
	case EventThrown:
		return "thrown"
	case EventPaired:
		return "paired"
	case EventDelivered:
		return "delivered"
	case EventAgedOut:
		return "aged out"
	case EventStarved:
		return "starved"
	case EventCollapsed:
		return "collapsed"
	}
	return "unknown"
}

// Event is one thing that happened during a tick. Panda and Other are panda
// IDs, -1 when not applicable.
type Event struct {
	Kind  EventKind  `json:"kind"`
	Panda int        `json:"panda"`
	Other int        `json:"other"`
	Pos   vmath.Vec2 `json:"pos"`
}

func (e *Engine) emit(kind EventKind, panda, other int, pos vmath.Vec2) {
	e.State.events = append(e.State.events, Event{Kind: kind, Panda: panda, Other: other, Pos: pos})
}
