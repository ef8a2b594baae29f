package ui

import (
	"sync"
	"time"

	"github.com/amalg/cupid-panda/internal/game"
)

// DefaultHoldWindow is how long a direction key counts as held after its
// last press. Terminals report key repeats, not releases.
const DefaultHoldWindow = 180 * time.Millisecond

// KeyLatch turns terminal key presses into a game.Input. It is written by
// the TUI goroutine and read by the engine goroutine.
type KeyLatch struct {
	mu      sync.Mutex
	window  time.Duration
	now     func() time.Time
	pressed [4]time.Time // indexed by game.Direction
	action  bool
}

// NewKeyLatch creates a latch with the given hold window.
func NewKeyLatch(window time.Duration) *KeyLatch {
	return &KeyLatch{window: window, now: time.Now}
}

// Press marks a direction as held. The opposite direction is released.
func (k *KeyLatch) Press(d game.Direction) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed[d] = k.now()
	k.pressed[opposite(d)] = time.Time{}
}

// PressAction latches the grab/throw key until the next tick reads it.
func (k *KeyLatch) PressAction() {
	k.mu.Lock()
	k.action = true
	k.mu.Unlock()
}

// Release forgets all held directions.
func (k *KeyLatch) Release() {
	k.mu.Lock()
	k.pressed = [4]time.Time{}
	k.mu.Unlock()
}

func (k *KeyLatch) DirectionHeld(d game.Direction) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	t := k.pressed[d]
	return !t.IsZero() && k.now().Sub(t) <= k.window
}

// ActionPressed reports and clears the latched action.
func (k *KeyLatch) ActionPressed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	a := k.action
	k.action = false
	return a
}

func opposite(d game.Direction) game.Direction {
	switch d {
	case game.DirUp:
		return game.DirDown
	case game.DirDown:
		return game.DirUp
	case game.DirLeft:
		return game.DirRight
	}
	return game.DirLeft
}
