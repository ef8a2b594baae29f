package game

import (
	"math"

	"github.com/amalg/cupid-panda/internal/vmath"
)

// Input is sampled once per tick. ActionPressed is edge-triggered: true only
// on the tick the grab/throw key went down.
type Input interface {
	DirectionHeld(d Direction) bool
	ActionPressed() bool
}

// FrameInput is a plain Input value, used by tests and replay-free callers.
type FrameInput struct {
	Up, Down, Left, Right bool
	Action                bool
}

func (f FrameInput) DirectionHeld(d Direction) bool {
	switch d {
	case DirUp:
		return f.Up
	case DirDown:
		return f.Down
	case DirLeft:
		return f.Left
	case DirRight:
		return f.Right
	}
	return false
}

func (f FrameInput) ActionPressed() bool { return f.Action }

// NoInput is an Input with nothing held or pressed.
var NoInput Input = FrameInput{}

// inputDirection converts the held keys into a direction whose length is 1
// for axial and diagonal movement alike. Opposite keys cancel.
func inputDirection(in Input) vmath.Vec2 {
	var d vmath.Vec2
	if in.DirectionHeld(DirRight) {
		d.X++
	}
	if in.DirectionHeld(DirLeft) {
		d.X--
	}
	if in.DirectionHeld(DirDown) {
		d.Y++
	}
	if in.DirectionHeld(DirUp) {
		d.Y--
	}
	if d.X != 0 && d.Y != 0 {
		d = d.Scale(1 / math.Sqrt2)
	}
	return d
}

// sample reads src exactly once so that edge-triggered sources are consumed
// a single time per tick.
func sample(src Input) FrameInput {
	return FrameInput{
		Up:     src.DirectionHeld(DirUp),
		Down:   src.DirectionHeld(DirDown),
		Left:   src.DirectionHeld(DirLeft),
		Right:  src.DirectionHeld(DirRight),
		Action: src.ActionPressed(),
	}
}
