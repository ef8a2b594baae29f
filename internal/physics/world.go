// Package physics provides the tile-grid collision service the game core
// moves its actors through.
package physics

import (
	"fmt"
	"math"

	"github.com/solarlune/resolv"

	"github.com/amalg/cupid-panda/internal/vmath"
)

// Tags attached to resolv objects.
const (
	TagSolid = "solid"
	TagActor = "actor"
)

// ActorID is an opaque handle to a collidable rectangle owned by one entity.
type ActorID int

// World is the narrow contract the game core consumes. Horizontal and
// vertical moves are swept against the solid layer and stop at contact;
// SetActorPos overwrites the position without any collision check.
type World interface {
	AddActor(pos vmath.Vec2, w, h int) ActorID
	MoveH(id ActorID, dx float64)
	MoveV(id ActorID, dy float64)
	ActorPos(id ActorID) vmath.Vec2
	SetActorPos(id ActorID, pos vmath.Vec2)
}

// TileWorld is a World backed by a resolv space holding one object per
// solid tile plus one object per actor. Actors collide with solids only.
type TileWorld struct {
	space    *resolv.Space
	actors   []*resolv.Object
	cols     int
	rows     int
	tileSize int
	solid    []bool
}

// NewTileWorld builds the static layer from solid(col, row) for a
// cols x rows grid of square tiles.
func NewTileWorld(cols, rows, tileSize int, solid func(col, row int) bool) *TileWorld {
	w := &TileWorld{
		space:    resolv.NewSpace(cols*tileSize, rows*tileSize, tileSize, tileSize),
		cols:     cols,
		rows:     rows,
		tileSize: tileSize,
		solid:    make([]bool, cols*rows),
	}

	ts := float64(tileSize)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if solid == nil || !solid(col, row) {
				continue
			}
			w.solid[row*cols+col] = true
			obj := resolv.NewObject(float64(col)*ts, float64(row)*ts, ts, ts, TagSolid)
			obj.SetShape(resolv.NewRectangle(0, 0, ts, ts))
			w.space.Add(obj)
		}
	}
	return w
}

// AddActor registers a w x h rectangle with its top-left corner at pos.
func (w *TileWorld) AddActor(pos vmath.Vec2, width, height int) ActorID {
	obj := resolv.NewObject(pos.X, pos.Y, float64(width), float64(height), TagActor)
	obj.SetShape(resolv.NewRectangle(0, 0, float64(width), float64(height)))
	w.space.Add(obj)
	w.actors = append(w.actors, obj)
	return ActorID(len(w.actors) - 1)
}

// MoveH moves the actor along X, stopping flush against the first solid tile
// or the world edge.
func (w *TileWorld) MoveH(id ActorID, dx float64) {
	w.move(w.object(id), dx, 0)
}

// MoveV moves the actor along Y, stopping flush against the first solid tile
// or the world edge.
func (w *TileWorld) MoveV(id ActorID, dy float64) {
	w.move(w.object(id), 0, dy)
}

// ActorPos returns the actor's top-left corner.
func (w *TileWorld) ActorPos(id ActorID) vmath.Vec2 {
	obj := w.object(id)
	return vmath.V(obj.X, obj.Y)
}

// SetActorPos teleports the actor, ignoring solids.
func (w *TileWorld) SetActorPos(id ActorID, pos vmath.Vec2) {
	obj := w.object(id)
	obj.X, obj.Y = pos.X, pos.Y
	obj.Update()
}

// Width returns the world width in pixels.
func (w *TileWorld) Width() float64 { return float64(w.cols * w.tileSize) }

// Height returns the world height in pixels.
func (w *TileWorld) Height() float64 { return float64(w.rows * w.tileSize) }

// Grid returns the tile grid dimensions and tile size.
func (w *TileWorld) Grid() (cols, rows, tileSize int) { return w.cols, w.rows, w.tileSize }

// SolidAt reports whether the tile at (col, row) blocks movement.
// Out-of-range tiles count as solid.
func (w *TileWorld) SolidAt(col, row int) bool {
	if col < 0 || row < 0 || col >= w.cols || row >= w.rows {
		return true
	}
	return w.solid[row*w.cols+col]
}

// move walks a single-axis delta in steps of at most half a tile so a fast
// actor cannot skip over a solid tile between two frames.
func (w *TileWorld) move(obj *resolv.Object, dx, dy float64) {
	maxStep := float64(w.tileSize) / 2
	remaining := dx + dy
	for remaining != 0 {
		step := math.Max(-maxStep, math.Min(maxStep, remaining))
		remaining -= step

		var moved float64
		if dx != 0 {
			moved = w.sweep(obj, step, 0)
			obj.X = clamp(obj.X+moved, 0, w.Width()-obj.W)
		} else {
			moved = w.sweep(obj, 0, step)
			obj.Y = clamp(obj.Y+moved, 0, w.Height()-obj.H)
		}
		obj.Update()

		if moved != step {
			return
		}
	}
}

// sweep shortens a single-axis step so obj stops at contact with the nearest
// solid it would overlap. resolv reports every solid in the touched cells,
// so candidates are filtered by a real overlap test first.
func (w *TileWorld) sweep(obj *resolv.Object, dx, dy float64) float64 {
	move := dx + dy
	c := obj.Check(dx, dy, TagSolid)
	if c == nil {
		return move
	}
	for _, o := range c.Objects {
		if !overlaps(obj.X+dx, obj.Y+dy, obj.W, obj.H, o) {
			continue
		}
		contact := c.ContactWithObject(o)
		limit := contact.X()
		if dx == 0 {
			limit = contact.Y()
		}
		// Already touching or embedded: refuse to move further in.
		if limit*move < 0 {
			limit = 0
		}
		if math.Abs(limit) < math.Abs(move) {
			move = limit
		}
	}
	return move
}

func (w *TileWorld) object(id ActorID) *resolv.Object {
	if id < 0 || int(id) >= len(w.actors) {
		panic(fmt.Sprintf("physics: unknown actor %d", id))
	}
	return w.actors[id]
}

func overlaps(x, y, width, height float64, o *resolv.Object) bool {
	return x < o.X+o.W && x+width > o.X && y < o.Y+o.H && y+height > o.Y
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
