// Package vmath holds the small float vector type shared by physics, movers
// and entities.
package vmath

import "math"

// Vec2 is a 2D float vector used for positions, velocities and directions.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// LenSq returns the squared length.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// NormalizeOr returns v scaled to unit length, or fallback when v has no
// usable length (zero, NaN or Inf). The result never contains NaN.
func (v Vec2) NormalizeOr(fallback Vec2) Vec2 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return fallback
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate90 turns v a quarter turn: (x, y) -> (-y, x).
func (v Vec2) Rotate90() Vec2 { return Vec2{-v.Y, v.X} }

// Abs returns the componentwise absolute value.
func (v Vec2) Abs() Vec2 { return Vec2{math.Abs(v.X), math.Abs(v.Y)} }

// WithinBox reports whether a and b are closer than r on both axes.
// This is the cheap axis-aligned proximity test used for grab and pairing.
func WithinBox(a, b Vec2, r float64) bool {
	d := a.Sub(b).Abs()
	return d.X < r && d.Y < r
}
