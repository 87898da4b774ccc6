package math

import "github.com/chewxy/math32"

// Bounds3 is an axis-aligned bounding box.
// An empty box has Min > Max on every axis.
type Bounds3 struct {
	Min, Max Vec3
}

// EmptyBounds returns a box that encloses nothing; inflating it by a point
// yields a zero-volume box at that point.
func EmptyBounds() Bounds3 {
	inf := math32.Inf(1)
	return Bounds3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewBounds returns the box spanned by two corners in any order.
func NewBounds(a, b Vec3) Bounds3 {
	return Bounds3{Min: a.Min(b), Max: a.Max(b)}
}

// IsEmpty reports whether the box encloses no point.
func (b Bounds3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Inflate returns the box grown to contain p.
func (b Bounds3) Inflate(p Vec3) Bounds3 {
	return Bounds3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Bounds3) Union(other Bounds3) Bounds3 {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return Bounds3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Contains reports whether other lies inside b.
func (b Bounds3) Contains(other Bounds3) bool {
	if other.IsEmpty() {
		return true
	}
	return b.Min.X <= other.Min.X && b.Min.Y <= other.Min.Y && b.Min.Z <= other.Min.Z &&
		b.Max.X >= other.Max.X && b.Max.Y >= other.Max.Y && b.Max.Z >= other.Max.Z
}

// Center returns the midpoint of the box.
func (b Bounds3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners. Index bits select max (1) or min (0)
// on x (bit 0), y (bit 1) and z (bit 2).
func (b Bounds3) Corners() [8]Vec3 {
	var c [8]Vec3
	for i := range c {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		c[i] = p
	}
	return c
}

// Transform returns the axis-aligned box enclosing b transformed by m.
func (b Bounds3) Transform(m Mat4) Bounds3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBounds()
	for _, p := range b.Corners() {
		out = out.Inflate(m.TransformPoint(p))
	}
	return out
}
