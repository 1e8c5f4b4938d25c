package math

import "github.com/chewxy/math32"

// NewExtentsEmpty returns extents that contain nothing; expanding them by a
// point yields a degenerate box at that point.
func NewExtentsEmpty() Extents3D {
	inf := math32.Inf(1)
	return Extents3D{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

func (e Extents3D) IsEmpty() bool {
	return e.Max.X < e.Min.X || e.Max.Y < e.Min.Y || e.Max.Z < e.Min.Z
}

func (e Extents3D) ExpandByPoint(p Vec3) Extents3D {
	return Extents3D{
		Min: Vec3{math32.Min(e.Min.X, p.X), math32.Min(e.Min.Y, p.Y), math32.Min(e.Min.Z, p.Z)},
		Max: Vec3{math32.Max(e.Max.X, p.X), math32.Max(e.Max.Y, p.Y), math32.Max(e.Max.Z, p.Z)},
	}
}

func (e Extents3D) Union(other Extents3D) Extents3D {
	if other.IsEmpty() {
		return e
	}
	return e.ExpandByPoint(other.Min).ExpandByPoint(other.Max)
}

func (e Extents3D) Center() Vec3 {
	if e.IsEmpty() {
		return NewVec3Zero()
	}
	return e.Min.Add(e.Max).MulScalar(0.5)
}

func (e Extents3D) Size() Vec3 {
	if e.IsEmpty() {
		return NewVec3Zero()
	}
	return e.Max.Sub(e.Min)
}

// Corners returns the eight box corners.
func (e Extents3D) Corners() [8]Vec3 {
	return [8]Vec3{
		{e.Min.X, e.Min.Y, e.Min.Z},
		{e.Max.X, e.Min.Y, e.Min.Z},
		{e.Min.X, e.Max.Y, e.Min.Z},
		{e.Max.X, e.Max.Y, e.Min.Z},
		{e.Min.X, e.Min.Y, e.Max.Z},
		{e.Max.X, e.Min.Y, e.Max.Z},
		{e.Min.X, e.Max.Y, e.Max.Z},
		{e.Max.X, e.Max.Y, e.Max.Z},
	}
}

// Transform returns the axis-aligned extents of this box after m is applied
// to each of its corners.
func (e Extents3D) Transform(m Mat4) Extents3D {
	if e.IsEmpty() {
		return e
	}
	out := NewExtentsEmpty()
	for _, c := range e.Corners() {
		out = out.ExpandByPoint(c.Transform(m))
	}
	return out
}
