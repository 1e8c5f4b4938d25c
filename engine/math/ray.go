package math

import "github.com/chewxy/math32"

func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalized()}
}

func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// IntersectTriangle runs Möller–Trumbore against the triangle a, b, c and
// returns the ray parameter of the hit. Both windings are hit.
func (r Ray) IntersectTriangle(a, b, c Vec3) (float32, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math32.Abs(det) < K_FLOAT_EPSILON {
		return 0, false
	}
	invDet := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := edge2.Dot(q) * invDet
	if t <= K_FLOAT_EPSILON {
		return 0, false
	}
	return t, true
}

// IntersectExtents runs the slab test against an axis-aligned box and returns
// the entry distance (zero when the origin is inside).
func (r Ray) IntersectExtents(e Extents3D) (float32, bool) {
	if e.IsEmpty() {
		return 0, false
	}
	tMin := float32(0)
	tMax := math32.Inf(1)
	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{e.Min.X, e.Min.Y, e.Min.Z}
	hi := [3]float32{e.Max.X, e.Max.Y, e.Max.Z}
	for i := 0; i < 3; i++ {
		if math32.Abs(dir[i]) < K_FLOAT_EPSILON {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t0 := (lo[i] - origin[i]) * inv
		t1 := (hi[i] - origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math32.Max(tMin, t0)
		tMax = math32.Min(tMax, t1)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
