package math

// GeometryGenerateNormals produces flat per-vertex normals (stride 3) from the
// triangle list. Vertices shared between faces take the normal of the last
// face that references them.
func GeometryGenerateNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := int(indices[i+0])
		i1 := int(indices[i+1])
		i2 := int(indices[i+2])

		p0 := NewVec3FromSlice(positions, i0*3)
		edge1 := NewVec3FromSlice(positions, i1*3).Sub(p0)
		edge2 := NewVec3FromSlice(positions, i2*3).Sub(p0)

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		n := edge1.Cross(edge2).Normalized()
		for _, idx := range []int{i0, i1, i2} {
			normals[idx*3+0] = n.X
			normals[idx*3+1] = n.Y
			normals[idx*3+2] = n.Z
		}
	}
	return normals
}

// GeometryExtents returns the bounds of a flat stride-3 position buffer.
func GeometryExtents(positions []float32) Extents3D {
	e := NewExtentsEmpty()
	for i := 0; i+2 < len(positions); i += 3 {
		e = e.ExpandByPoint(NewVec3FromSlice(positions, i))
	}
	return e
}
