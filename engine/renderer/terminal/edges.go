package terminal

import (
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

// Faces closer to parallel than this share an edge that is not drawn.
const coplanarDot float32 = 0.999

type edgeKey struct{ a, b uint32 }

func newEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// featureEdges returns the edges worth drawing in wireframe: open edges and
// edges between faces that are not coplanar. Vertices are matched by
// position so split vertices still pair up.
func featureEdges(mesh *metadata.MeshData) [][2]math.Vec3 {
	canonical := make(map[math.Vec3]uint32)
	ids := make([]uint32, mesh.VertexCount())
	points := make([]math.Vec3, 0, mesh.VertexCount())
	for i := range ids {
		p := math.NewVec3FromSlice(mesh.Positions, i*3)
		id, ok := canonical[p]
		if !ok {
			id = uint32(len(points))
			canonical[p] = id
			points = append(points, p)
		}
		ids[i] = id
	}

	normals := make(map[edgeKey][]math.Vec3)
	var order []edgeKey
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		a, b, c := ids[mesh.Indices[t]], ids[mesh.Indices[t+1]], ids[mesh.Indices[t+2]]
		n := points[b].Sub(points[a]).Cross(points[c].Sub(points[a])).Normalized()
		for _, e := range [3]edgeKey{newEdgeKey(a, b), newEdgeKey(b, c), newEdgeKey(c, a)} {
			if e.a == e.b {
				continue
			}
			if _, seen := normals[e]; !seen {
				order = append(order, e)
			}
			normals[e] = append(normals[e], n)
		}
	}

	var out [][2]math.Vec3
	for _, e := range order {
		ns := normals[e]
		keep := len(ns) == 1
		for i := 1; i < len(ns) && !keep; i++ {
			if ns[0].Dot(ns[i]) < coplanarDot {
				keep = true
			}
		}
		if keep {
			out = append(out, [2]math.Vec3{points[e.a], points[e.b]})
		}
	}
	return out
}
