package metadata

import (
	"github.com/davsar89/GDML-Studio/engine/math"
)

/** @brief Identifier handed out for geometries that were never uploaded. */
const InvalidID uint32 = 4294967295

/**
 * @brief Represents an uploaded solid mesh. One Geometry is shared by every
 * volume that places the same solid.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The solid this geometry was built from. */
	SolidID string
	/** @brief The number of vertices in the uploaded buffer. */
	VertexCount uint32
	/** @brief The number of indices in the uploaded buffer. */
	IndexCount uint32
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The source buffers, kept for picking. */
	Mesh *MeshData
	/** @brief Backend-specific buffer data. */
	InternalData interface{}
}

// Triangle returns the three local-space corners of triangle i.
func (g *Geometry) Triangle(i int) (math.Vec3, math.Vec3, math.Vec3) {
	idx := g.Mesh.Indices[i*3 : i*3+3]
	return math.NewVec3FromSlice(g.Mesh.Positions, int(idx[0])*3),
		math.NewVec3FromSlice(g.Mesh.Positions, int(idx[1])*3),
		math.NewVec3FromSlice(g.Mesh.Positions, int(idx[2])*3)
}

func (g *Geometry) TriangleCount() int {
	if g.Mesh == nil {
		return 0
	}
	return g.Mesh.TriangleCount()
}
