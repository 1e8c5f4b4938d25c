package assets

import (
	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

/**
 * @brief Tessellates an axis-aligned box centered on the origin: 4 vertices
 * and 2 triangles per face, with flat normals.
 *
 * @param width Extent along X.
 * @param height Extent along Y.
 * @param depth Extent along Z.
 * @return The box mesh.
 */
func GenerateBoxMesh(width, height, depth float32) *metadata.MeshData {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}

	min_x, max_x := -width*0.5, width*0.5
	min_y, max_y := -height*0.5, height*0.5
	min_z, max_z := -depth*0.5, depth*0.5

	v := math.NewVec3
	faces := [6][4]math.Vec3{
		// Front face
		{v(min_x, min_y, max_z), v(max_x, max_y, max_z), v(min_x, max_y, max_z), v(max_x, min_y, max_z)},
		// Back face
		{v(max_x, min_y, min_z), v(min_x, max_y, min_z), v(max_x, max_y, min_z), v(min_x, min_y, min_z)},
		// Left
		{v(min_x, min_y, min_z), v(min_x, max_y, max_z), v(min_x, max_y, min_z), v(min_x, min_y, max_z)},
		// Right face
		{v(max_x, min_y, max_z), v(max_x, max_y, min_z), v(max_x, max_y, max_z), v(max_x, min_y, min_z)},
		// Bottom face
		{v(max_x, min_y, max_z), v(min_x, min_y, min_z), v(max_x, min_y, min_z), v(min_x, min_y, max_z)},
		// Top face
		{v(min_x, max_y, max_z), v(max_x, max_y, min_z), v(min_x, max_y, min_z), v(max_x, max_y, max_z)},
	}

	mesh := &metadata.MeshData{
		Positions: make([]float32, 0, 4*6*3), // 4 verts per side, 6 side
		Indices:   make([]uint32, 0, 6*6),    // 6 indices per side, 6 side
	}
	for i, face := range faces {
		for _, v := range face {
			mesh.Positions = append(mesh.Positions, v.X, v.Y, v.Z)
		}
		v_offset := uint32(i * 4)
		mesh.Indices = append(mesh.Indices,
			v_offset+0, v_offset+1, v_offset+2,
			v_offset+0, v_offset+3, v_offset+1)
	}
	mesh.Normals = math.GeometryGenerateNormals(mesh.Positions, mesh.Indices)
	return mesh
}
