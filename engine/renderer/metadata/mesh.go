package metadata

import (
	"github.com/davsar89/GDML-Studio/engine/core"
)

// MeshData is a tessellated solid: flat stride-3 positions and normals and a
// stride-3 triangle index list.
type MeshData struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
}

func (m *MeshData) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that every index addresses an existing vertex.
func (m *MeshData) Validate(solidID string) error {
	count := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= count {
			return &core.MalformedMeshError{
				SolidID:     solidID,
				Index:       idx,
				Position:    i,
				VertexCount: count,
			}
		}
	}
	return nil
}
