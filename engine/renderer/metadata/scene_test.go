package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
)

func tree() *SceneNode {
	return &SceneNode{
		Name: "World", VolumeName: "World", SolidName: "W", IsWorld: true,
		Children: []*SceneNode{
			{Name: "A_PV", VolumeName: "A", SolidName: "Shared", Children: []*SceneNode{
				{Name: "A1_PV", VolumeName: "A1", SolidName: "Leaf"},
			}},
			{Name: "B_PV", VolumeName: "B", SolidName: "Shared"},
		},
	}
}

func TestSceneNodeWalkOrderAndPruning(t *testing.T) {
	var seen []string
	tree().Walk(func(n *SceneNode, depth int) bool {
		seen = append(seen, n.VolumeName)
		return n.VolumeName != "A"
	})
	assert.Equal(t, []string{"World", "A", "B"}, seen)

	depths := map[string]int{}
	tree().Walk(func(n *SceneNode, depth int) bool {
		depths[n.VolumeName] = depth
		return true
	})
	assert.Equal(t, map[string]int{"World": 0, "A": 1, "A1": 2, "B": 1}, depths)
	assert.Equal(t, 2, tree().MaxDepth())
	assert.Equal(t, 0, (&SceneNode{}).MaxDepth())
}

func TestSceneNodePlacement(t *testing.T) {
	n := &SceneNode{Position: [3]float64{1, 2, 3}}
	assert.Equal(t, math.NewVec3(1, 2, 3), n.Placement().GetLocal().Position())
}

func TestDocumentSummary(t *testing.T) {
	doc := &Document{
		Name:       "d",
		SceneGraph: tree(),
		Meshes: map[string]*MeshData{
			"Shared": {Positions: make([]float32, 9), Indices: []uint32{0, 1, 2}},
			"Leaf":   {Positions: make([]float32, 12), Indices: []uint32{0, 1, 2, 0, 2, 3}},
		},
	}
	assert.Equal(t, DocumentSummary{
		Name:         "d",
		VolumeCount:  4,
		SolidCount:   3,
		MeshCount:    2,
		TriangleSize: 3,
		MaxDepth:     2,
	}, doc.Summary())
}

func TestVisibilityState(t *testing.T) {
	vs := NewVisibilityState()
	assert.Equal(t, float32(1), vs.Opacity)
	assert.False(t, vs.IsHidden("A"))

	vs.SetHidden("A", true)
	vs.SetHidden("A", true)
	assert.True(t, vs.IsHidden("A"))
	assert.Len(t, vs.Hidden, 1)

	vs.SetHidden("A", false)
	assert.False(t, vs.IsHidden("A"))

	vs.SetHidden("B", true)
	vs.Selected = "B"
	vs.Opacity = 0.3
	vs.Reset()
	assert.Empty(t, vs.Hidden)
	assert.Empty(t, vs.Selected)
	assert.Equal(t, float32(1), vs.Opacity)
}

func TestMeshValidate(t *testing.T) {
	m := &MeshData{Positions: make([]float32, 9), Indices: []uint32{0, 1, 2}}
	assert.NoError(t, m.Validate("ok"))
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())

	m.Indices = []uint32{0, 3, 1}
	err := m.Validate("bad")
	assert.ErrorIs(t, err, core.ErrMalformedMesh)
	assert.EqualError(t, err, "solid 'bad': index 3 at position 1 out of range (vertex count 3)")
}

func TestRenderNodeWorldExtents(t *testing.T) {
	rn := &RenderNode{World: math.NewMat4Translation(math.NewVec3(5, 0, 0))}
	assert.True(t, rn.WorldExtents().IsEmpty())

	rn.Geometry = &Geometry{Extents: math.Extents3D{Min: math.NewVec3(-1, -1, -1), Max: math.NewVec3(1, 1, 1)}}
	e := rn.WorldExtents()
	assert.Equal(t, math.NewVec3(4, -1, -1), e.Min)
	assert.Equal(t, math.NewVec3(6, 1, 1), e.Max)
}
