package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

func TestWalkSkipsWorldAndMeshlessVolumes(t *testing.T) {
	w, cache, backend := newTestWalker()
	doc := testDocument()

	nodes, err := w.Walk(doc, metadata.NewVisibilityState())
	require.NoError(t, err)
	assert.Equal(t, []string{"Hall", "Detector", "LayerA", "LayerB", "Readout"}, volumes(nodes))

	assert.Equal(t, 4, backend.Created)
	assert.Equal(t, 4, cache.Len())
	assert.Equal(t, 2, w.Held("LayerBox"))
	assert.Equal(t, uint32(2), cache.RefCount("LayerBox"))
	assert.Same(t, findNode(nodes, "LayerA").Geometry, findNode(nodes, "LayerB").Geometry)
}

func TestWalkComposesWorldTransforms(t *testing.T) {
	w, _, _ := newTestWalker()
	nodes, err := w.Walk(testDocument(), metadata.NewVisibilityState())
	require.NoError(t, err)

	assert.Equal(t, math.NewVec3(0, 0, 40), findNode(nodes, "LayerA").World.Position())
	assert.Equal(t, math.NewVec3(0, 0, 60), findNode(nodes, "LayerB").World.Position())
	// Children of a meshless envelope are still placed through it.
	assert.Equal(t, math.NewVec3(0, 30, 0), findNode(nodes, "Readout").World.Position())
	assert.Equal(t, 3, findNode(nodes, "Readout").Depth)
}

func TestWalkRotatedParent(t *testing.T) {
	w, _, _ := newTestWalker()
	doc := testDocument()
	detector := doc.SceneGraph.Children[0].Children[0]
	detector.Rotation = [3]float64{float64(math.K_HALF_PI), 0, 0}

	nodes, err := w.Walk(doc, metadata.NewVisibilityState())
	require.NoError(t, err)

	// (0,0,-10) turns to (0,10,0) about X before the detector's offset.
	p := findNode(nodes, "LayerA").World.Position()
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 10, p.Y, 1e-4)
	assert.InDelta(t, 50, p.Z, 1e-4)
}

func TestHiddenParentKeepsChildren(t *testing.T) {
	w, cache, backend := newTestWalker()
	doc := testDocument()
	vs := metadata.NewVisibilityState()

	_, err := w.Walk(doc, vs)
	require.NoError(t, err)

	vs.SetHidden("Detector", true)
	nodes, err := w.Walk(doc, vs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hall", "LayerA", "LayerB", "Readout"}, volumes(nodes))
	assert.Equal(t, 1, backend.Destroyed)
	_, ok := cache.Get("DetectorBox")
	assert.False(t, ok)

	vs.SetHidden("Detector", false)
	nodes, err = w.Walk(doc, vs)
	require.NoError(t, err)
	assert.Len(t, nodes, 5)
	assert.Equal(t, 5, backend.Created)
}

func TestSharedSolidSurvivesUntilLastPlacementGoes(t *testing.T) {
	w, cache, backend := newTestWalker()
	doc := testDocument()
	vs := metadata.NewVisibilityState()

	_, _ = w.Walk(doc, vs)
	vs.SetHidden("LayerA", true)
	_, err := w.Walk(doc, vs)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), cache.RefCount("LayerBox"))
	assert.Equal(t, 0, backend.Destroyed)

	vs.SetHidden("LayerB", true)
	_, err = w.Walk(doc, vs)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), cache.RefCount("LayerBox"))
	assert.Equal(t, 1, backend.Destroyed)
}

func TestAcquiresBeforeReleases(t *testing.T) {
	w, cache, backend := newTestWalker()
	doc := testDocument()
	vs := metadata.NewVisibilityState()
	vs.SetHidden("LayerB", true)

	_, err := w.Walk(doc, vs)
	require.NoError(t, err)
	first, ok := cache.Get("LayerBox")
	require.True(t, ok)
	created := backend.Created

	// The solid moves from one placement to the other in a single frame.
	vs.SetHidden("LayerA", true)
	vs.SetHidden("LayerB", false)
	nodes, err := w.Walk(doc, vs)
	require.NoError(t, err)

	second, ok := cache.Get("LayerBox")
	require.True(t, ok)
	assert.Same(t, first, second)
	assert.Equal(t, created, backend.Created)
	assert.Equal(t, 0, backend.Destroyed)
	assert.NotNil(t, findNode(nodes, "LayerB"))
	assert.Nil(t, findNode(nodes, "LayerA"))
}

func TestMalformedSolidIsSkippedForTheDocument(t *testing.T) {
	w, _, backend := newTestWalker()
	doc := testDocument()
	doc.Meshes["LayerBox"] = malformedMesh()
	vs := metadata.NewVisibilityState()

	nodes, err := w.Walk(doc, vs)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMalformedMesh)
	assert.Equal(t, []string{"Hall", "Detector", "Readout"}, volumes(nodes))
	assert.True(t, w.Malformed("LayerBox"))

	created := backend.Created
	nodes, err = w.Walk(doc, vs)
	assert.NoError(t, err, "reported once")
	assert.Len(t, nodes, 3)
	assert.Equal(t, created, backend.Created)

	w.Reset()
	assert.False(t, w.Malformed("LayerBox"))
}

func TestWalkNilDocumentReleasesEverything(t *testing.T) {
	w, cache, backend := newTestWalker()
	_, _ = w.Walk(testDocument(), metadata.NewVisibilityState())

	nodes, err := w.Walk(nil, metadata.NewVisibilityState())
	assert.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 4, backend.Destroyed)
	assert.Equal(t, 0, w.Held("LayerBox"))
}

func TestDepthOpacity(t *testing.T) {
	assert.InDelta(t, 0.125, DepthOpacity(0.5, 0, 3), 1e-6)
	assert.InDelta(t, 0.5, DepthOpacity(0.5, 3, 3), 1e-6)
	assert.InDelta(t, 0.25, DepthOpacity(0.5, 1, 2), 1e-6)
	assert.InDelta(t, 0.125, DepthOpacity(0.5, 0, 0), 1e-6)
	assert.Equal(t, float32(1), DepthOpacity(1, 2, 5))
	assert.Equal(t, float32(0), DepthOpacity(0, 2, 5))
}

func TestRenderStateFollowsOpacity(t *testing.T) {
	w, _, _ := newTestWalker()
	doc := testDocument()
	vs := metadata.NewVisibilityState()

	nodes, _ := w.Walk(doc, vs)
	for _, n := range nodes {
		assert.Equal(t, float32(1), n.Opacity)
		assert.Equal(t, metadata.BlendModeOpaque, n.BlendMode)
		assert.True(t, n.DepthWrite)
		assert.Equal(t, metadata.FaceCullModeNone, n.CullMode)
	}

	vs.Opacity = 0.5
	nodes, _ = w.Walk(doc, vs)
	hall := findNode(nodes, "Hall")
	layer := findNode(nodes, "LayerA")
	assert.InDelta(t, DepthOpacity(0.5, 1, 3), hall.Opacity, 1e-6)
	assert.InDelta(t, 0.5, layer.Opacity, 1e-6)
	assert.Less(t, hall.Opacity, layer.Opacity, "outer volumes fade first")
	for _, n := range nodes {
		assert.Equal(t, metadata.BlendModeTransparent, n.BlendMode)
		assert.False(t, n.DepthWrite)
	}
}

func TestSelectionHighlight(t *testing.T) {
	w, _, _ := newTestWalker()
	vs := metadata.NewVisibilityState()
	vs.Selected = "LayerA"

	nodes, _ := w.Walk(testDocument(), vs)
	selected := findNode(nodes, "LayerA")
	assert.True(t, selected.Selected)
	assert.Equal(t, SelectedColor, selected.Color)
	assert.Equal(t, SelectedEmissive, selected.Emissive)
	assert.Equal(t, SelectedEmissiveIntensity, selected.EmissiveIntensity)

	other := findNode(nodes, "LayerB")
	assert.False(t, other.Selected)
	assert.Equal(t, ResolveMaterialColor("Lead", nil, nil), other.Color)
	assert.Equal(t, AmbientEmissive, other.Emissive)

	assert.Equal(t, "#B0BEC5", findNode(nodes, "Detector").Color.Value)
}
