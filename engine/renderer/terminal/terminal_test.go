package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davsar89/GDML-Studio/engine/assets"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/components"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

func TestFeatureEdgesOfBox(t *testing.T) {
	edges := featureEdges(assets.GenerateBoxMesh(2, 2, 2))
	assert.Len(t, edges, 12, "face diagonals are dropped")
	for _, e := range edges {
		assert.InDelta(t, 2, e[0].Distance(e[1]), 1e-5)
	}
}

func TestFeatureEdgesOfOpenMeshes(t *testing.T) {
	triangle := &metadata.MeshData{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 2},
	}
	assert.Len(t, featureEdges(triangle), 3)

	// Two coplanar triangles with split vertices along the diagonal.
	quad := &metadata.MeshData{
		Positions: []float32{
			0, 0, 0, 1, 0, 0, 1, 1, 0,
			0, 0, 0, 1, 1, 0, 0, 1, 0,
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
	assert.Len(t, featureEdges(quad), 4)
}

func TestBackendLifecycle(t *testing.T) {
	b := New()
	assert.Error(t, b.BeginFrame(0), "not initialized")
	assert.Error(t, b.Initialize("test", 1, 1), "smaller than one cell")

	require.NoError(t, b.Initialize("test", 80, 40))
	assert.Equal(t, 40, b.canvas.w)
	assert.Equal(t, 10, b.canvas.h)

	g := &metadata.Geometry{ID: 3, SolidID: "Box"}
	require.NoError(t, b.CreateGeometry(g, assets.GenerateBoxMesh(1, 1, 1)))
	assert.Error(t, b.CreateGeometry(g, assets.GenerateBoxMesh(1, 1, 1)))
	assert.NotNil(t, g.InternalData)

	b.DestroyGeometry(g)
	assert.Nil(t, g.InternalData)
	assert.Empty(t, b.geometries)
}

func isBraille(r rune) bool {
	return r > 0x2800 && r <= 0x28FF
}

func TestBackendDrawsVisibleGeometry(t *testing.T) {
	b := New()
	require.NoError(t, b.Initialize("test", 120, 80))

	mesh := assets.GenerateBoxMesh(200, 200, 200)
	e := math.GeometryExtents(mesh.Positions)
	g := &metadata.Geometry{ID: 0, SolidID: "Box", Mesh: mesh, Extents: e}
	require.NoError(t, b.CreateGeometry(g, mesh))

	cam := components.NewCamera()
	cam.SetAspect(120.0 / 80.0)
	packet := &metadata.RenderPacket{
		View:       cam.GetView(),
		Projection: cam.GetProjection(),
		Nodes: []*metadata.RenderNode{{
			VolumeID:   "Box",
			Geometry:   g,
			World:      math.NewMat4Identity(),
			Opacity:    1,
			DepthWrite: true,
			Color:      metadata.Color{Value: "#ffffff", R: 1, G: 1, B: 1},
		}},
	}

	require.NoError(t, b.BeginFrame(0))
	require.NoError(t, b.DrawNodes(packet))
	require.NoError(t, b.EndFrame(0))

	frame := b.Frame()
	assert.Len(t, strings.Split(frame, "\n"), 20)
	assert.GreaterOrEqual(t, strings.IndexFunc(frame, isBraille), 0)

	// A node behind the camera draws nothing.
	require.NoError(t, b.BeginFrame(0))
	packet.Nodes[0].World = math.NewMat4Translation(math.NewVec3(2000, 2000, 2000))
	require.NoError(t, b.DrawNodes(packet))
	require.NoError(t, b.EndFrame(0))
	assert.Less(t, strings.IndexFunc(b.Frame(), isBraille), 0)
}

func TestCanvasDepthTest(t *testing.T) {
	c := newCanvas(1, 1)
	near := stroke{color: mustHex("#ff0000"), depthTest: true, depthWrite: true}
	far := stroke{color: mustHex("#0000ff"), depthTest: true, depthWrite: true}

	c.setDot(0, 0, 0.1, near)
	c.setDot(0, 0, 0.5, far)
	assert.Equal(t, "#ff0000", c.color[0][0].Hex())

	c.clear()
	c.setDot(0, 0, 0.5, far)
	c.setDot(0, 0, 0.1, near)
	assert.Equal(t, "#ff0000", c.color[0][0].Hex())
}

func TestCanvasClipsLongSegments(t *testing.T) {
	c := newCanvas(40, 10)
	s := stroke{color: mustHex("#ffffff")}

	// One endpoint far left of the raster; the visible part spans x 0..60.
	c.line(-1000, 20, 0, 60, 20, 0, s)
	for x := 0; x <= 30; x++ {
		assert.NotZero(t, c.mask[5][x], "cell %d", x)
	}
	for x := 31; x < 40; x++ {
		assert.Zero(t, c.mask[5][x], "cell %d", x)
	}

	// Both endpoints off screen, crossing the whole raster diagonally.
	c.clear()
	c.line(-1e6, -1e6, 0, 1e6, 1e6, 0, s)
	assert.NotZero(t, c.mask[0][0])
	assert.NotZero(t, c.mask[9][19])

	c.clear()
	c.line(-1e6, 20, 0, 1e6, 20, 0, s)
	assert.NotZero(t, c.mask[5][0])
	assert.NotZero(t, c.mask[5][39])

	// Entirely outside.
	c.clear()
	c.line(-500, -10, 0, 500, -10, 0, s)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			assert.Zero(t, c.mask[y][x])
		}
	}
}

func TestCanvasClipCarriesDepth(t *testing.T) {
	c := newCanvas(40, 10)
	s := stroke{color: mustHex("#ffffff"), depthTest: true, depthWrite: true}
	c.line(-80, 20, 0, 80, 20, 1, s)
	assert.InDelta(t, 0.5, c.depth[5][0], 1e-3)
}
