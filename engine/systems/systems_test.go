package systems

import (
	"github.com/davsar89/GDML-Studio/engine/assets"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer"
	"github.com/davsar89/GDML-Studio/engine/renderer/headless"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

func newTestCache() (*GeometryCache, *headless.Backend) {
	b := headless.New()
	return NewGeometryCache(renderer.New(b)), b
}

func newTestWalker() (*SceneGraphWalker, *GeometryCache, *headless.Backend) {
	cache, b := newTestCache()
	return NewSceneGraphWalker(cache, NewMaterialColorResolver()), cache, b
}

func ptr[T any](v T) *T {
	return &v
}

func malformedMesh() *metadata.MeshData {
	return &metadata.MeshData{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 7},
	}
}

// testDocument: World > Hall > {Detector > {LayerA, LayerB}, Envelope (no mesh) > Readout}.
// LayerA and LayerB share the solid "LayerBox".
func testDocument() *metadata.Document {
	return &metadata.Document{
		Name: "test",
		SceneGraph: &metadata.SceneNode{
			Name: "World", VolumeName: "World", SolidName: "WorldBox", IsWorld: true,
			Children: []*metadata.SceneNode{{
				Name: "Hall_PV", VolumeName: "Hall", SolidName: "HallBox", MaterialName: "G4_AIR",
				Children: []*metadata.SceneNode{
					{
						Name: "Detector_PV", VolumeName: "Detector", SolidName: "DetectorBox", MaterialName: "Steel",
						Position: [3]float64{0, 0, 50},
						Children: []*metadata.SceneNode{
							{Name: "LayerA_PV", VolumeName: "LayerA", SolidName: "LayerBox", MaterialName: "Lead", Position: [3]float64{0, 0, -10}},
							{Name: "LayerB_PV", VolumeName: "LayerB", SolidName: "LayerBox", MaterialName: "Lead", Position: [3]float64{0, 0, 10}},
						},
					},
					{
						Name: "Envelope_PV", VolumeName: "Envelope", SolidName: "EnvelopeShape",
						Children: []*metadata.SceneNode{
							{Name: "Readout_PV", VolumeName: "Readout", SolidName: "ReadoutBox", MaterialName: "G4_Si", Position: [3]float64{0, 30, 0}},
						},
					},
				},
			}},
		},
		Meshes: map[string]*metadata.MeshData{
			"WorldBox":    assets.GenerateBoxMesh(400, 400, 400),
			"HallBox":     assets.GenerateBoxMesh(200, 200, 200),
			"DetectorBox": assets.GenerateBoxMesh(50, 50, 50),
			"LayerBox":    assets.GenerateBoxMesh(40, 40, 4),
			"ReadoutBox":  assets.GenerateBoxMesh(10, 10, 10),
		},
	}
}

func volumes(nodes []*metadata.RenderNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.VolumeID
	}
	return out
}

func findNode(nodes []*metadata.RenderNode, volume string) *metadata.RenderNode {
	for _, n := range nodes {
		if n.VolumeID == volume {
			return n
		}
	}
	return nil
}

// boxNode is a render node of an axis-aligned box placed at position.
func boxNode(volume string, size float32, position math.Vec3) *metadata.RenderNode {
	mesh := assets.GenerateBoxMesh(size, size, size)
	e := math.GeometryExtents(mesh.Positions)
	return &metadata.RenderNode{
		VolumeID: volume,
		Name:     volume,
		Geometry: &metadata.Geometry{SolidID: volume, Mesh: mesh, Extents: e, Center: e.Center()},
		World:    math.NewMat4Translation(position),
	}
}
