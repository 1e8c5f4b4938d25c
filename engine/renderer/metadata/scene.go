package metadata

import (
	"github.com/davsar89/GDML-Studio/engine/math"
)

/**
 * @brief One placed volume of the geometry tree. Every node, the world
 * volume included, has the same shape. Children keep document order.
 */
type SceneNode struct {
	Name         string       `json:"name"`
	VolumeName   string       `json:"volume_name"`
	SolidName    string       `json:"solid_name"`
	MaterialName string       `json:"material_name"`
	Color        *string      `json:"color"`
	Density      *float64     `json:"density"`
	Position     [3]float64   `json:"position"`
	Rotation     [3]float64   `json:"rotation"`
	IsWorld      bool         `json:"is_world"`
	Children     []*SceneNode `json:"children"`
}

// Placement returns the node's local transform relative to its parent.
func (n *SceneNode) Placement() *math.Transform {
	return math.TransformFromPlacement(
		math.NewVec3(float32(n.Position[0]), float32(n.Position[1]), float32(n.Position[2])),
		math.NewVec3(float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])),
	)
}

// MaxDepth returns the depth of the deepest leaf below n, n being at depth 0.
func (n *SceneNode) MaxDepth() int {
	deepest := 0
	for _, c := range n.Children {
		if d := c.MaxDepth() + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Walk visits n and its descendants depth first in document order. Returning
// false from fn skips the node's children.
func (n *SceneNode) Walk(fn func(node *SceneNode, depth int) bool) {
	n.walk(fn, 0)
}

func (n *SceneNode) walk(fn func(node *SceneNode, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Document is one loaded geometry description: the placement tree and the
// tessellated solids it references.
type Document struct {
	Name       string               `json:"name"`
	SceneGraph *SceneNode           `json:"scene_graph"`
	Meshes     map[string]*MeshData `json:"meshes"`
}

// DocumentSummary holds the counts shown next to the document name.
type DocumentSummary struct {
	Name         string
	VolumeCount  int
	SolidCount   int
	MeshCount    int
	TriangleSize int
	MaxDepth     int
}

func (d *Document) Summary() DocumentSummary {
	s := DocumentSummary{Name: d.Name, MeshCount: len(d.Meshes)}
	for _, m := range d.Meshes {
		s.TriangleSize += m.TriangleCount()
	}
	if d.SceneGraph == nil {
		return s
	}
	solids := make(map[string]struct{})
	d.SceneGraph.Walk(func(n *SceneNode, _ int) bool {
		s.VolumeCount++
		if n.SolidName != "" {
			solids[n.SolidName] = struct{}{}
		}
		return true
	})
	s.SolidCount = len(solids)
	s.MaxDepth = d.SceneGraph.MaxDepth()
	return s
}

/**
 * @brief The user-facing view state the renderer reads every frame:
 * hidden volumes, global opacity and the current selection.
 */
type VisibilityState struct {
	Hidden map[string]struct{}
	// Opacity in [0, 1].
	Opacity float32
	// Selected volume; empty when nothing is selected.
	Selected string
}

func NewVisibilityState() *VisibilityState {
	return &VisibilityState{
		Hidden:  make(map[string]struct{}),
		Opacity: 1.0,
	}
}

func (vs *VisibilityState) IsHidden(volume string) bool {
	_, ok := vs.Hidden[volume]
	return ok
}

func (vs *VisibilityState) SetHidden(volume string, hidden bool) {
	if hidden {
		vs.Hidden[volume] = struct{}{}
		return
	}
	delete(vs.Hidden, volume)
}

// Reset clears selection and hidden volumes and restores full opacity.
func (vs *VisibilityState) Reset() {
	vs.Hidden = make(map[string]struct{})
	vs.Opacity = 1.0
	vs.Selected = ""
}
