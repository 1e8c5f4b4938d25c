package systems

import (
	"errors"
	"sort"

	"github.com/chewxy/math32"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

// visit is a node that wants its mesh drawn this frame.
type visit struct {
	node  *metadata.SceneNode
	depth int
	world math.Mat4
}

/**
 * @brief Walks the placement tree of a document once per frame and produces
 * the drawable nodes. The walker holds one cache reference per drawn
 * placement and reconciles them against the previous frame, so geometry
 * lifetime follows what is actually on screen.
 */
type SceneGraphWalker struct {
	cache    *GeometryCache
	resolver *MaterialColorResolver

	// Cache references held since the last walk, per solid.
	held map[string]int
	// Solids whose mesh failed validation during the current document.
	malformed map[string]error
}

func NewSceneGraphWalker(cache *GeometryCache, resolver *MaterialColorResolver) *SceneGraphWalker {
	return &SceneGraphWalker{
		cache:     cache,
		resolver:  resolver,
		held:      make(map[string]int),
		malformed: make(map[string]error),
	}
}

/**
 * @brief Forgets every held reference and malformed solid without touching
 * the cache. Used right after the cache was cleared for a new document.
 */
func (w *SceneGraphWalker) Reset() {
	w.held = make(map[string]int)
	w.malformed = make(map[string]error)
}

// ReleaseAll gives back every reference the walker holds.
func (w *SceneGraphWalker) ReleaseAll() {
	for solid, n := range w.held {
		for i := 0; i < n; i++ {
			w.cache.Release(solid)
		}
	}
	w.held = make(map[string]int)
}

// Held returns how many cache references the walker holds for a solid.
func (w *SceneGraphWalker) Held(solidID string) int {
	return w.held[solidID]
}

// Malformed reports whether a solid was rejected during this document.
func (w *SceneGraphWalker) Malformed(solidID string) bool {
	_, ok := w.malformed[solidID]
	return ok
}

/**
 * @brief Computes the render list for a document under the given view state.
 * Meshes are skipped for the world volume, for volumes whose solid has no
 * mesh, for hidden volumes and for malformed solids. Children are always
 * visited.
 *
 * @param doc The loaded document, or nil to draw nothing.
 * @param vs The current visibility state.
 * @return The render nodes in document order, and any solids newly found malformed.
 */
func (w *SceneGraphWalker) Walk(doc *metadata.Document, vs *metadata.VisibilityState) ([]*metadata.RenderNode, error) {
	if doc == nil || doc.SceneGraph == nil {
		w.ReleaseAll()
		return nil, nil
	}

	maxDepth := doc.SceneGraph.MaxDepth()
	visits := make([]visit, 0, len(doc.Meshes))
	w.collect(doc, vs, doc.SceneGraph, 0, math.NewMat4Identity(), &visits)

	wanted := make(map[string]int, len(w.held))
	for _, v := range visits {
		wanted[v.node.SolidName]++
	}
	errs := w.reconcile(doc, wanted)

	opacity := math.Clamp(vs.Opacity, 0, 1)
	nodes := make([]*metadata.RenderNode, 0, len(visits))
	for _, v := range visits {
		geometry, ok := w.cache.Get(v.node.SolidName)
		if !ok {
			continue
		}
		nodes = append(nodes, w.renderNode(v, geometry, maxDepth, opacity, vs.Selected))
	}
	return nodes, errs
}

func (w *SceneGraphWalker) collect(doc *metadata.Document, vs *metadata.VisibilityState, node *metadata.SceneNode, depth int, parentWorld math.Mat4, out *[]visit) {
	world := node.Placement().GetWorld(parentWorld)
	if !w.skipMesh(doc, vs, node) {
		*out = append(*out, visit{node: node, depth: depth, world: world})
	}
	for _, child := range node.Children {
		w.collect(doc, vs, child, depth+1, world, out)
	}
}

func (w *SceneGraphWalker) skipMesh(doc *metadata.Document, vs *metadata.VisibilityState, node *metadata.SceneNode) bool {
	if node.IsWorld {
		return true
	}
	if _, ok := doc.Meshes[node.SolidName]; !ok {
		return true
	}
	if vs.IsHidden(node.VolumeName) {
		return true
	}
	return w.Malformed(node.SolidName)
}

/**
 * @brief Brings the held references in line with wanted. Every acquire of
 * the pass is issued before any release, so a solid moving from one
 * placement to another keeps its buffer.
 */
func (w *SceneGraphWalker) reconcile(doc *metadata.Document, wanted map[string]int) error {
	var errs []error

	// Sorted so uploads and errors come out in a stable order.
	solids := make([]string, 0, len(wanted))
	for solid := range wanted {
		solids = append(solids, solid)
	}
	sort.Strings(solids)

	for _, solid := range solids {
		for w.held[solid] < wanted[solid] {
			if _, err := w.cache.Acquire(solid, doc.Meshes[solid]); err != nil {
				w.malformed[solid] = err
				wanted[solid] = 0
				core.LogWarn("skipping solid '%s': %s", solid, err)
				errs = append(errs, err)
				break
			}
			w.held[solid]++
		}
	}

	for solid, n := range w.held {
		for ; n > wanted[solid]; n-- {
			w.cache.Release(solid)
		}
		if n == 0 {
			delete(w.held, solid)
		} else {
			w.held[solid] = n
		}
	}
	return errors.Join(errs...)
}

/**
 * @brief Effective opacity of a node: deeper nodes fade slower. With
 * depthFactor = depth/maxDepth the global opacity is raised to 3 - 2*depthFactor.
 */
func DepthOpacity(global float32, depth, maxDepth int) float32 {
	depthFactor := float32(0)
	if maxDepth > 0 {
		depthFactor = float32(depth) / float32(maxDepth)
	}
	return math32.Pow(global, 3-2*depthFactor)
}

func (w *SceneGraphWalker) renderNode(v visit, geometry *metadata.Geometry, maxDepth int, globalOpacity float32, selected string) *metadata.RenderNode {
	rn := &metadata.RenderNode{
		VolumeID: v.node.VolumeName,
		SolidID:  v.node.SolidName,
		Name:     v.node.Name,
		Material: v.node.MaterialName,
		Geometry: geometry,
		World:    v.world,
		Depth:    v.depth,
		Opacity:  DepthOpacity(globalOpacity, v.depth, maxDepth),
		CullMode: metadata.FaceCullModeNone,
	}
	if rn.Opacity < 1 {
		rn.BlendMode = metadata.BlendModeTransparent
		rn.DepthWrite = false
	} else {
		rn.BlendMode = metadata.BlendModeOpaque
		rn.DepthWrite = true
	}

	if selected != "" && selected == v.node.VolumeName {
		rn.Selected = true
		rn.Color = SelectedColor
		rn.Emissive = SelectedEmissive
		rn.EmissiveIntensity = SelectedEmissiveIntensity
	} else {
		rn.Color = w.resolver.Resolve(v.node.MaterialName, v.node.Color, v.node.Density)
		rn.Emissive = AmbientEmissive
		rn.EmissiveIntensity = AmbientEmissiveIntensity
	}
	return rn
}
