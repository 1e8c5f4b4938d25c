package systems

import (
	"sort"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

// PickHit is the nearest intersection of a ray with one drawn node.
type PickHit struct {
	Node     *metadata.RenderNode
	Distance float32
}

/**
 * @brief Casts pointer rays into the drawn scene and hands the hits, nearest
 * first, to EventCodePointerHit listeners. The first listener that handles a
 * hit stops the dispatch, so nothing behind it along the ray reacts.
 */
type PickingSystem struct {
	bus *core.EventBus
}

func NewPickingSystem(bus *core.EventBus) *PickingSystem {
	return &PickingSystem{bus: bus}
}

/**
 * @brief Dispatches the hits of ray against nodes.
 *
 * @return The hit that a listener handled, and whether one did.
 */
func (ps *PickingSystem) Pick(ray math.Ray, nodes []*metadata.RenderNode) (PickHit, bool) {
	for _, hit := range IntersectNodes(ray, nodes) {
		handled := ps.bus.Fire(core.EventCodePointerHit, ps, core.EventContext{
			Volume:   hit.Node.VolumeID,
			Name:     hit.Node.Name,
			Distance: hit.Distance,
		})
		if handled {
			return hit, true
		}
	}
	return PickHit{}, false
}

// IntersectNodes returns one hit per node the ray crosses, nearest first.
func IntersectNodes(ray math.Ray, nodes []*metadata.RenderNode) []PickHit {
	var hits []PickHit
	for _, n := range nodes {
		if n.Geometry == nil || n.Geometry.Mesh == nil {
			continue
		}
		if _, ok := ray.IntersectExtents(n.WorldExtents()); !ok {
			continue
		}
		if d, ok := intersectNode(ray, n); ok {
			hits = append(hits, PickHit{Node: n, Distance: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func intersectNode(ray math.Ray, n *metadata.RenderNode) (float32, bool) {
	nearest := float32(0)
	found := false
	for i := 0; i < n.Geometry.TriangleCount(); i++ {
		a, b, c := n.Geometry.Triangle(i)
		t, ok := ray.IntersectTriangle(a.Transform(n.World), b.Transform(n.World), c.Transform(n.World))
		if ok && (!found || t < nearest) {
			nearest = t
			found = true
		}
	}
	return nearest, found
}
