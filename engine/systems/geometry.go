package systems

import (
	"fmt"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

type geometryReference struct {
	ReferenceCount uint32
	Geometry       *metadata.Geometry
}

/**
 * @brief Owns the backend buffers built from solid meshes, keyed by solid
 * identity. Volumes placing the same solid share one buffer, which is
 * destroyed when the last reference is released.
 */
type GeometryCache struct {
	renderer *renderer.Renderer
	entries  map[string]*geometryReference
	nextID   uint32
}

func NewGeometryCache(r *renderer.Renderer) *GeometryCache {
	return &GeometryCache{
		renderer: r,
		entries:  make(map[string]*geometryReference),
	}
}

/**
 * @brief Acquires the geometry for a solid. The first acquire validates and
 * uploads mesh; later acquires share the existing buffer and only bump the
 * reference count.
 *
 * @param solidID The solid identity the geometry is cached under.
 * @param mesh The solid's buffers. Only read on the first acquire.
 * @return The shared geometry, or an error if the mesh is malformed or could not be uploaded.
 */
func (gc *GeometryCache) Acquire(solidID string, mesh *metadata.MeshData) (*metadata.Geometry, error) {
	if ref, ok := gc.entries[solidID]; ok {
		ref.ReferenceCount++
		return ref.Geometry, nil
	}
	if mesh == nil {
		return nil, fmt.Errorf("no mesh data for solid '%s'", solidID)
	}
	if err := mesh.Validate(solidID); err != nil {
		return nil, err
	}

	extents := math.GeometryExtents(mesh.Positions)
	geometry := &metadata.Geometry{
		ID:          gc.nextID,
		SolidID:     solidID,
		VertexCount: uint32(mesh.VertexCount()),
		IndexCount:  uint32(len(mesh.Indices)),
		Center:      extents.Center(),
		Extents:     extents,
		Mesh:        mesh,
	}
	if err := gc.renderer.CreateGeometry(geometry, mesh); err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	gc.nextID++
	gc.entries[solidID] = &geometryReference{
		ReferenceCount: 1,
		Geometry:       geometry,
	}
	core.LogDebug("geometry '%s' uploaded (id=%d, vertices=%d)", solidID, geometry.ID, geometry.VertexCount)
	return geometry, nil
}

/**
 * @brief Releases one reference to a solid's geometry, destroying it when no
 * references remain. Releasing an unknown solid does nothing.
 */
func (gc *GeometryCache) Release(solidID string) {
	ref, ok := gc.entries[solidID]
	if !ok {
		core.LogDebug("release of unknown geometry '%s' ignored", solidID)
		return
	}
	ref.ReferenceCount--
	if ref.ReferenceCount == 0 {
		gc.renderer.DestroyGeometry(ref.Geometry)
		delete(gc.entries, solidID)
		core.LogDebug("geometry '%s' destroyed", solidID)
	}
}

// Clear destroys every geometry regardless of its reference count.
func (gc *GeometryCache) Clear() {
	for solidID, ref := range gc.entries {
		gc.renderer.DestroyGeometry(ref.Geometry)
		delete(gc.entries, solidID)
	}
}

// Get returns the cached geometry for a solid without taking a reference.
func (gc *GeometryCache) Get(solidID string) (*metadata.Geometry, bool) {
	ref, ok := gc.entries[solidID]
	if !ok {
		return nil, false
	}
	return ref.Geometry, true
}

func (gc *GeometryCache) RefCount(solidID string) uint32 {
	if ref, ok := gc.entries[solidID]; ok {
		return ref.ReferenceCount
	}
	return 0
}

func (gc *GeometryCache) Len() int {
	return len(gc.entries)
}

func (gc *GeometryCache) Shutdown() error {
	gc.Clear()
	return nil
}
