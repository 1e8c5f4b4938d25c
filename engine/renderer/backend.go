package renderer

import "github.com/davsar89/GDML-Studio/engine/renderer/metadata"

// RendererBackend is implemented by every drawing surface the viewer can
// target.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint16) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	// CreateGeometry uploads mesh into backend storage and records it in
	// geometry.InternalData.
	CreateGeometry(geometry *metadata.Geometry, mesh *metadata.MeshData) error
	DestroyGeometry(geometry *metadata.Geometry)
	DrawNodes(packet *metadata.RenderPacket) error
}
