package renderer

import (
	"fmt"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

type RendererType uint8

const (
	Terminal RendererType = iota
	Headless
)

// Renderer owns one backend. Each viewer builds its own.
type Renderer struct {
	backend RendererBackend
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(appName, appWidth, appHeight)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint16) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("%s", err)
		return err
	}
	if err := r.backend.DrawNodes(renderPacket); err != nil {
		core.LogError("failed to draw %d nodes: %s", len(renderPacket.Nodes), err)
		return err
	}
	if err := r.backend.EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed: %s", err)
		return err
	}
	return nil
}

func (r *Renderer) CreateGeometry(geometry *metadata.Geometry, mesh *metadata.MeshData) error {
	if err := r.backend.CreateGeometry(geometry, mesh); err != nil {
		return fmt.Errorf("failed to create geometry for solid '%s': %w", geometry.SolidID, err)
	}
	return nil
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	r.backend.DestroyGeometry(geometry)
}
