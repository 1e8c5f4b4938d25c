package headless

import (
	"fmt"

	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

// Backend keeps geometry in memory and draws nothing. It is used for batch
// runs and by tests, which inspect what it recorded.
type Backend struct {
	Width, Height uint32

	// Live geometries by ID.
	Geometries map[uint32]*metadata.Geometry
	Created    int
	Destroyed  int
	Frames     int
	LastPacket *metadata.RenderPacket

	// FailCreate makes CreateGeometry return an error for the named solid.
	FailCreate map[string]bool

	inFrame bool
}

func New() *Backend {
	return &Backend{
		Geometries: make(map[uint32]*metadata.Geometry),
		FailCreate: make(map[string]bool),
	}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	b.Width, b.Height = appWidth, appHeight
	return nil
}

func (b *Backend) Shutdown() error {
	for id := range b.Geometries {
		delete(b.Geometries, id)
	}
	return nil
}

func (b *Backend) Resized(width, height uint16) error {
	b.Width, b.Height = uint32(width), uint32(height)
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	if b.inFrame {
		return fmt.Errorf("frame already in progress")
	}
	b.inFrame = true
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	if !b.inFrame {
		return fmt.Errorf("no frame in progress")
	}
	b.inFrame = false
	b.Frames++
	return nil
}

func (b *Backend) CreateGeometry(geometry *metadata.Geometry, mesh *metadata.MeshData) error {
	if b.FailCreate[geometry.SolidID] {
		return fmt.Errorf("backend refused geometry")
	}
	if _, ok := b.Geometries[geometry.ID]; ok {
		return fmt.Errorf("geometry %d already uploaded", geometry.ID)
	}
	geometry.InternalData = mesh
	b.Geometries[geometry.ID] = geometry
	b.Created++
	return nil
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {
	if _, ok := b.Geometries[geometry.ID]; !ok {
		return
	}
	delete(b.Geometries, geometry.ID)
	geometry.InternalData = nil
	b.Destroyed++
}

func (b *Backend) DrawNodes(packet *metadata.RenderPacket) error {
	b.LastPacket = packet
	return nil
}
