package metadata

import (
	"github.com/davsar89/GDML-Studio/engine/math"
)

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
	/** @brief Both front and back faces are culled. */
	FaceCullModeFrontAndBack FaceCullMode = 0x3
)

/** @brief How a node is composited into the frame. */
type BlendMode int

const (
	/** @brief Written to the depth buffer, no blending. */
	BlendModeOpaque BlendMode = iota
	/** @brief Alpha blended over what is behind it, depth buffer untouched. */
	BlendModeTransparent
)

/**
 * @brief One drawable placement produced by the scene walk.
 */
type RenderNode struct {
	VolumeID string
	SolidID  string
	Name     string
	Material string
	Geometry *Geometry
	/** @brief Local to world, row vectors. */
	World math.Mat4
	/** @brief Distance from the world volume, which is depth 0. */
	Depth int

	Opacity    float32
	BlendMode  BlendMode
	DepthWrite bool
	CullMode   FaceCullMode

	Color             Color
	Emissive          Color
	EmissiveIntensity float32
	Selected          bool
}

// WorldExtents returns the node's geometry bounds in world space.
func (rn *RenderNode) WorldExtents() math.Extents3D {
	if rn.Geometry == nil {
		return math.NewExtentsEmpty()
	}
	return rn.Geometry.Extents.Transform(rn.World)
}

/**
 * @brief The helpers drawn beneath the geometry.
 */
type GridHelper struct {
	/** @brief Edge length of the square ground grid. */
	Size float32
	/** @brief Number of cells along one edge. */
	Divisions int
	/** @brief Length of each axis arrow. */
	AxisLength float32
}

/**
 * @brief Everything a backend needs to draw one frame.
 */
type RenderPacket struct {
	DeltaTime  float64
	View       math.Mat4
	Projection math.Mat4
	Nodes      []*RenderNode
	Grid       GridHelper
	Background Color
}
