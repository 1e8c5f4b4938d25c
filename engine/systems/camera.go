package systems

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/components"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

const (
	// Extra room around the fitted box.
	fitMargin float32 = 1.5
	// Clip planes as fractions of the largest box dimension.
	fitNearFactor float32 = 0.001
	fitFarFactor  float32 = 20
)

// Three-quarter view direction the camera is placed along after a fit.
var fitDirection = math.NewVec3(0.6, 0.5, 0.7)

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief Vertical field of view in degrees. */
	FOV  float32
	Near float32
	Far  float32
	/** @brief Camera position before any document is fitted. */
	Position math.Vec3
	/** @brief Duration of animated orbit steps in seconds. */
	OrbitDuration float32
}

type autoFitTask struct {
	generation core.Generation
	dueTick    uint64
}

/** @brief Result of fitting the camera to a bounding box. */
type CameraFit struct {
	Position math.Vec3
	Target   math.Vec3
	Distance float32
	Near     float32
	Far      float32
}

type CameraSystem struct {
	Config *CameraSystemConfig
	Camera *components.Camera
	Orbit  *components.OrbitControls

	pending *autoFitTask
}

/**
 * @brief Initializes the camera system.
 *
 * @param config The configuration for this system.
 * @return The camera system, or an error if the configuration is unusable.
 */
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.FOV <= 0 || config.FOV >= 180 {
		err := fmt.Errorf("func NewCameraSystem - config.FOV must be within (0, 180), got %f", config.FOV)
		core.LogError("%s", err)
		return nil, err
	}
	if config.Near <= 0 || config.Far <= config.Near {
		err := fmt.Errorf("func NewCameraSystem - invalid clip planes near=%f far=%f", config.Near, config.Far)
		core.LogError("%s", err)
		return nil, err
	}
	cs := &CameraSystem{Config: config}
	cs.Reset()
	return cs, nil
}

// Reset puts the camera back to its configured start and drops any pending fit.
func (cs *CameraSystem) Reset() {
	cs.pending = nil
	cs.Camera = components.NewCamera()
	cs.Camera.FOV = cs.Config.FOV
	cs.Camera.SetClipPlanes(cs.Config.Near, cs.Config.Far)
	cs.Camera.SetPosition(cs.Config.Position)
	cs.Camera.LookAt(math.NewVec3Zero())
	cs.Orbit = components.NewOrbitControls(cs.Camera)
	cs.Orbit.Duration = cs.Config.OrbitDuration
}

func (cs *CameraSystem) Shutdown() error {
	cs.pending = nil
	return nil
}

/**
 * @brief Schedules an auto-fit to run on the tick after the current one.
 * A pending fit that has not run yet is replaced.
 *
 * @param generation The document generation the fit belongs to.
 * @param tick The current frame tick.
 */
func (cs *CameraSystem) ScheduleAutoFit(generation core.Generation, tick uint64) {
	cs.pending = &autoFitTask{generation: generation, dueTick: tick + 1}
}

func (cs *CameraSystem) CancelAutoFit() {
	cs.pending = nil
}

func (cs *CameraSystem) AutoFitPending() bool {
	return cs.pending != nil
}

/**
 * @brief Runs the pending auto-fit if it is due. A fit scheduled for another
 * document generation is dropped without touching the camera.
 *
 * @return True if the camera was moved.
 */
func (cs *CameraSystem) RunDue(current core.Generation, tick uint64, nodes []*metadata.RenderNode) bool {
	task := cs.pending
	if task == nil || tick < task.dueTick {
		return false
	}
	cs.pending = nil
	if task.generation != current {
		core.LogDebug("dropping stale auto-fit for generation %s", task.generation)
		return false
	}
	fit, ok := ComputeCameraFit(RenderedExtents(nodes), cs.Camera.FOV)
	if !ok {
		return false
	}
	cs.ApplyFit(fit)
	return true
}

// ApplyFit moves the camera and the orbit pivot to a computed fit.
func (cs *CameraSystem) ApplyFit(fit CameraFit) {
	cs.Camera.SetPosition(fit.Position)
	cs.Camera.SetClipPlanes(fit.Near, fit.Far)
	cs.Orbit.SetTarget(fit.Target)
	core.LogDebug("camera fitted: distance=%.3f near=%.4f far=%.1f", fit.Distance, fit.Near, fit.Far)
}

// RenderedExtents is the world-space box around every drawn node.
func RenderedExtents(nodes []*metadata.RenderNode) math.Extents3D {
	box := math.NewExtentsEmpty()
	for _, n := range nodes {
		box = box.Union(n.WorldExtents())
	}
	return box
}

/**
 * @brief Computes where the camera goes to frame box.
 *
 * @param box The world-space box to frame.
 * @param fovDegrees The camera's vertical field of view.
 * @return The fit, and false when box is empty.
 */
func ComputeCameraFit(box math.Extents3D, fovDegrees float32) (CameraFit, bool) {
	if box.IsEmpty() {
		return CameraFit{}, false
	}
	center := box.Center()
	maxDim := box.Size().MaxComponent()
	distance := maxDim / (2 * math32.Tan(math.DegToRad(fovDegrees)/2)) * fitMargin
	return CameraFit{
		Position: center.Add(fitDirection.MulScalar(distance)),
		Target:   center,
		Distance: distance,
		Near:     maxDim * fitNearFactor,
		Far:      maxDim * fitFarFactor,
	}, true
}
