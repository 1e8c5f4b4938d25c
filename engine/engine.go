package engine

import (
	"fmt"
	"path/filepath"

	"github.com/davsar89/GDML-Studio/engine/assets"
	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/renderer"
	"github.com/davsar89/GDML-Studio/engine/renderer/components"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
	"github.com/davsar89/GDML-Studio/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Background behind the scene.
var BackgroundColor = metadata.Color{Value: "#0d1117", R: 0x0d / 255.0, G: 0x11 / 255.0, B: 0x17 / 255.0}

/**
 * @brief The viewer: holds the loaded document and the view state, and turns
 * both into one render packet per frame. All methods must be called from the
 * goroutine that calls Frame.
 */
type Engine struct {
	currentStage  Stage
	config        *ApplicationConfig
	renderer      *renderer.Renderer
	systemManager *systems.SystemManager
	bus           *core.EventBus
	clock         *core.Clock
	metrics       *core.Metrics
	loader        assets.Loader
	watcher       *assets.DocumentWatcher

	document     *metadata.Document
	documentPath string
	generation   core.Generation
	visibility   *metadata.VisibilityState
	grid         metadata.GridHelper
	nodes        []*metadata.RenderNode
	tick         uint64
	loading      bool
	currentErr   error

	width  uint32
	height uint32
}

func New(config *ApplicationConfig, backend renderer.RendererBackend) (*Engine, error) {
	if err := config.Validate(); err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	bus := core.NewEventBus()
	r := renderer.New(backend)

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		Camera: systems.CameraSystemConfig{
			FOV:           config.Camera.FOV,
			Near:          config.Camera.Near,
			Far:           config.Camera.Far,
			Position:      config.cameraPosition(),
			OrbitDuration: config.Camera.OrbitDuration,
		},
		JobWorkers: config.JobWorkers,
		JobQueue:   4,
	}, r, bus)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	visibility := metadata.NewVisibilityState()
	visibility.Opacity = config.Opacity

	return &Engine{
		currentStage:  EngineStageUninitialized,
		config:        config,
		renderer:      r,
		systemManager: sm,
		bus:           bus,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		loader:        assets.JSONLoader{},
		generation:    core.InvalidGeneration,
		visibility:    visibility,
		grid:          systems.DefaultGrid(),
		width:         config.StartWidth,
		height:        config.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	if err := e.renderer.Initialize(e.config.Name, e.width, e.height); err != nil {
		return err
	}
	e.systemManager.CameraSystem.Camera.SetAspect(float32(e.width) / float32(e.height))

	// A pointer hit selects the nearest volume and stops there.
	e.bus.Register(core.EventCodePointerHit, e, e.onPointerHit)

	e.clock.Start()
	e.currentStage = EngineStageInitialized
	return nil
}

// Step runs one frame timed by the engine clock.
func (e *Engine) Step() error {
	return e.Frame(e.clock.Tick())
}

/**
 * @brief Advances the viewer by one frame: finishes background loads, walks
 * the scene, runs a due camera fit and draws.
 *
 * @param deltaTime Seconds since the previous frame.
 */
func (e *Engine) Frame(deltaTime float64) error {
	if e.currentStage == EngineStageUninitialized || e.currentStage == EngineStageShuttingDown {
		return fmt.Errorf("engine cannot draw in stage %d", e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.tick++

	e.systemManager.JobSystem.Update()
	e.pollWatcher()

	cs := e.systemManager.CameraSystem
	cs.Orbit.Update(float32(deltaTime))

	nodes, err := e.systemManager.SceneWalker.Walk(e.document, e.visibility)
	if err != nil {
		e.setError(err)
	}
	e.nodes = nodes

	cs.RunDue(e.generation, e.tick, nodes)

	packet := &metadata.RenderPacket{
		DeltaTime:  deltaTime,
		View:       cs.Camera.GetView(),
		Projection: cs.Camera.GetProjection(),
		Nodes:      nodes,
		Grid:       e.grid,
		Background: BackgroundColor,
	}
	if err := e.renderer.DrawFrame(packet); err != nil {
		return err
	}
	e.metrics.Update(deltaTime)
	return nil
}

/**
 * @brief Replaces the current document. Everything derived from the previous
 * one is dropped first: cached geometry, pending camera fit, selection,
 * hidden volumes and the current error.
 */
func (e *Engine) LoadDocument(doc *metadata.Document) error {
	if doc == nil || doc.SceneGraph == nil {
		return core.ErrEmptyDocument
	}
	e.systemManager.ResetDocument()
	e.visibility.Reset()
	e.visibility.Opacity = e.config.Opacity
	e.currentErr = nil
	e.nodes = nil

	e.document = doc
	e.generation = core.NewGeneration()
	e.grid = systems.ComputeGrid(doc.Meshes)
	e.systemManager.CameraSystem.ScheduleAutoFit(e.generation, e.tick)

	s := doc.Summary()
	core.LogInfo("loaded '%s': %d volumes, %d solids, %d meshes, %d triangles",
		s.Name, s.VolumeCount, s.SolidCount, s.MeshCount, s.TriangleSize)
	e.bus.Fire(core.EventCodeDocumentLoaded, e, core.EventContext{Name: doc.Name})
	return nil
}

/**
 * @brief Reads a document file on the job system. The document replaces the
 * current one during a later Frame; failures become the current error.
 */
func (e *Engine) LoadDocumentFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	err = e.systemManager.JobSystem.Submit(systems.JobTask{
		InputParams: abs,
		OnStart: func(params interface{}) (interface{}, error) {
			return e.loader.Load(params.(string))
		},
		OnComplete: func(result interface{}) {
			e.loading = false
			if err := e.LoadDocument(result.(*metadata.Document)); err != nil {
				e.setError(err)
				return
			}
			e.documentPath = abs
			e.watch(abs)
		},
		OnFailure: func(err error) {
			e.loading = false
			e.setError(err)
		},
	})
	if err != nil {
		return err
	}
	e.loading = true
	return nil
}

// Reload reads the current document's file again. It does nothing while a
// load is already in flight.
func (e *Engine) Reload() error {
	if e.documentPath == "" {
		return core.ErrNoDocument
	}
	if e.loading {
		return nil
	}
	return e.LoadDocumentFile(e.documentPath)
}

// UnloadDocument drops the document and everything derived from it.
func (e *Engine) UnloadDocument() {
	e.systemManager.SceneWalker.ReleaseAll()
	e.systemManager.ResetDocument()
	e.visibility.Reset()
	e.visibility.Opacity = e.config.Opacity
	e.document = nil
	e.documentPath = ""
	e.nodes = nil
	e.generation = core.InvalidGeneration
	e.grid = systems.DefaultGrid()
}

func (e *Engine) watch(path string) {
	if !e.config.Watch {
		return
	}
	if e.watcher == nil {
		w, err := assets.NewDocumentWatcher()
		if err != nil {
			core.LogWarn("file watching disabled: %s", err)
			e.config.Watch = false
			return
		}
		e.watcher = w
	}
	if err := e.watcher.Add(path); err != nil {
		core.LogWarn("cannot watch %s: %s", path, err)
	}
}

func (e *Engine) pollWatcher() {
	if e.watcher == nil {
		return
	}
	select {
	case path, ok := <-e.watcher.Changes():
		if ok && path == e.documentPath && !e.loading {
			core.LogInfo("%s changed, reloading", path)
			if err := e.Reload(); err != nil {
				e.setError(err)
			}
		}
	default:
	}
}

// Select makes volume the current selection; an empty volume clears it.
func (e *Engine) Select(volume string) {
	if e.visibility.Selected == volume {
		return
	}
	e.visibility.Selected = volume
	e.bus.Fire(core.EventCodeVolumeSelected, e, core.EventContext{Volume: volume})
}

func (e *Engine) Selected() string {
	return e.visibility.Selected
}

func (e *Engine) SetHidden(volume string, hidden bool) {
	e.visibility.SetHidden(volume, hidden)
}

func (e *Engine) ToggleHidden(volume string) {
	e.visibility.SetHidden(volume, !e.visibility.IsHidden(volume))
}

func (e *Engine) IsHidden(volume string) bool {
	return e.visibility.IsHidden(volume)
}

func (e *Engine) ShowAll() {
	e.visibility.Hidden = make(map[string]struct{})
}

func (e *Engine) SetOpacity(opacity float32) error {
	if opacity < 0 || opacity > 1 {
		return core.ErrInvalidOpacity
	}
	e.visibility.Opacity = opacity
	return nil
}

func (e *Engine) Opacity() float32 {
	return e.visibility.Opacity
}

/**
 * @brief Casts a ray through a viewport point in normalized device
 * coordinates and selects the nearest volume it hits.
 *
 * @return The selected volume, and false if nothing was hit.
 */
func (e *Engine) PickAt(ndcX, ndcY float32) (string, bool) {
	ray := e.systemManager.CameraSystem.Camera.RayFromNDC(ndcX, ndcY)
	hit, ok := e.systemManager.PickingSystem.Pick(ray, e.nodes)
	if !ok {
		return "", false
	}
	return hit.Node.VolumeID, true
}

func (e *Engine) onPointerHit(code core.EventCode, sender interface{}, data core.EventContext) bool {
	e.Select(data.Volume)
	return true
}

// RequestAutoFit schedules a camera fit to the drawn meshes on the next frame.
func (e *Engine) RequestAutoFit() {
	e.systemManager.CameraSystem.ScheduleAutoFit(e.generation, e.tick)
}

func (e *Engine) setError(err error) {
	e.currentErr = err
	core.LogWarn("%s", err)
	e.bus.Fire(core.EventCodeErrorRaised, e, core.EventContext{Err: err})
}

// CurrentError returns the error shown to the user, if any.
func (e *Engine) CurrentError() error {
	return e.currentErr
}

func (e *Engine) DismissError() {
	e.currentErr = nil
}

func (e *Engine) OnResize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	e.width, e.height = width, height
	e.systemManager.CameraSystem.Camera.SetAspect(float32(width) / float32(height))
	return e.renderer.OnResize(uint16(width), uint16(height))
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("%s", err)
		}
	}
	e.bus.Clear()
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	return nil
}

func (e *Engine) Document() *metadata.Document {
	return e.document
}

func (e *Engine) DocumentPath() string {
	return e.documentPath
}

func (e *Engine) Loading() bool {
	return e.loading
}

func (e *Engine) Nodes() []*metadata.RenderNode {
	return e.nodes
}

func (e *Engine) Grid() metadata.GridHelper {
	return e.grid
}

func (e *Engine) Generation() core.Generation {
	return e.generation
}

func (e *Engine) Tick() uint64 {
	return e.tick
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Bus() *core.EventBus {
	return e.bus
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Camera() *components.Camera {
	return e.systemManager.CameraSystem.Camera
}

func (e *Engine) Orbit() *components.OrbitControls {
	return e.systemManager.CameraSystem.Orbit
}

func (e *Engine) Systems() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) Visibility() *metadata.VisibilityState {
	return e.visibility
}
