package systems

import (
	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/renderer"
)

type SystemManagerConfig struct {
	Camera     CameraSystemConfig
	JobWorkers int
	JobQueue   int
}

// SystemManager owns the systems of one viewer.
type SystemManager struct {
	GeometryCache    *GeometryCache
	MaterialResolver *MaterialColorResolver
	SceneWalker      *SceneGraphWalker
	CameraSystem     *CameraSystem
	PickingSystem    *PickingSystem
	JobSystem        *JobSystem
}

func NewSystemManager(config *SystemManagerConfig, r *renderer.Renderer, bus *core.EventBus) (*SystemManager, error) {
	js, err := NewJobSystem(config.JobWorkers, config.JobQueue)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&config.Camera)
	if err != nil {
		_ = js.Shutdown()
		return nil, err
	}
	gc := NewGeometryCache(r)
	mr := NewMaterialColorResolver()
	return &SystemManager{
		GeometryCache:    gc,
		MaterialResolver: mr,
		SceneWalker:      NewSceneGraphWalker(gc, mr),
		CameraSystem:     cs,
		PickingSystem:    NewPickingSystem(bus),
		JobSystem:        js,
	}, nil
}

// ResetDocument drops everything derived from the current document: cached
// geometry, held references, memoized colors and any pending camera fit.
func (sm *SystemManager) ResetDocument() {
	sm.GeometryCache.Clear()
	sm.SceneWalker.Reset()
	sm.MaterialResolver.Reset()
	sm.CameraSystem.CancelAutoFit()
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	sm.SceneWalker.Reset()
	if err := sm.GeometryCache.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
