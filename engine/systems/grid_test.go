package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davsar89/GDML-Studio/engine/assets"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

func TestGridSize(t *testing.T) {
	assert.Equal(t, float32(1), GridSize(0.3))
	assert.Equal(t, float32(100), GridSize(45))
	assert.Equal(t, float32(100), GridSize(50))
	assert.Equal(t, float32(1000), GridSize(50.1))
	assert.InDelta(t, 0.1, GridSize(0.04), 1e-6)
}

func TestComputeGrid(t *testing.T) {
	grid := ComputeGrid(map[string]*metadata.MeshData{
		"Small": assets.GenerateBoxMesh(10, 10, 10),
		"Big":   assets.GenerateBoxMesh(400, 20, 20),
	})
	assert.Equal(t, float32(1000), grid.Size)
	assert.Equal(t, 20, grid.Divisions)
	assert.Equal(t, float32(100), grid.AxisLength)

	grid = ComputeGrid(map[string]*metadata.MeshData{"Tiny": assets.GenerateBoxMesh(3, 3, 3)})
	assert.Equal(t, float32(10), grid.Size)
	assert.Equal(t, float32(1), grid.AxisLength)
}

func TestDefaultGrid(t *testing.T) {
	assert.Equal(t, DefaultGrid(), ComputeGrid(nil))
	assert.Equal(t, metadata.GridHelper{Size: 1000, Divisions: 20, AxisLength: 100}, DefaultGrid())
}
