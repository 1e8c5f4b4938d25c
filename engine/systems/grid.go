package systems

import (
	"github.com/chewxy/math32"

	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

const (
	DefaultGridSize      float32 = 1000
	DefaultGridDivisions int     = 20
	axisLengthFactor     float32 = 0.1
)

// DefaultGrid is used while no meshes are loaded.
func DefaultGrid() metadata.GridHelper {
	return metadata.GridHelper{
		Size:       DefaultGridSize,
		Divisions:  DefaultGridDivisions,
		AxisLength: DefaultGridSize * axisLengthFactor,
	}
}

/**
 * @brief Sizes the ground grid to the loaded meshes: the smallest power of
 * ten at least twice the largest absolute vertex coordinate. Axis helpers are
 * a tenth of the grid.
 */
func ComputeGrid(meshes map[string]*metadata.MeshData) metadata.GridHelper {
	var maxAbs float32
	for _, m := range meshes {
		for _, p := range m.Positions {
			if a := math32.Abs(p); a > maxAbs {
				maxAbs = a
			}
		}
	}
	if maxAbs == 0 {
		return DefaultGrid()
	}
	size := GridSize(maxAbs)
	return metadata.GridHelper{
		Size:       size,
		Divisions:  DefaultGridDivisions,
		AxisLength: size * axisLengthFactor,
	}
}

// GridSize returns the smallest power of ten >= 2*maxAbs.
func GridSize(maxAbs float32) float32 {
	target := 2 * maxAbs
	size := float32(1)
	for size < target {
		size *= 10
	}
	for size/10 >= target && size > 1e-6 {
		size /= 10
	}
	return size
}
