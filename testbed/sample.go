// Package testbed holds a small built-in document used when the viewer is
// started without a file and by the package tests.
package testbed

import (
	"github.com/davsar89/GDML-Studio/engine/assets"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

func ptr[T any](v T) *T {
	return &v
}

// SampleDocument builds a toy detector: a world box holding an experimental
// hall, a rotated detector with two lead layers sharing one solid, and an
// envelope volume without a mesh whose children still render.
func SampleDocument() *metadata.Document {
	layer := &metadata.SceneNode{
		Name:         "Layer_PV_0",
		VolumeName:   "Layer",
		SolidName:    "LayerBox",
		MaterialName: "Lead",
		Density:      ptr(11.35),
		Position:     [3]float64{0, 0, -30},
	}
	layer2 := &metadata.SceneNode{
		Name:         "Layer_PV_1",
		VolumeName:   "Layer2",
		SolidName:    "LayerBox",
		MaterialName: "Lead",
		Density:      ptr(11.35),
		Position:     [3]float64{0, 0, 30},
	}
	scintillator := &metadata.SceneNode{
		Name:         "Scint_PV",
		VolumeName:   "Scintillator",
		SolidName:    "ScintBox",
		MaterialName: "G4_PLASTIC_SC_VINYLTOLUENE",
		Color:        ptr("3399FF"),
		Density:      ptr(1.032),
	}
	envelope := &metadata.SceneNode{
		Name:         "Envelope_PV",
		VolumeName:   "Envelope",
		SolidName:    "EnvelopeShape",
		MaterialName: "G4_Galactic",
		Position:     [3]float64{0, 80, 0},
		Children: []*metadata.SceneNode{
			{
				Name:         "Readout_PV",
				VolumeName:   "Readout",
				SolidName:    "ReadoutBox",
				MaterialName: "G4_Si",
				Density:      ptr(2.33),
			},
		},
	}
	detector := &metadata.SceneNode{
		Name:         "Detector_PV",
		VolumeName:   "Detector",
		SolidName:    "DetectorBox",
		MaterialName: "G4_AIR",
		Density:      ptr(0.0012),
		Rotation:     [3]float64{0, 0.5235987756, 0},
		Children:     []*metadata.SceneNode{layer, scintillator, layer2},
	}
	hall := &metadata.SceneNode{
		Name:         "Hall_PV",
		VolumeName:   "Hall",
		SolidName:    "HallBox",
		MaterialName: "G4_AIR",
		Density:      ptr(0.0012),
		Children:     []*metadata.SceneNode{detector, envelope},
	}
	world := &metadata.SceneNode{
		Name:         "World",
		VolumeName:   "World",
		SolidName:    "WorldBox",
		MaterialName: "G4_Galactic",
		IsWorld:      true,
		Children:     []*metadata.SceneNode{hall},
	}

	return &metadata.Document{
		Name:       "sample",
		SceneGraph: world,
		Meshes: map[string]*metadata.MeshData{
			"WorldBox":    assets.GenerateBoxMesh(600, 600, 600),
			"HallBox":     assets.GenerateBoxMesh(400, 240, 400),
			"DetectorBox": assets.GenerateBoxMesh(120, 120, 100),
			"LayerBox":    assets.GenerateBoxMesh(100, 100, 10),
			"ScintBox":    assets.GenerateBoxMesh(100, 100, 20),
			"ReadoutBox":  assets.GenerateBoxMesh(60, 10, 60),
		},
	}
}
