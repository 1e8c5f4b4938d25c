package testbed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleDocument(t *testing.T) {
	doc := SampleDocument()
	s := doc.Summary()
	assert.Equal(t, 8, s.VolumeCount)
	assert.Equal(t, 7, s.SolidCount)
	assert.Equal(t, 6, s.MeshCount)
	assert.Equal(t, 72, s.TriangleSize)
	assert.Equal(t, 3, s.MaxDepth)

	for solid, mesh := range doc.Meshes {
		assert.NoError(t, mesh.Validate(solid))
	}
	_, ok := doc.Meshes["EnvelopeShape"]
	assert.False(t, ok, "the envelope has no mesh")
}
