package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMalformedMeshErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("upload: %w", &MalformedMeshError{SolidID: "Box", Index: 9, Position: 2, VertexCount: 3})
	assert.True(t, errors.Is(err, ErrMalformedMesh))

	var mme *MalformedMeshError
	assert.True(t, errors.As(err, &mme))
	assert.Equal(t, "Box", mme.SolidID)
	assert.Contains(t, err.Error(), "index 9")
}

func TestGenerations(t *testing.T) {
	a, b := NewGeneration(), NewGeneration()
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, InvalidGeneration, a)
	assert.Len(t, a.String(), 36)
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClock()
	c.now = func() time.Time { return now }

	assert.Equal(t, 0.0, c.Tick(), "not started")

	c.Start()
	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.25, c.Tick(), 1e-9)
	now = now.Add(500 * time.Millisecond)
	assert.InDelta(t, 0.5, c.Tick(), 1e-9)

	c.Update()
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)

	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 61; i++ {
		m.Update(1.0 / 60)
	}
	fps, ms := m.Frame()
	assert.InDelta(t, 60, fps, 1)
	assert.InDelta(t, 16.67, ms, 0.01)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLogLevel(" DEBUG "))
	assert.Equal(t, WarnLevel, ParseLogLevel("warn"))
	assert.Equal(t, InfoLevel, ParseLogLevel("verbose"))
}
