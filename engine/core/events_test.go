package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusStopsAtFirstHandler(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	first, second, third := new(int), new(int), new(int)
	assert.True(t, bus.Register(EventCodePointerHit, first, func(EventCode, interface{}, EventContext) bool {
		calls = append(calls, "first")
		return false
	}))
	assert.True(t, bus.Register(EventCodePointerHit, second, func(_ EventCode, _ interface{}, data EventContext) bool {
		calls = append(calls, "second:"+data.Volume)
		return true
	}))
	assert.True(t, bus.Register(EventCodePointerHit, third, func(EventCode, interface{}, EventContext) bool {
		calls = append(calls, "third")
		return true
	}))

	assert.True(t, bus.Fire(EventCodePointerHit, nil, EventContext{Volume: "Detector"}))
	assert.Equal(t, []string{"first", "second:Detector"}, calls)
}

func TestEventBusRegistration(t *testing.T) {
	bus := NewEventBus()
	listener := new(int)
	noop := func(EventCode, interface{}, EventContext) bool { return true }

	assert.True(t, bus.Register(EventCodeVolumeSelected, listener, noop))
	assert.False(t, bus.Register(EventCodeVolumeSelected, listener, noop), "duplicate listener")
	assert.False(t, bus.Register(EventCodeVolumeSelected, listener, nil))
	assert.False(t, bus.Register(maxEventCode+1, listener, noop))

	assert.True(t, bus.Fire(EventCodeVolumeSelected, nil, EventContext{}))
	assert.False(t, bus.Fire(EventCodeDocumentLoaded, nil, EventContext{}), "nobody listens")

	assert.True(t, bus.Unregister(EventCodeVolumeSelected, listener))
	assert.False(t, bus.Unregister(EventCodeVolumeSelected, listener))
	assert.False(t, bus.Fire(EventCodeVolumeSelected, nil, EventContext{}))
}

func TestEventBusClear(t *testing.T) {
	bus := NewEventBus()
	bus.Register(EventCodeErrorRaised, nil, func(EventCode, interface{}, EventContext) bool { return true })
	bus.Clear()
	assert.False(t, bus.Fire(EventCodeErrorRaised, nil, EventContext{}))
}
