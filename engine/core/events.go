package core

// Viewer event codes.
type EventCode int

const (
	// A volume became the current selection.
	/* Context usage:
	 * string volume = data.Volume
	 */
	EventCodeVolumeSelected EventCode = 0x01

	// A pointer ray hit a rendered mesh. Handlers receive hits nearest first.
	/* Context usage:
	 * string volume = data.Volume
	 * f32 distance = data.Distance
	 */
	EventCodePointerHit EventCode = 0x02

	// A new document replaced the current one.
	/* Context usage:
	 * string name = data.Name
	 */
	EventCodeDocumentLoaded EventCode = 0x03

	// A recoverable error became the current error.
	/* Context usage:
	 * error err = data.Err
	 */
	EventCodeErrorRaised EventCode = 0x04

	maxEventCode EventCode = 0xFF
)

type EventContext struct {
	Volume   string
	Name     string
	Distance float32
	Err      error
}

// Should return true if handled.
type FnOnEvent func(code EventCode, sender interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches viewer events to registered listeners in registration
// order. Each viewer owns its own bus.
type EventBus struct {
	registered [maxEventCode + 1][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 */
func (eb *EventBus) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || code > maxEventCode || onEvent == nil {
		return false
	}
	for _, e := range eb.registered[code] {
		if listener != nil && e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	eb.registered[code] = append(eb.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes the registration made by listener for code.
func (eb *EventBus) Unregister(code EventCode, listener interface{}) bool {
	if code < 0 || code > maxEventCode {
		return false
	}
	events := eb.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eb.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 */
func (eb *EventBus) Fire(code EventCode, sender interface{}, data EventContext) bool {
	if code < 0 || code > maxEventCode {
		return false
	}
	for _, e := range eb.registered[code] {
		if e.callback(code, sender, data) {
			return true
		}
	}
	return false
}

// Clear drops every registration.
func (eb *EventBus) Clear() {
	for i := range eb.registered {
		eb.registered[i] = nil
	}
}
