package pulse

import "github.com/pulseagent/pulseagent/internal/model"

// EventKind tags an Engine -> UI notification.
type EventKind string

const (
	EventSuggestionReady     EventKind = "suggestion_ready"
	EventSuggestionDismissed EventKind = "suggestion_dismissed"
	EventExecutionError      EventKind = "execution_error"
	EventStateChanged        EventKind = "state_changed"
)

// Event is the one-way engine-to-UI notification, kept as a separate
// channel from Command so the overlay/engine wiring never needs a cyclic
// callback.
type Event struct {
	Kind       EventKind
	Suggestion *model.Suggestion
	Message    string
	Previous   model.PulseState
	Current    model.PulseState
}

// CommandKind tags a UI -> Engine request.
type CommandKind string

const (
	CommandApprove CommandKind = "approve"
	CommandDismiss CommandKind = "dismiss"
)

// Command is the one-way UI-to-engine request channel counterpart to
// Event.
type Command struct {
	Kind CommandKind
}

// EventBus is a small non-blocking fan-out of Events to whatever UI
// collaborator (overlay, hotkey listener, tray) is currently listening. A
// full channel drops the event rather than blocking the engine's tick —
// the UI is a best-effort observer, never a synchronization point for the
// pipeline.
type EventBus struct {
	ch chan Event
}

// NewEventBus builds a bus with the given buffer size.
func NewEventBus(buffer int) *EventBus {
	if buffer <= 0 {
		buffer = 8
	}
	return &EventBus{ch: make(chan Event, buffer)}
}

// Events exposes the receive-only channel for UI subscribers.
func (b *EventBus) Events() <-chan Event {
	return b.ch
}

// Publish emits an event, dropping it silently if the buffer is full.
func (b *EventBus) Publish(e Event) {
	select {
	case b.ch <- e:
	default:
	}
}
