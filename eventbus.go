package hakoniwa

import "reflect"

// EventBus is a type-indexed synchronous publish/subscribe hub. Systems
// subscribe to concrete event types and the World (or game code) publishes
// values of those types; handlers run in subscription order on the
// publisher's goroutine.
type EventBus struct {
	handlers map[reflect.Type][]any
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[reflect.Type][]any)}
}

// Subscribe registers a handler for events of type T.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	t := reflect.TypeFor[T]()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish delivers the event to every handler subscribed to its type, in
// subscription order. Publishing a type with no subscribers does nothing.
func Publish[T any](bus *EventBus, event T) {
	hs := bus.handlers[reflect.TypeFor[T]()]
	for _, h := range hs {
		h.(func(T))(event)
	}
}

// Clear drops all subscriptions.
func (bus *EventBus) Clear() {
	clear(bus.handlers)
}
