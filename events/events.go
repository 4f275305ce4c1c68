package events

import (
	"reflect"
	"sync"
)

// EventType returns the event type of a given event data structure, used as a key for global event subscriptions.
func EventType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// EventHandler defines a function type which takes a generic event data type and returns an error, if one occurred
// while handling the event.
type EventHandler[T any] func(T) error

// globalEventHandlers describes a mapping of event types to EventHandler objects. These callbacks are called
// any time any EventEmitter publishes an event of that type.
var globalEventHandlers map[reflect.Type][]any

// globalEventHandlersLock is a lock that provides thread synchronization when accessing globalEventHandlers. This
// helps in avoiding concurrent access panics.
var globalEventHandlersLock sync.Mutex

// SubscribeAny adds an EventHandler to the list of global EventHandler objects for a given event data type.
// When an event is published, the callback will be triggered with the event data.
// Note: An EventHandler subscribed here will remain throughout program execution. Objects which should be freed from
// memory should not use this method to avoid memory leaks.
func SubscribeAny[T any](callback EventHandler[T]) {
	// Acquire a thread lock for the next few operations to avoid concurrent access panics.
	globalEventHandlersLock.Lock()
	defer globalEventHandlersLock.Unlock()

	// If our global event handlers are nil, instantiate them.
	if globalEventHandlers == nil {
		globalEventHandlers = make(map[reflect.Type][]any)
	}

	// Add our callback to the event handlers list for events of this type.
	eventType := EventType[T]()
	globalEventHandlers[eventType] = append(globalEventHandlers[eventType], callback)
}

// EventEmitter describes a provider which can subscribe EventHandler methods for callback when the event type (generic)
// is published. It additionally provides methods for publishing events.
type EventEmitter[T any] struct {
	// subscriptions defines the EventHandler methods which should be invoked when a new event is published to this
	// emitter.
	subscriptions []EventHandler[T]
}

// Publish emits the provided event by calling every subscribed EventHandler, followed by every relevant global
// EventHandler. Returns the first error returned by a handler, if any, at which point publishing stops.
func (e *EventEmitter[T]) Publish(event T) error {
	// Call every subscribed EventHandler
	for _, subscription := range e.subscriptions {
		err := subscription(event)
		if err != nil {
			return err
		}
	}

	// If we have any global handlers for this event type, invoke them as well.
	globalEventHandlersLock.Lock()
	callbacks := globalEventHandlers[EventType[T]()]
	globalEventHandlersLock.Unlock()
	for _, callback := range callbacks {
		err := callback.(EventHandler[T])(event)
		if err != nil {
			return err
		}
	}
	return nil
}

// Subscribe adds an EventHandler to the list of subscribed EventHandler objects for this emitter. When an event is
// published, the callback will be triggered with the event data.
func (e *EventEmitter[T]) Subscribe(callback EventHandler[T]) {
	e.subscriptions = append(e.subscriptions, callback)
}
