package events

import (
	"fmt"
	"sort"
	"sync"
)

// EventBus manages event listeners and dispatches events
type EventBus struct {
	listeners map[EventType][]EventListener
	wildcard  []EventListener
	mu        sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventListener),
	}
}

// Subscribe adds a listener for a specific event type
func (eb *EventBus) Subscribe(eventType EventType, listener EventListener) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.listeners[eventType] = append(eb.listeners[eventType], listener)
}

// SubscribeAll adds a listener that receives every event type
func (eb *EventBus) SubscribeAll(listener EventListener) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.wildcard = append(eb.wildcard, listener)
}

// Unsubscribe removes a listener for a specific event type
func (eb *EventBus) Unsubscribe(eventType EventType, listener EventListener) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.listeners[eventType] = remove(eb.listeners[eventType], listener)
}

// UnsubscribeAll removes a wildcard listener
func (eb *EventBus) UnsubscribeAll(listener EventListener) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.wildcard = remove(eb.wildcard, listener)
}

func remove(listeners []EventListener, listener EventListener) []EventListener {
	for i, l := range listeners {
		if l == listener {
			return append(listeners[:i:i], listeners[i+1:]...)
		}
	}
	return listeners
}

// Emit fires an event to all registered listeners in priority order.
// Listeners with equal priority run in subscription order, typed
// subscriptions before wildcard ones.
func (eb *EventBus) Emit(event *GameEvent) error {
	if event == nil {
		return fmt.Errorf("cannot emit nil event")
	}

	listeners := eb.getListeners(event.Type)
	if len(listeners) == 0 {
		return nil
	}

	sort.SliceStable(listeners, func(i, j int) bool {
		return listeners[i].Priority() < listeners[j].Priority()
	})

	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("error handling event %s: %w", event.Type, err)
		}
		if event.Cancelled {
			break
		}
	}

	return nil
}

// getListeners returns a copy of listeners for a specific event type
func (eb *EventBus) getListeners(eventType EventType) []EventListener {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	typed := eb.listeners[eventType]
	if len(typed) == 0 && len(eb.wildcard) == 0 {
		return nil
	}

	listeners := make([]EventListener, 0, len(typed)+len(eb.wildcard))
	listeners = append(listeners, typed...)
	listeners = append(listeners, eb.wildcard...)
	return listeners
}

// Clear removes all listeners
func (eb *EventBus) Clear() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.listeners = make(map[EventType][]EventListener)
	eb.wildcard = nil
}

// ListenerCount returns the number of listeners for a specific event type,
// wildcard listeners included
func (eb *EventBus) ListenerCount(eventType EventType) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return len(eb.listeners[eventType]) + len(eb.wildcard)
}
