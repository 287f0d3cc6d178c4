// Package event is a small in-process event dispatcher. The service layer
// fires domain events (user.registered, order.created, ...) and bootstrap
// code attaches listeners, keeping side concerns out of the use-case path.
package event

import "sync"

// Listener is a function that receives an event payload.
type Listener func(payload interface{})

var (
	mu        sync.RWMutex
	listeners = map[string][]Listener{}
)

// Listen registers a listener for the given event name.
func Listen(event string, l Listener) {
	mu.Lock()
	defer mu.Unlock()
	listeners[event] = append(listeners[event], l)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	mu.RLock()
	ls := make([]Listener, len(listeners[event]))
	copy(ls, listeners[event])
	mu.RUnlock()

	for _, l := range ls {
		l(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently and returns
// without waiting for them to complete.
func FireAsync(event string, payload interface{}) {
	mu.RLock()
	ls := make([]Listener, len(listeners[event]))
	copy(ls, listeners[event])
	mu.RUnlock()

	for _, l := range ls {
		go l(payload)
	}
}

// Flush removes all listeners. Useful in tests.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	listeners = map[string][]Listener{}
}
