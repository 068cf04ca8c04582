package notify

import (
	"fmt"
	"sort"
	"sync"
)

// Wildcard subscribes a handler to every event name.
const Wildcard = "*"

// Handler receives a fired event.
type Handler func(name string, event any)

// Notifier is anything events can be forwarded to.
type Notifier interface {
	Fire(name string, event any)
}

// Dispatcher is an in-process event registry. Handlers run synchronously on
// the firing goroutine, in subscription order, exact names before wildcards.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	sinks    map[string]Notifier
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		sinks:    make(map[string]Notifier),
	}
}

// Subscribe adds h for events fired under name, or every event for Wildcard.
func (d *Dispatcher) Subscribe(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[name] = append(d.handlers[name], h)
}

// Forward registers n under a unique key; it receives every event.
func (d *Dispatcher) Forward(key string, n Notifier) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.sinks[key]; exists {
		return fmt.Errorf("notifier %s already registered", key)
	}
	d.sinks[key] = n
	d.handlers[Wildcard] = append(d.handlers[Wildcard], n.Fire)
	return nil
}

// Fire calls every handler registered for name and every wildcard handler.
func (d *Dispatcher) Fire(name string, event any) {
	d.mu.RLock()
	handlers := make([]Handler, 0, len(d.handlers[name])+len(d.handlers[Wildcard]))
	handlers = append(handlers, d.handlers[name]...)
	if name != Wildcard {
		handlers = append(handlers, d.handlers[Wildcard]...)
	}
	d.mu.RUnlock()

	for _, h := range handlers {
		h(name, event)
	}
}

// Names returns the event names with at least one handler, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var names []string
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
