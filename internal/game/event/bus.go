// Package event provides the in-process, typed publish/subscribe bus used to
// decouple fight lifecycle changes from their side effects.
package event

import (
	"reflect"
	"slices"
	"sync"
)

type subscriber struct {
	id uint64
	fn func(any)
}

// Bus dispatches events to the subscribers registered for the event's type.
// All methods are safe for concurrent use.
//
// Delivery is synchronous on the publishing goroutine and follows subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[reflect.Type][]subscriber
}

// NewBus creates an empty Bus.
//
// Postcondition: Returns a non-nil Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{subs: make(map[reflect.Type][]subscriber)}
}

// Subscription identifies one registered listener.
type Subscription struct {
	bus *Bus
	typ reflect.Type
	id  uint64
}

// Cancel removes the listener from the bus. Safe to call multiple times.
//
// Postcondition: the listener receives no event published after Cancel returns.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	s.bus.subs[s.typ] = slices.DeleteFunc(slices.Clone(s.bus.subs[s.typ]), func(sub subscriber) bool {
		return sub.id == s.id
	})
}

// Subscribe registers fn to receive every event of type E published on b.
//
// Precondition: b and fn must not be nil.
// Postcondition: fn is appended after all listeners already registered for E.
func Subscribe[E any](b *Bus, fn func(E)) Subscription {
	typ := reflect.TypeFor[E]()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	// Copy on write: a concurrent Publish may be iterating the previous slice.
	subs := slices.Clone(b.subs[typ])
	b.subs[typ] = append(subs, subscriber{id: id, fn: func(e any) { fn(e.(E)) }})
	return Subscription{bus: b, typ: typ, id: id}
}

// Publish delivers e to the listeners registered for type E at call time.
// Listeners run outside the bus lock and may subscribe, cancel or publish.
//
// Precondition: b must not be nil.
func Publish[E any](b *Bus, e E) {
	b.mu.RLock()
	subs := b.subs[reflect.TypeFor[E]()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// Count returns the number of listeners registered for E.
func Count[E any](b *Bus) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[reflect.TypeFor[E]()])
}
