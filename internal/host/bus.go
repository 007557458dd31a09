package host

import (
	"sync"

	"github.com/google/uuid"
)

// Listener is called for every dispatch of the event it subscribed to.
type Listener func()

type entry struct {
	id uuid.UUID
	fn Listener
}

// Bus delivers named events to listeners in the same process.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]entry
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]entry)}
}

// Subscription identifies a listener registered on a Bus.
type Subscription struct {
	ID   uuid.UUID
	Name string
	bus  *Bus
}

// Subscribe registers fn for events called name.
func (b *Bus) Subscribe(name string, fn Listener) *Subscription {
	id := uuid.New()
	b.mu.Lock()
	b.listeners[name] = append(b.listeners[name], entry{id: id, fn: fn})
	b.mu.Unlock()
	return &Subscription{ID: id, Name: name, bus: b}
}

// Unsubscribe removes the listener. Calling it twice is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.listeners[s.Name]
	for i, e := range entries {
		if e.id == s.ID {
			b.listeners[s.Name] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(b.listeners[s.Name]) == 0 {
		delete(b.listeners, s.Name)
	}
}

// Dispatch calls the listeners for name synchronously, in the order they
// subscribed. Listeners added or removed during a dispatch take effect on
// the next one.
func (b *Bus) Dispatch(name string) {
	b.mu.RLock()
	entries := append([]entry(nil), b.listeners[name]...)
	b.mu.RUnlock()

	for _, e := range entries {
		e.fn()
	}
}

func (b *Bus) count(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}
