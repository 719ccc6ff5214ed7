package events

import "sync"

// Topics mirror the names the web client broadcasts, so server-pushed
// notifications can be re-published verbatim.
const (
	AuthLogin    = "amx:auth-login"
	AuthRefresh  = "amx:auth-refresh"
	AuthLogout   = "amx:auth-logout"
	UserUpdated  = "amx:user-updated"
	QuotaUpdated = "amx:quota-updated"
)

// Event is a topic plus an optional payload.
type Event struct {
	Topic string
	Data  any
}

// Bus is a small in-process pub/sub. Handlers run synchronously on the
// publishing goroutine; they must not publish back into the bus.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]func(Event))}
}

// Subscribe registers a handler for a topic and returns an unsubscribe func.
func (b *Bus) Subscribe(topic string, fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]func(Event))
	}
	id := b.next
	b.next++
	b.subs[topic][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish delivers an event to every subscriber of its topic.
func (b *Bus) Publish(topic string, data any) {
	b.mu.Lock()
	handlers := make([]func(Event), 0, len(b.subs[topic]))
	for _, fn := range b.subs[topic] {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	ev := Event{Topic: topic, Data: data}
	for _, fn := range handlers {
		fn(ev)
	}
}
