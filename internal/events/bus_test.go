package events_test

import (
	"testing"

	"tarion/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := events.NewBus()

	var got []events.Event
	bus.Subscribe(events.AuthLogin, func(ev events.Event) {
		got = append(got, ev)
	})

	bus.Publish(events.AuthLogin, "user-1")
	bus.Publish(events.AuthLogout, nil) // different topic, not delivered

	assert.Len(t, got, 1)
	assert.Equal(t, events.AuthLogin, got[0].Topic)
	assert.Equal(t, "user-1", got[0].Data)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := events.NewBus()

	calls := 0
	cancel := bus.Subscribe(events.QuotaUpdated, func(events.Event) { calls++ })

	bus.Publish(events.QuotaUpdated, nil)
	cancel()
	bus.Publish(events.QuotaUpdated, nil)

	assert.Equal(t, 1, calls)
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := events.NewBus()

	a, b := 0, 0
	bus.Subscribe(events.UserUpdated, func(events.Event) { a++ })
	bus.Subscribe(events.UserUpdated, func(events.Event) { b++ })

	bus.Publish(events.UserUpdated, nil)

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
