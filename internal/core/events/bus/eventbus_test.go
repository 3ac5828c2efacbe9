package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()

	var got []Event
	b.Subscribe("session.started", func(e Event) { got = append(got, e) })

	b.Publish(Event{Type: "session.started", Source: "engine-1", Data: 2})

	assert.Len(t, got, 1)
	assert.Equal(t, "engine-1", got[0].Source)
	assert.Equal(t, 2, got[0].Data)
	assert.False(t, got[0].Time.IsZero(), "publish should stamp the event")
}

func TestTypeIsolation(t *testing.T) {
	b := New()

	started, ended := 0, 0
	b.Subscribe("session.started", func(Event) { started++ })
	b.Subscribe("session.ended", func(Event) { ended++ })

	b.Publish(Event{Type: "session.started"})
	b.Publish(Event{Type: "session.started"})

	assert.Equal(t, 2, started)
	assert.Equal(t, 0, ended)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()

	calls := 0
	sub := b.Subscribe("reset", func(Event) { calls++ })

	b.Publish(Event{Type: "reset"})
	sub.Cancel()
	sub.Cancel() // idempotent
	b.Publish(Event{Type: "reset"})

	assert.Equal(t, 1, calls)
}

func TestMultipleSubscribers(t *testing.T) {
	b := New()

	a, c := 0, 0
	b.Subscribe("render", func(Event) { a++ })
	b.Subscribe("render", func(Event) { c++ })

	b.Publish(Event{Type: "render"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, c)
}
