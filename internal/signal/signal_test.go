// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package signal

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		ok      bool
		want    Event
	}{
		{"profile", `{"type":"profile"}`, true, Event{Type: "profile"}},
		{"targeted", `{"type":"profile","userId":"42","ts":1700000000}`, true, Event{Type: "profile", UserID: "42"}},
		{"other type", `{"type":"payment"}`, true, Event{Type: "payment"}},
		{"not json", `profile`, false, Event{}},
		{"empty", ``, false, Event{}},
		{"missing type", `{"userId":"42"}`, false, Event{}},
		{"blank type", `{"type":"  "}`, false, Event{}},
		{"array", `["profile"]`, false, Event{}},
		{"wrong type kind", `{"type":7}`, false, Event{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, ok := Decode([]byte(tt.payload))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, event)
		})
	}
}

func TestEvent_IsProfile(t *testing.T) {
	assert.True(t, Event{Type: "profile"}.IsProfile())
	assert.False(t, Event{Type: "Profile"}.IsProfile())
	assert.False(t, Event{Type: "payment"}.IsProfile())
}

func TestHub_RoutesByUser(t *testing.T) {
	hub := NewHub(testLogger())

	var mu sync.Mutex
	received := map[string][]Event{}
	record := func(name string) Listener {
		return func(event Event) {
			mu.Lock()
			defer mu.Unlock()
			received[name] = append(received[name], event)
		}
	}

	hub.Subscribe("a", record("a"))
	hub.Subscribe("b", record("b"))

	hub.Dispatch([]byte(`{"type":"profile","userId":"a"}`))
	hub.Dispatch([]byte(`{"type":"profile"}`))
	hub.Dispatch([]byte(`garbage`))

	assert.Len(t, received["a"], 2)
	assert.Len(t, received["b"], 1)
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub(testLogger())

	calls := 0
	unsubscribe := hub.Subscribe("a", func(Event) { calls++ })
	other := hub.Subscribe("a", func(Event) {})
	assert.Equal(t, 2, hub.Count("a"))

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 1, hub.Count("a"))

	hub.Dispatch([]byte(`{"type":"profile","userId":"a"}`))
	assert.Zero(t, calls)

	other()
	assert.Zero(t, hub.Count("a"))
}

func TestHub_ListenerMaySubscribeDuringDelivery(t *testing.T) {
	hub := NewHub(testLogger())

	hub.Subscribe("a", func(Event) {
		hub.Subscribe("a", func(Event) {})
	})

	assert.NotPanics(t, func() { hub.Deliver(Event{Type: "profile", UserID: "a"}) })
	assert.Equal(t, 2, hub.Count("a"))
}

func TestRedisSource_PumpStopsOnClose(t *testing.T) {
	hub := NewHub(testLogger())
	events := make(chan Event, 4)
	hub.Subscribe("a", func(event Event) { events <- event })

	source := &RedisSource{hub: hub, logger: testLogger()}
	messages := make(chan *redis.Message, 3)
	messages <- &redis.Message{Channel: "namsa:update", Payload: `{"type":"profile","userId":"a"}`}
	messages <- &redis.Message{Channel: "namsa:update", Payload: `{not json`}
	messages <- &redis.Message{Channel: "namsa:update", Payload: `{"type":"payment"}`}
	close(messages)

	done := make(chan struct{})
	go func() {
		source.pump(context.Background(), messages)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after the channel closed")
	}

	require.Len(t, events, 2)
	assert.Equal(t, "profile", (<-events).Type)
	assert.Equal(t, "payment", (<-events).Type)
}

func TestRedisSource_PumpStopsOnCancel(t *testing.T) {
	source := &RedisSource{hub: NewHub(testLogger()), logger: testLogger()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		source.pump(ctx, make(chan *redis.Message))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after cancellation")
	}
}
