// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package signal delivers "something changed elsewhere" events to mounted
workspaces.

Administrators publish a small JSON payload on a shared channel when they
change an artist's review status. The payload carries at least a "type"
discriminator and, optionally, the "userId" it concerns:

	{"type": "profile", "userId": "42"}

A [Hub] fans decoded events out to subscribed listeners. Payloads that are
not JSON objects or lack a type are dropped silently; deciding which types
matter is up to each listener.
*/
package signal

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/joelnust/namsa/internal/platform/constants"
)

// Event is a decoded signal payload.
type Event struct {
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
}

// IsProfile reports whether the event announces a profile change.
func (e Event) IsProfile() bool {
	return e.Type == constants.SignalTypeProfile
}

// Decode parses a raw payload. It reports false for anything that is not a
// JSON object with a non-empty type.
func Decode(payload []byte) (Event, bool) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, false
	}

	event.Type = strings.TrimSpace(event.Type)
	if event.Type == "" {
		return Event{}, false
	}
	return event, true
}

// # Hub

// Listener handles one event. It is called on the dispatching goroutine and
// must not block.
type Listener func(Event)

// Hub routes events to per-user listeners.
//
// Events naming a user reach only that user's listeners; events without a
// user are broadcast to everyone.
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]map[uint64]Listener
	nextID    uint64
	logger    *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		listeners: make(map[string]map[uint64]Listener),
		logger:    logger,
	}
}

// Subscribe registers listener for userID and returns the function that
// removes it. Calling the returned function more than once is harmless.
func (hub *Hub) Subscribe(userID string, listener Listener) (unsubscribe func()) {
	hub.mu.Lock()
	hub.nextID++
	id := hub.nextID
	if hub.listeners[userID] == nil {
		hub.listeners[userID] = make(map[uint64]Listener)
	}
	hub.listeners[userID][id] = listener
	hub.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			hub.mu.Lock()
			defer hub.mu.Unlock()

			delete(hub.listeners[userID], id)
			if len(hub.listeners[userID]) == 0 {
				delete(hub.listeners, userID)
			}
		})
	}
}

// Count returns the number of listeners registered for userID.
func (hub *Hub) Count(userID string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.listeners[userID])
}

// Dispatch decodes payload and delivers it. Malformed payloads are ignored.
func (hub *Hub) Dispatch(payload []byte) {
	event, ok := Decode(payload)
	if !ok {
		hub.logger.Debug("signal_payload_ignored", slog.Int("bytes", len(payload)))
		return
	}
	hub.Deliver(event)
}

// Deliver hands an already decoded event to its listeners.
func (hub *Hub) Deliver(event Event) {
	for _, listener := range hub.targets(event.UserID) {
		listener(event)
	}
}

// targets snapshots the listeners so none is called under the lock.
func (hub *Hub) targets(userID string) []Listener {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	var out []Listener
	if userID != "" {
		for _, listener := range hub.listeners[userID] {
			out = append(out, listener)
		}
		return out
	}

	for _, byID := range hub.listeners {
		for _, listener := range byID {
			out = append(out, listener)
		}
	}
	return out
}
