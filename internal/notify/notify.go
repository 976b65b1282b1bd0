// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify carries the transient toast messages shown to the artist.

Workspace operations never return their outcome to the browser directly;
they push a [Notification] to a [Notifier]. The browser drains the
workspace's [Feed] and renders each entry once.
*/
package notify

import (
	"sync"
	"time"
)

// Variant selects the visual style of a notification.
type Variant string

const (
	// VariantDefault is an informational or success message.
	VariantDefault Variant = "default"
	// VariantDestructive is an error message.
	VariantDestructive Variant = "destructive"
)

// Notification is one toast message.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(notification Notification)
}

// Info builds a default-variant notification.
func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

// Failure builds a destructive notification.
func Failure(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}

// # Feed

// Feed is a bounded in-memory queue of notifications.
//
// When full, the oldest entry is dropped to make room: a browser that stops
// polling must not grow the feed without bound.
type Feed struct {
	mu      sync.Mutex
	items   []Notification
	size    int
	dropped int
	now     func() time.Time
}

// NewFeed creates a feed holding at most size notifications (minimum 1).
func NewFeed(size int) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{size: size, now: time.Now}
}

// Notify implements [Notifier].
func (feed *Feed) Notify(notification Notification) {
	if notification.Variant == "" {
		notification.Variant = VariantDefault
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = feed.now()
	}

	feed.mu.Lock()
	defer feed.mu.Unlock()

	if len(feed.items) == feed.size {
		feed.items = feed.items[1:]
		feed.dropped++
	}
	feed.items = append(feed.items, notification)
}

// Drain returns every pending notification in arrival order and empties the
// feed. It never returns nil.
func (feed *Feed) Drain() []Notification {
	feed.mu.Lock()
	defer feed.mu.Unlock()

	out := make([]Notification, len(feed.items))
	copy(out, feed.items)
	feed.items = feed.items[:0]
	return out
}

// Len reports the number of pending notifications.
func (feed *Feed) Len() int {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	return len(feed.items)
}

// Dropped reports how many notifications were discarded because the feed
// was full.
func (feed *Feed) Dropped() int {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	return feed.dropped
}
