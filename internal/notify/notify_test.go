// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelnust/namsa/internal/notify"
)

func TestFeed_DrainInOrder(t *testing.T) {
	feed := notify.NewFeed(4)
	feed.Notify(notify.Info("Upload Successful", "ID Document uploaded successfully!"))
	feed.Notify(notify.Failure("Error", "Failed to save profile"))

	items := feed.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "Upload Successful", items[0].Title)
	assert.Equal(t, notify.VariantDefault, items[0].Variant)
	assert.False(t, items[0].CreatedAt.IsZero())
	assert.Equal(t, notify.VariantDestructive, items[1].Variant)

	assert.Equal(t, 0, feed.Len())
	assert.NotNil(t, feed.Drain())
	assert.Empty(t, feed.Drain())
}

func TestFeed_DropsOldestWhenFull(t *testing.T) {
	feed := notify.NewFeed(2)
	for i := range 3 {
		feed.Notify(notify.Info(fmt.Sprintf("n%d", i), ""))
	}

	items := feed.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "n1", items[0].Title)
	assert.Equal(t, "n2", items[1].Title)
	assert.Equal(t, 1, feed.Dropped())
}

func TestFeed_EmptyVariantDefaults(t *testing.T) {
	feed := notify.NewFeed(0)
	feed.Notify(notify.Notification{Title: "x"})

	items := feed.Drain()
	require.Len(t, items, 1)
	assert.Equal(t, notify.VariantDefault, items[0].Variant)
}

func TestFeed_ConcurrentNotify(t *testing.T) {
	feed := notify.NewFeed(1000)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed.Notify(notify.Info("t", "d"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, feed.Len())
}
