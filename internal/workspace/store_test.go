// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelnust/namsa/internal/profile"
)

func TestStore_AcquireOpensOnce(t *testing.T) {
	f := newFixture()
	store := NewStore(f.deps, 10, time.Minute)
	defer store.Close()

	first, created := store.Acquire("42", "t1")
	require.True(t, created)

	second, created := store.Acquire("42", "t2")
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 1, store.Len())

	second.Load(context.Background())
	assert.Equal(t, "t2", f.api.tokens[len(f.api.tokens)-1])
}

func TestStore_GetDoesNotOpen(t *testing.T) {
	store := NewStore(newFixture().deps, 10, time.Minute)
	defer store.Close()

	_, ok := store.Get("42", "t1")
	assert.False(t, ok)
	assert.Zero(t, store.Len())

	opened, _ := store.Acquire("42", "t1")
	got, ok := store.Get("42", "t1")
	require.True(t, ok)
	assert.Same(t, opened, got)
}

func TestStore_ReleaseClosesWorkspace(t *testing.T) {
	f := newFixture()
	store := NewStore(f.deps, 10, time.Minute)
	defer store.Close()

	workspace, _ := store.Acquire("42", "t1")
	assert.Equal(t, 1, f.hub.Count("42"))

	assert.True(t, store.Release("42"))
	assert.True(t, workspace.Closed())
	assert.Zero(t, f.hub.Count("42"))
	assert.False(t, store.Release("42"))
}

func TestStore_EvictionClosesOldest(t *testing.T) {
	store := NewStore(newFixture().deps, 1, time.Minute)
	defer store.Close()

	oldest, _ := store.Acquire("a", "t")
	newest, _ := store.Acquire("b", "t")

	assert.True(t, oldest.Closed())
	assert.False(t, newest.Closed())
	assert.Equal(t, 1, store.Len())
}

func TestStore_IdleWorkspaceIsReopened(t *testing.T) {
	store := NewStore(newFixture().deps, 10, 20*time.Millisecond)
	defer store.Close()

	stale, _ := store.Acquire("42", "t")
	time.Sleep(60 * time.Millisecond)

	fresh, created := store.Acquire("42", "t")
	assert.True(t, created)
	assert.NotSame(t, stale, fresh)
	assert.Eventually(t, stale.Closed, time.Second, 10*time.Millisecond)
}

func TestStore_CloseClosesAll(t *testing.T) {
	store := NewStore(newFixture().deps, 10, time.Minute)

	a, _ := store.Acquire("a", "t")
	b, _ := store.Acquire("b", "t")
	store.Close()

	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.Zero(t, store.Len())
}

func TestView_Banner(t *testing.T) {
	tests := []struct {
		status profile.Status
		want   profile.Status
		tone   Tone
	}{
		{profile.StatusApproved, profile.StatusApproved, ToneSuccess},
		{profile.StatusRejected, profile.StatusRejected, ToneError},
		{profile.StatusPending, profile.StatusPending, ToneWarning},
		{profile.Status(""), profile.StatusPending, ToneWarning},
		{profile.Status("ARCHIVED"), profile.StatusPending, ToneWarning},
	}

	for _, tt := range tests {
		banner := bannerOf(&profile.Record{Status: tt.status, IPINumber: "00012345678"})
		assert.Equal(t, tt.want, banner.Status)
		assert.Equal(t, tt.tone, banner.Tone)
		assert.Equal(t, "Pending", banner.ArtistID)
		assert.Equal(t, "00012345678", banner.IPINumber)
		assert.Empty(t, banner.Notes)
	}
}

func TestFormatMegabytes(t *testing.T) {
	assert.Equal(t, "0.00 MB", formatMegabytes(0))
	assert.Equal(t, "0.50 MB", formatMegabytes(512*1024))
	assert.Equal(t, "1.00 MB", formatMegabytes(1024*1024))
	assert.Equal(t, "2.35 MB", formatMegabytes(2_460_000))
}

func TestView_DefaultsBeforeLoad(t *testing.T) {
	workspace := newFixture().open()
	defer workspace.Close()

	view := workspace.View()
	assert.False(t, view.Loading)
	assert.Len(t, view.Tabs, 2)
	assert.Equal(t, "Profile Information", view.Tabs[0].Label)
	assert.Equal(t, "Documents", view.Tabs[1].Label)

	require.Len(t, view.Uploads, 4)
	assert.Equal(t, "image/*", view.Uploads[0].Accept)
	assert.Equal(t, "Passport Photo", view.Uploads[0].Title)
	assert.Equal(t, "application/pdf", view.Uploads[3].Accept)
	assert.Equal(t, "Proof of Payment", view.Uploads[3].Title)
}
