// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// # Workspace Store

// Store keeps one open workspace per user.
//
// Workspaces idle for longer than the TTL, or pushed out when the store is
// full, are closed on eviction: leaving the page and timing out are the same
// thing to the workspace.
type Store struct {
	mu     sync.Mutex
	cache  *expirable.LRU[string, *Workspace]
	deps   Dependencies
	logger *slog.Logger
}

// NewStore creates a store holding at most size workspaces, each closed after
// ttl without access.
func NewStore(deps Dependencies, size int, ttl time.Duration) *Store {
	store := &Store{
		deps:   deps,
		logger: deps.Logger.With(slog.String("component", "workspace_store")),
	}

	store.cache = expirable.NewLRU[string, *Workspace](size, func(userID string, workspace *Workspace) {
		workspace.Close()
		store.logger.Debug("workspace_evicted", slog.String("user_id", userID))
	}, ttl)

	return store
}

/*
Acquire returns the workspace of userID, opening one when none exists.

Access refreshes the idle timer and the bearer token.

Returns:
  - *Workspace: The open workspace
  - bool: Whether it was just opened (and therefore not loaded yet)
*/
func (store *Store) Acquire(userID, token string) (*Workspace, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if workspace, ok := store.cache.Get(userID); ok && !workspace.Closed() {
		workspace.SetToken(token)
		store.cache.Add(userID, workspace)
		return workspace, false
	}

	// An expired entry may still be held; removing it closes it.
	store.cache.Remove(userID)

	workspace := New(userID, token, store.deps)
	store.cache.Add(userID, workspace)
	return workspace, true
}

// Get returns the open workspace of userID without opening one.
func (store *Store) Get(userID, token string) (*Workspace, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	workspace, ok := store.cache.Get(userID)
	if !ok || workspace.Closed() {
		return nil, false
	}

	workspace.SetToken(token)
	store.cache.Add(userID, workspace)
	return workspace, true
}

// Release closes and forgets the workspace of userID.
func (store *Store) Release(userID string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.cache.Remove(userID)
}

// Len returns the number of open workspaces.
func (store *Store) Len() int {
	return store.cache.Len()
}

// Close closes every workspace.
func (store *Store) Close() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.cache.Purge()
}
