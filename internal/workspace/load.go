// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/joelnust/namsa/internal/backend"
	"github.com/joelnust/namsa/internal/lookup"
	"github.com/joelnust/namsa/internal/notify"
	"github.com/joelnust/namsa/internal/profile"
	"github.com/joelnust/namsa/internal/signal"
)

// # Profile Loading

/*
Load fetches the lookup tables and the document bundle concurrently and
replaces the workspace state with the result.

Outcomes of the documents call:

  - success: draft, bundle and the exists flag are taken from the registry.
  - 404: the artist has no profile yet; the draft and bundle are emptied.
  - anything else: the previous state is kept, the workspace is marked as
    failed to load and an error notification is queued.

Lookup failures only empty the affected table. Results arriving after
[Workspace.Close] are dropped.
*/
func (workspace *Workspace) Load(ctx context.Context) {
	workspace.mu.Lock()
	if workspace.closed {
		workspace.mu.Unlock()
		return
	}
	workspace.loads++
	workspace.mu.Unlock()

	callCtx := workspace.callContext(ctx)

	var (
		tables      lookup.Tables
		bundle      *profile.Bundle
		documentErr error
	)

	var group errgroup.Group
	group.Go(func() error {
		tables = lookup.Load(callCtx, workspace.api, workspace.logger)
		return nil
	})
	group.Go(func() error {
		bundle, documentErr = workspace.api.GetDocuments(callCtx)
		return nil
	})
	_ = group.Wait()

	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	workspace.loads--
	if workspace.closed {
		return
	}

	workspace.tables = tables

	switch {
	case documentErr == nil:
		if bundle == nil {
			bundle = emptyBundle()
		}
		if bundle.Documents == nil {
			bundle.Documents = map[profile.Category]profile.Document{}
		}
		workspace.bundle = bundle
		workspace.exists = bundle.Profile != nil
		workspace.draft = profile.DraftFromRecord(bundle.Profile)
		workspace.loadFailed = false
		loadsTotal.WithLabelValues(outcomeLoaded(workspace.exists)).Inc()

	case backend.IsNotFound(documentErr):
		workspace.bundle = emptyBundle()
		workspace.exists = false
		workspace.draft = profile.Draft{}
		workspace.loadFailed = false
		loadsTotal.WithLabelValues("absent").Inc()

	default:
		workspace.loadFailed = true
		loadsTotal.WithLabelValues("failed").Inc()
		workspace.logger.Error("profile_load_failed", slog.Any("error", documentErr))
		workspace.notify(notify.Failure("Error", "Failed to load profile data"))
	}
}

func outcomeLoaded(exists bool) string {
	if exists {
		return "loaded"
	}
	return "absent"
}

// # Change Signals

// onSignal is the hub listener; it must not block the dispatcher.
func (workspace *Workspace) onSignal(event signal.Event) {
	workspace.mu.Lock()
	if workspace.closed {
		workspace.mu.Unlock()
		return
	}
	workspace.tasks.Add(1)
	workspace.mu.Unlock()

	go func() {
		defer workspace.tasks.Done()
		workspace.HandleSignal(workspace.lifecycle, event)
	}()
}

/*
HandleSignal reacts to a change signal.

Only "profile" events matter: they reload the workspace and queue exactly one
informational notification. Every other event is ignored.
*/
func (workspace *Workspace) HandleSignal(ctx context.Context, event signal.Event) {
	if !event.IsProfile() || workspace.Closed() {
		return
	}

	workspace.logger.Info("profile_status_signal_received")
	workspace.Load(ctx)

	if workspace.Closed() {
		return
	}
	workspace.notify(notify.Info("Profile Status Updated", "Your profile status was updated by an admin."))
}
