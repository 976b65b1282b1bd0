// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package workspace holds the server-side state of an artist's open profile page.

A [Workspace] is created when the artist opens the page and closed when the
page is left or its idle time runs out. It owns:

  - the lookup tables the form selects from,
  - the editable draft and whether a profile already exists,
  - the last document bundle read from the registry,
  - one staged upload slot per document category,
  - the notification feed the browser drains.

# Concurrency

All state sits behind one mutex. Registry calls are made outside the lock on
a context derived from the workspace's lifetime, so closing the workspace
cancels them. Every completion re-checks the closed flag before touching
state: a result arriving after close is dropped.

When a load started by the artist and one started by a status signal
overlap, the one that completes last wins.
*/
package workspace

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/joelnust/namsa/internal/activity"
	"github.com/joelnust/namsa/internal/lookup"
	"github.com/joelnust/namsa/internal/notify"
	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/internal/profile"
	"github.com/joelnust/namsa/internal/signal"
)

// # Collaborators

// API is the registry surface a workspace talks to.
type API interface {
	lookup.Source

	GetDocuments(ctx context.Context) (*profile.Bundle, error)
	CreateProfile(ctx context.Context, draft profile.Draft) (*profile.Record, error)
	UpdateProfile(ctx context.Context, draft profile.Draft) (*profile.Record, error)

	UploadPassportPhoto(ctx context.Context, file *profile.File, title string) error
	UploadIDDocument(ctx context.Context, file *profile.File, title string) error
	UploadBankConfirmationLetter(ctx context.Context, file *profile.File, title string) error
	UploadProofOfPayment(ctx context.Context, file *profile.File, title string) error
}

// Subscriber registers a listener for change signals addressed to a user.
type Subscriber interface {
	Subscribe(userID string, listener signal.Listener) (unsubscribe func())
}

// Recorder keeps the activity trail. Record must not fail the caller.
type Recorder interface {
	Record(ctx context.Context, entry activity.Entry)
}

// Dependencies groups what every workspace is built from.
type Dependencies struct {
	API        API
	Subscriber Subscriber
	Recorder   Recorder
	Logger     *slog.Logger

	// FeedSize bounds the notification feed of each workspace.
	FeedSize int
}

// ErrClosed is returned by operations on a workspace that has been closed.
var ErrClosed = &apperr.AppError{
	Code:       "WORKSPACE_CLOSED",
	Message:    "The profile page has been closed",
	HTTPStatus: http.StatusGone,
}

// # Workspace

// pending is the staged upload of one category.
type pending struct {
	file      *profile.File
	title     string
	uploading bool
}

// Workspace is the state of one artist's open profile page.
type Workspace struct {
	userID   string
	api      API
	recorder Recorder
	feed     *notify.Feed
	logger   *slog.Logger

	lifecycle   context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	tasks       sync.WaitGroup

	mu         sync.Mutex
	token      string
	closed     bool
	loads      int
	loadFailed bool
	exists     bool
	submitting bool
	tables     lookup.Tables
	draft      profile.Draft
	bundle     *profile.Bundle
	pending    map[profile.Category]*pending
}

/*
New opens a workspace for userID and subscribes it to change signals.

Nothing is loaded yet; call [Workspace.Load] to populate it.

Parameters:
  - userID: string (owner; also the signal routing key)
  - token: string (bearer token forwarded to the registry)
  - deps: Dependencies
*/
func New(userID, token string, deps Dependencies) *Workspace {
	lifecycle, cancel := context.WithCancel(context.Background())

	workspace := &Workspace{
		userID:    userID,
		api:       deps.API,
		recorder:  deps.Recorder,
		feed:      notify.NewFeed(deps.FeedSize),
		logger:    deps.Logger.With(slog.String("user_id", userID)),
		lifecycle: lifecycle,
		cancel:    cancel,
		token:     token,
		tables:    emptyTables(),
		bundle:    emptyBundle(),
		pending:   make(map[profile.Category]*pending),
	}

	for _, info := range profile.Categories() {
		workspace.pending[info.Category] = &pending{title: info.Title}
	}

	if deps.Subscriber != nil {
		workspace.unsubscribe = deps.Subscriber.Subscribe(userID, workspace.onSignal)
	}

	activeWorkspaces.Inc()
	workspace.logger.Debug("workspace_opened")

	return workspace
}

// UserID returns the owner of the workspace.
func (workspace *Workspace) UserID() string {
	return workspace.userID
}

// SetToken replaces the bearer token used for later registry calls.
func (workspace *Workspace) SetToken(token string) {
	if token == "" {
		return
	}
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.token = token
}

// Close cancels in-flight calls, drops the signal subscription and makes
// every later operation a no-op. Reloads started by signals have finished
// when it returns. It is safe to call more than once.
func (workspace *Workspace) Close() {
	workspace.mu.Lock()
	if workspace.closed {
		workspace.mu.Unlock()
		return
	}
	workspace.closed = true
	workspace.mu.Unlock()

	if workspace.unsubscribe != nil {
		workspace.unsubscribe()
	}
	workspace.cancel()
	workspace.tasks.Wait()

	activeWorkspaces.Dec()
	workspace.logger.Debug("workspace_closed")
}

// Closed reports whether [Workspace.Close] has been called.
func (workspace *Workspace) Closed() bool {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return workspace.closed
}

// Lookups returns the lookup tables of the last load.
func (workspace *Workspace) Lookups() lookup.Tables {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return workspace.tables
}

// Notifications drains the notification feed.
func (workspace *Workspace) Notifications() []notify.Notification {
	return workspace.feed.Drain()
}

// # Internals

// callContext derives the context of a registry call: it ends with the
// workspace, carries the current token and keeps the caller's request ID.
func (workspace *Workspace) callContext(ctx context.Context) context.Context {
	workspace.mu.Lock()
	token := workspace.token
	workspace.mu.Unlock()

	callCtx := ctxutil.WithAccessToken(workspace.lifecycle, token)
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		callCtx = ctxutil.WithRequestID(callCtx, requestID)
	}
	return callCtx
}

func (workspace *Workspace) notify(notification notify.Notification) {
	workspace.feed.Notify(notification)
}

func (workspace *Workspace) record(ctx context.Context, entry activity.Entry) {
	if workspace.recorder == nil {
		return
	}
	entry.UserID = workspace.userID
	workspace.recorder.Record(ctx, entry)
}

func emptyTables() lookup.Tables {
	return lookup.Tables{
		Titles:           lookup.Table{},
		BankNames:        lookup.Table{},
		MaritalStatuses:  lookup.Table{},
		MemberCategories: lookup.Table{},
		Genders:          lookup.Table{},
	}
}

func emptyBundle() *profile.Bundle {
	return &profile.Bundle{Documents: map[profile.Category]profile.Document{}}
}
