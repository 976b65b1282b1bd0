// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/pkg/pagination"
	"github.com/joelnust/namsa/pkg/uuidv7"
)

// recordTimeout bounds a write that outlives the request that caused it.
const recordTimeout = 3 * time.Second

// # Service Layer

// Service records and lists activity entries.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new activity [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

/*
Record stores entry and swallows any failure after logging it.

The write is detached from context cancellation so that an artist closing
the page right after an upload still leaves a trace.

Parameters:
  - context: context.Context (request ID is taken from it when unset)
  - entry: Entry
*/
func (service *Service) Record(context context.Context, entry Entry) {
	entry.ID = uuidv7.New()
	entry.CreatedAt = service.now().UTC()
	if entry.RequestID == "" {
		entry.RequestID = ctxutil.GetRequestID(context)
	}

	writeContext, cancel := contextWithTimeout(context)
	defer cancel()

	if err := service.repo.Insert(writeContext, &entry); err != nil {
		service.logger.Warn("activity_record_failed",
			slog.String("user_id", entry.UserID),
			slog.String("action", string(entry.Action)),
			slog.Any("error", err),
		)
	}
}

/*
List returns one page of userID's entries.

Parameters:
  - context: context.Context
  - userID: string
  - page: pagination.Params (normalized before use)

Returns:
  - []*Entry: Entries, newest first
  - int: Total entries of the user
  - error: Retrieval errors
*/
func (service *Service) List(context context.Context, userID string, page pagination.Params) ([]*Entry, int, error) {
	page = page.Normalize()
	return service.repo.ListByUser(context, userID, page.Limit, page.Offset())
}

func contextWithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), recordTimeout)
}
