// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package signal

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/internal/platform/middleware"
	requestutil "github.com/joelnust/namsa/internal/platform/request"
	"github.com/joelnust/namsa/internal/platform/respond"
	"github.com/joelnust/namsa/internal/platform/sec"
	"github.com/joelnust/namsa/internal/platform/validate"
)

// Publisher sends an event to every portal instance.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// # Handler Implementation

// Handler lets registry administrators announce profile changes.
type Handler struct {
	publisher Publisher
}

// NewHandler constructs a new signal [Handler].
func NewHandler(publisher Publisher) *Handler {
	return &Handler{publisher: publisher}
}

// Routes returns a [chi.Router] configured with signal endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/", handler.publish)

	return router
}

/*
POST /api/v1/admin/signals.

Description: Tells the artist's open profile page that something changed.

Request (Body):
  - {"type": "profile", "userId": "42"}

Response:
  - 202: Published
  - 400: Missing type
  - 403: ErrForbidden
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	var input Event
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Type = strings.TrimSpace(input.Type)
	validator := &validate.Validator{}
	validator.Required("type", input.Type)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.publisher.Publish(request.Context(), input); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	ctxutil.GetLogger(request.Context()).Info("signal_published",
		slog.String("type", input.Type),
		slog.String("target_user_id", input.UserID),
	)

	respond.Accepted(writer, input)
}
