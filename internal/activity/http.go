// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joelnust/namsa/internal/platform/middleware"
	requestutil "github.com/joelnust/namsa/internal/platform/request"
	"github.com/joelnust/namsa/internal/platform/respond"
	"github.com/joelnust/namsa/internal/platform/sec"
	"github.com/joelnust/namsa/pkg/pagination"
)

// # Handler Implementation

// Handler exposes the activity trail.
type Handler struct {
	service *Service
}

// NewHandler constructs a new activity [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with activity endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Own Trail
	router.With(middleware.RequireAuth).Get("/", handler.listOwn)

	// ## Registry Staff
	router.With(middleware.RequireRole(sec.RoleOfficer)).Get("/users/{userID}", handler.listForUser)

	return router
}

/*
GET /api/v1/activity.

Description: Lists the caller's own submit and upload attempts.

Request:
  - page: int (optional, 1-indexed)
  - limit: int (optional)

Response:
  - 200: []Entry + pagination meta
  - 401: ErrUnauthorized
*/
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.list(writer, request, userID)
}

/*
GET /api/v1/activity/users/{userID}.

Description: Lists an artist's attempts for registry staff.

Response:
  - 200: []Entry
  - 403: ErrForbidden
*/
func (handler *Handler) listForUser(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, requestutil.Param(request, "userID"))
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, userID string) {
	page := pagination.FromRequest(request)

	entries, total, err := handler.service.List(request.Context(), userID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(page, total))
}
