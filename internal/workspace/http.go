// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/internal/platform/middleware"
	requestutil "github.com/joelnust/namsa/internal/platform/request"
	"github.com/joelnust/namsa/internal/platform/respond"
	"github.com/joelnust/namsa/internal/platform/validate"
	"github.com/joelnust/namsa/internal/profile"
)

// multipartOverhead is the body allowance on top of the file itself for
// boundaries, headers and the title field.
const multipartOverhead = 64 << 10

// # Handler Implementation

// Handler implements the HTTP layer of the profile page.
type Handler struct {
	store          *Store
	maxUploadBytes int64
}

// NewHandler constructs a new workspace [Handler].
func NewHandler(store *Store, maxUploadBytes int64) *Handler {
	return &Handler{store: store, maxUploadBytes: maxUploadBytes}
}

// Routes returns a [chi.Router] configured with the profile page endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// ## Page Lifecycle
	router.Get("/", handler.open)
	router.Delete("/", handler.close)
	router.Post("/reload", handler.reload)
	router.Get("/lookups", handler.lookups)
	router.Get("/notifications", handler.notifications)

	// ## Profile Form
	router.Patch("/draft", handler.changeDraft)
	router.Post("/submit", handler.submit)

	// ## Documents
	router.Route("/documents/{category}", func(documents chi.Router) {
		documents.Put("/", handler.stageDocument)
		documents.Patch("/", handler.renameDocument)
		documents.Delete("/", handler.unstageDocument)
		documents.Post("/upload", handler.uploadDocument)
	})

	return router
}

// # Page Lifecycle

/*
GET /api/v1/me/profile.

Description: Opens the profile page. The first call loads lookups and the
profile from the registry; later calls return the current state.

Response:
  - 200: View
  - 401: ErrUnauthorized
*/
func (handler *Handler) open(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, created := handler.store.Acquire(userID, ctxutil.GetAccessToken(request.Context()))
	if created {
		workspace.Load(request.Context())
	}

	respond.OK(writer, workspace.View())
}

/*
DELETE /api/v1/me/profile.

Description: Leaves the profile page. In-flight registry calls are cancelled
and their results dropped.

Response:
  - 204: Closed (also when nothing was open)
*/
func (handler *Handler) close(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.store.Release(userID)
	respond.NoContent(writer)
}

/*
POST /api/v1/me/profile/reload.

Description: Re-reads lookups and profile from the registry.

Response:
  - 200: View
  - 404: Page not open
*/
func (handler *Handler) reload(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace.Load(request.Context())
	respond.OK(writer, workspace.View())
}

// GET /api/v1/me/profile/lookups.
func (handler *Handler) lookups(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, workspace.Lookups())
}

/*
GET /api/v1/me/profile/notifications.

Description: Returns and clears the pending notifications.

Response:
  - 200: []Notification
*/
func (handler *Handler) notifications(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, workspace.Notifications())
}

// # Profile Form

/*
PATCH /api/v1/me/profile/draft.

Description: Applies form input changes. Keys are form field names; values
are the raw input (string, number or null to clear).

Request (Body):
  - {"firstName": "Ndapewa", "titleId": "2", "noOFDependents": 3}

Response:
  - 200: Draft
  - 400: Unknown field or unparsable value (nothing is applied)
*/
func (handler *Handler) changeDraft(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input map[string]json.RawMessage
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	changes := make(map[string]string, len(input))
	for name, raw := range input {
		value, err := inputValue(raw)
		if err != nil {
			respond.Error(writer, request, validate.Field(name, "Must be a string, a number or null"))
			return
		}
		changes[name] = value
	}

	if err := workspace.ApplyChanges(changes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, workspace.Draft())
}

/*
POST /api/v1/me/profile/submit.

Description: Creates or updates the profile from the draft.

Response:
  - 200: View
  - 409: Save already in progress
  - 422: Last load failed
  - 4xx/502: Registry rejection (registry message kept)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := workspace.Submit(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, workspace.View())
}

// # Documents

/*
PUT /api/v1/me/profile/documents/{category}.

Description: Stages a file for upload.

Request (multipart/form-data):
  - file: the document
  - title: string (optional)

Response:
  - 200: View
  - 413: File over the size limit
*/
func (handler *Handler) stageDocument(writer http.ResponseWriter, request *http.Request) {
	workspace, category, err := handler.document(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, title, err := handler.readFile(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := workspace.Stage(category, file, title); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, workspace.View())
}

/*
PATCH /api/v1/me/profile/documents/{category}.

Request (Body):
  - {"title": "Passport Photo 2026"}
*/
func (handler *Handler) renameDocument(writer http.ResponseWriter, request *http.Request) {
	workspace, category, err := handler.document(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Title string `json:"title"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := workspace.SetTitle(category, input.Title); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, workspace.View())
}

// DELETE /api/v1/me/profile/documents/{category}.
func (handler *Handler) unstageDocument(writer http.ResponseWriter, request *http.Request) {
	workspace, category, err := handler.document(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := workspace.Stage(category, nil, ""); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, workspace.View())
}

/*
POST /api/v1/me/profile/documents/{category}/upload.

Description: Uploads the staged file of the category.

Response:
  - 200: View
  - 400: No file staged
  - 409: Upload of this category already in progress
  - 4xx/502: Registry rejection (registry message kept)
*/
func (handler *Handler) uploadDocument(writer http.ResponseWriter, request *http.Request) {
	workspace, category, err := handler.document(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := workspace.Upload(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, workspace.View())
}

// # Helpers

// workspace returns the caller's open page.
func (handler *Handler) workspace(request *http.Request) (*Workspace, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return nil, err
	}

	workspace, ok := handler.store.Get(userID, ctxutil.GetAccessToken(request.Context()))
	if !ok {
		return nil, apperr.NotFound("Profile page")
	}
	return workspace, nil
}

// document resolves the caller's page and the category URL parameter.
func (handler *Handler) document(request *http.Request) (*Workspace, profile.Category, error) {
	category, ok := profile.ParseCategory(requestutil.Param(request, "category"))
	if !ok {
		return nil, "", apperr.NotFound("Document category")
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		return nil, "", err
	}
	return workspace, category, nil
}

// readFile extracts the "file" part and optional "title" of a multipart body.
func (handler *Handler) readFile(writer http.ResponseWriter, request *http.Request) (*profile.File, string, error) {
	tooLarge := apperr.TooLarge("The file is larger than the upload limit")

	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxUploadBytes+multipartOverhead)
	if err := request.ParseMultipartForm(handler.maxUploadBytes); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return nil, "", tooLarge
		}
		return nil, "", apperr.ValidationError("Invalid multipart form")
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	part, header, err := request.FormFile("file")
	if err != nil {
		return nil, "", validate.Field("file", "Please select a file to upload")
	}
	defer part.Close()

	if header.Size > handler.maxUploadBytes {
		return nil, "", tooLarge
	}

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, "", apperr.ValidationError("Could not read the uploaded file")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	file := &profile.File{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}
	return file, request.FormValue("title"), nil
}

// inputValue turns a JSON string, number or null into raw form input.
func inputValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)

	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var value string
		err := json.Unmarshal(raw, &value)
		return value, err
	default:
		var number json.Number
		if err := json.Unmarshal(raw, &number); err != nil {
			return "", err
		}
		return number.String(), nil
	}
}
