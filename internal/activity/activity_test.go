// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/internal/platform/sec"
	"github.com/joelnust/namsa/internal/profile"
	"github.com/joelnust/namsa/pkg/pagination"
)

type fakeRepository struct {
	mu         sync.Mutex
	entries    []*Entry
	insertErr  error
	lastLimit  int
	lastOffset int

	// insertCtxErr is the context state seen while inserting.
	insertCtxErr error
}

func (repository *fakeRepository) Insert(ctx context.Context, entry *Entry) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.insertCtxErr = ctx.Err()
	if repository.insertErr != nil {
		return repository.insertErr
	}
	repository.entries = append(repository.entries, entry)
	return nil
}

func (repository *fakeRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.lastLimit = limit
	repository.lastOffset = offset
	out := make([]*Entry, 0)
	for _, entry := range repository.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	total := len(out)
	out = out[min(offset, total):min(offset+limit, total)]
	return out, total, nil
}

func newService(repository Repository) *Service {
	service := NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return service
}

func TestService_RecordFillsMetadata(t *testing.T) {
	repository := &fakeRepository{}
	service := newService(repository)

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	service.Record(ctx, Entry{UserID: "42", Action: ActionDocumentUpload, Category: profile.CategoryIDDocument, Success: true})

	require.Len(t, repository.entries, 1)
	entry := repository.entries[0]
	assert.Len(t, entry.ID, 36)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), entry.CreatedAt)
}

func TestService_RecordSurvivesCancelledRequest(t *testing.T) {
	repository := &fakeRepository{}
	service := newService(repository)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service.Record(ctx, Entry{UserID: "42", Action: ActionProfileCreate})

	require.Len(t, repository.entries, 1)
	assert.NoError(t, repository.insertCtxErr)
}

func TestService_RecordSwallowsFailure(t *testing.T) {
	service := newService(&fakeRepository{insertErr: errors.New("db down")})
	assert.NotPanics(t, func() {
		service.Record(context.Background(), Entry{UserID: "42", Action: ActionProfileUpdate})
	})
}

func TestService_ListNormalizesPage(t *testing.T) {
	repository := &fakeRepository{}
	service := newService(repository)

	_, _, err := service.List(context.Background(), "42", pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, pagination.DefaultLimit, repository.lastLimit)
	assert.Equal(t, 0, repository.lastOffset)

	_, _, err = service.List(context.Background(), "42", pagination.Params{Page: 3, Limit: 10_000})
	require.NoError(t, err)
	assert.Equal(t, pagination.MaxLimit, repository.lastLimit)
	assert.Equal(t, 2*pagination.MaxLimit, repository.lastOffset)
}

func requestAs(method, target string, claims *sec.AuthClaims) *http.Request {
	request := httptest.NewRequest(method, target, nil)
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	return request
}

func TestHandler_ListOwn(t *testing.T) {
	repository := &fakeRepository{}
	service := newService(repository)
	service.Record(context.Background(), Entry{UserID: "42", Action: ActionProfileCreate, Success: true})
	service.Record(context.Background(), Entry{UserID: "42", Action: ActionDocumentUpload, Success: false})
	service.Record(context.Background(), Entry{UserID: "7", Action: ActionProfileCreate, Success: true})

	router := NewHandler(service).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, requestAs(http.MethodGet, "/?limit=1&page=2", &sec.AuthClaims{UserID: "42", Role: "artist"}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []Entry         `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "42", body.Data[0].UserID)
	assert.Equal(t, ActionDocumentUpload, body.Data[0].Action)
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 1, Total: 2, TotalPages: 2}, body.Meta)
}

func TestHandler_Access(t *testing.T) {
	router := NewHandler(newService(&fakeRepository{})).Routes()

	tests := []struct {
		name   string
		target string
		claims *sec.AuthClaims
		status int
	}{
		{"anonymous own", "/", nil, http.StatusUnauthorized},
		{"artist reads other", "/users/7", &sec.AuthClaims{UserID: "42", Role: "artist"}, http.StatusForbidden},
		{"officer reads other", "/users/7", &sec.AuthClaims{UserID: "1", Role: "officer"}, http.StatusOK},
		{"admin reads other", "/users/7", &sec.AuthClaims{UserID: "1", Role: "admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, requestAs(http.MethodGet, tt.target, tt.claims))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
