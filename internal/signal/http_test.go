// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package signal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/internal/platform/sec"
)

type fakePublisher struct {
	events []Event
	err    error
}

func (publisher *fakePublisher) Publish(_ context.Context, event Event) error {
	if publisher.err != nil {
		return publisher.err
	}
	publisher.events = append(publisher.events, event)
	return nil
}

func post(handler *Handler, role sec.UserRole, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if role != "" {
		claims := &sec.AuthClaims{UserID: "1", Role: string(role)}
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Publish(t *testing.T) {
	publisher := &fakePublisher{}
	handler := NewHandler(publisher)

	recorder := post(handler, sec.RoleAdmin, `{"type":"profile","userId":"42"}`)
	require.Equal(t, http.StatusAccepted, recorder.Code, recorder.Body.String())
	assert.Equal(t, []Event{{Type: "profile", UserID: "42"}}, publisher.events)
}

func TestHandler_PublishRejects(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		body   string
		err    error
		status int
	}{
		{"anonymous", "", `{"type":"profile"}`, nil, http.StatusUnauthorized},
		{"artist", sec.RoleArtist, `{"type":"profile"}`, nil, http.StatusForbidden},
		{"officer", sec.RoleOfficer, `{"type":"profile"}`, nil, http.StatusForbidden},
		{"missing type", sec.RoleAdmin, `{"userId":"42"}`, nil, http.StatusBadRequest},
		{"broken json", sec.RoleAdmin, `{`, nil, http.StatusBadRequest},
		{"redis down", sec.RoleAdmin, `{"type":"profile"}`, errors.New("redis down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := &fakePublisher{err: tt.err}
			recorder := post(NewHandler(publisher), tt.role, tt.body)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Empty(t, publisher.events)
		})
	}
}
