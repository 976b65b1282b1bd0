// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/platform/ctxutil"
	requestutil "github.com/joelnust/namsa/internal/platform/request"
	"github.com/joelnust/namsa/internal/platform/sec"
	"github.com/joelnust/namsa/internal/platform/validate"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"object", `{"type":"profile"}`, true},
		{"trailing whitespace", "{\"type\":\"profile\"}\n", true},
		{"malformed", `{"type":`, false},
		{"two values", `{"type":"a"}{"type":"b"}`, false},
		{"oversized", `{"type":"` + strings.Repeat("x", 70<<10) + `"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target struct {
				Type string `json:"type"`
			}
			err := requestutil.DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &target)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, "profile", target.Type)
			} else {
				assert.ErrorIs(t, err, validate.ErrInvalidJSON)
			}
		})
	}
}

func TestRequiredUserID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := requestutil.RequiredUserID(request)
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)

	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "42"}))
	userID, err := requestutil.RequiredUserID(request)
	require.NoError(t, err)
	assert.Equal(t, "42", userID)
}
