// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts route parameters, JSON bodies and the caller's
identity from HTTP requests.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/internal/platform/validate"
)

// maxJSONBytes bounds JSON bodies. Files travel as multipart, never as JSON.
const maxJSONBytes = 64 << 10

/*
DecodeJSON decodes a single JSON value from the request body into target.

Parameters:
  - request: *http.Request
  - target: any (pointer to the destination)

Returns:
  - error: validate.ErrInvalidJSON for malformed, oversized or trailing input
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxJSONBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}

	// Exactly one value: anything after it is rejected.
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}

	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredUserID returns the registry user ID of the authenticated caller.

Returns:
  - string: User ID (the token's uid claim)
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil || claims.UserID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return claims.UserID, nil
}
