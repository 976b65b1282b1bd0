// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the registry.
//
// Message is the registry's own user-facing explanation (the "message" field
// of its error body) and may be empty.
type Error struct {
	Op         string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registry %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("registry %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a registry 404.
//
// This is the only signal treated as "the artist has no profile yet"; every
// other failure of the documents call is a real error.
func IsNotFound(err error) bool {
	var registryError *Error
	return errors.As(err, &registryError) && registryError.StatusCode == http.StatusNotFound
}

// Details extracts the status code and server message carried by err.
// Transport failures report status 0 and no message.
func Details(err error) (status int, message string) {
	var registryError *Error
	if errors.As(err, &registryError) {
		return registryError.StatusCode, registryError.Message
	}
	return 0, ""
}
