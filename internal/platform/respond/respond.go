// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond writes the portal's JSON envelopes.
//
// # Envelopes
//
// The browser renders views and toasts straight from these bodies:
//
//	{"data": ...}                                  success
//	{"data": [...], "meta": {...}}                 one page of a list
//	{"error": "...", "code": "...", "requestId": "..."}  failure
//
// Every body describes one artist's private page, so nothing is cacheable.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/pkg/pagination"
)

// SuccessEnvelope wraps a single payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps one page of a list.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the body of every failed request.
//
// RequestID lets an artist quote the failure to support.
type ErrorEnvelope struct {
	Error     string              `json:"error"`
	Code      string              `json:"code"`
	Details   []apperr.FieldError `json:"details,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// JSON writes payload with statusCode.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	header := writer.Header()
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("Cache-Control", "no-store")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 with data.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Accepted writes a 202 for work handed to someone else (e.g. a published signal).
func Accepted(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusAccepted, SuccessEnvelope{Data: data})
}

// Paginated writes a 200 with one page and its metadata.
func Paginated(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

// NoContent writes a 204.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error renders err as an [ErrorEnvelope].

Errors that are not an [apperr.AppError] become a generic 500 and their text
never reaches the client. Registry failures keep the status and message
chosen by [apperr.Upstream].
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	context := request.Context()
	logger := ctxutil.GetLogger(context)
	requestID := ctxutil.GetRequestID(context)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger.ErrorContext(context, "unhandled_error_swallowed", slog.String("error", err.Error()))
		appError = apperr.Internal(err)
	}

	switch {
	case appError.Code == apperr.CodeUpstreamError || appError.Code == apperr.CodeUpstreamRejected:
		logger.WarnContext(context, "registry_error_forwarded",
			slog.String("code", appError.Code),
			slog.Int("status", appError.HTTPStatus),
			slog.Any("cause", appError.Cause),
		)
	case appError.HTTPStatus >= http.StatusInternalServerError:
		logger.ErrorContext(context, "api_server_error",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:     appError.Message,
		Code:      appError.Code,
		Details:   appError.Details,
		RequestID: requestID,
	})
}
