// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr maps pgx errors onto [apperr.AppError] values.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/joelnust/namsa/internal/platform/apperr"
)

// SQLSTATE codes the portal reacts to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeQueryCanceled       = "57014"
)

// Wrap classifies a database error. Driver details stay in the cause and
// never reach the client.
//
// # Parameters
//   - err: Error returned by pgx.
//   - action: Short description of the failed statement, used as the resource name.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(action)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Conflict("Duplicate " + action)
		case codeForeignKeyViolation:
			return apperr.Unprocessable("Invalid reference for " + action)
		case codeQueryCanceled:
			return apperr.Internal(errors.Join(errors.New(action+" timed out"), err))
		}
	}

	return apperr.Internal(err)
}
