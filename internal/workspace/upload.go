// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joelnust/namsa/internal/activity"
	"github.com/joelnust/namsa/internal/backend"
	"github.com/joelnust/namsa/internal/notify"
	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/profile"
)

// uploadFunc sends one staged file to its registry endpoint.
type uploadFunc func(api API, ctx context.Context, file *profile.File, title string) error

// uploaders maps every category to its registry call.
var uploaders = map[profile.Category]uploadFunc{
	profile.CategoryPassportPhoto:          API.UploadPassportPhoto,
	profile.CategoryIDDocument:             API.UploadIDDocument,
	profile.CategoryBankConfirmationLetter: API.UploadBankConfirmationLetter,
	profile.CategoryProofOfPayment:         API.UploadProofOfPayment,
}

// # Staging

/*
Stage puts file into the slot of category, replacing any staged file.

A nil file clears the slot. A non-empty title replaces the slot's title;
otherwise the current title is kept.
*/
func (workspace *Workspace) Stage(category profile.Category, file *profile.File, title string) error {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	slot, err := workspace.slot(category)
	if err != nil {
		return err
	}

	slot.file = file
	if title = strings.TrimSpace(title); title != "" {
		slot.title = title
	}
	return nil
}

// SetTitle changes the title the staged document of category is sent with.
func (workspace *Workspace) SetTitle(category profile.Category, title string) error {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	slot, err := workspace.slot(category)
	if err != nil {
		return err
	}

	slot.title = title
	return nil
}

// slot returns the staging slot of category. The caller holds the lock.
func (workspace *Workspace) slot(category profile.Category) (*pending, error) {
	if workspace.closed {
		return nil, ErrClosed
	}
	slot, ok := workspace.pending[category]
	if !ok {
		return nil, apperr.NotFound("Document category")
	}
	return slot, nil
}

// # Upload

/*
Upload sends the staged file of category to the registry.

  - Without a staged file, a "No File Selected" notification is queued and no
    call is made.
  - While the category is uploading, a second upload is rejected.
  - On success the staged file is cleared (its title is kept), a success
    notification is queued and the document bundle is refreshed.
  - On failure the staged file and title are kept and the registry's message
    (or a generic one) is queued as an error notification.

Categories are independent: uploads of different categories may run at the
same time.
*/
func (workspace *Workspace) Upload(ctx context.Context, category profile.Category) error {
	upload, ok := uploaders[category]
	if !ok {
		return apperr.NotFound("Document category")
	}

	workspace.mu.Lock()
	slot, err := workspace.slot(category)
	if err != nil {
		workspace.mu.Unlock()
		return err
	}
	if slot.file == nil {
		workspace.mu.Unlock()
		workspace.notify(notify.Failure("No File Selected", "Please select a file to upload"))
		return apperr.ValidationError("Please select a file to upload")
	}
	if slot.uploading {
		workspace.mu.Unlock()
		return apperr.Conflict("This document is already being uploaded")
	}

	slot.uploading = true
	file, title := slot.file, slot.title
	workspace.mu.Unlock()

	callCtx := workspace.callContext(ctx)
	err = upload(workspace.api, callCtx, file, title)

	workspace.mu.Lock()
	slot.uploading = false
	if workspace.closed {
		workspace.mu.Unlock()
		return ErrClosed
	}

	if err != nil {
		workspace.mu.Unlock()

		status, message := backend.Details(err)
		appError := apperr.Upstream(status, message, "Failed to upload "+title, err)

		workspace.logger.Warn("document_upload_failed",
			slog.String("category", string(category)),
			slog.Int("status", status),
			slog.Any("error", err),
		)
		uploadsTotal.WithLabelValues(string(category), "failed").Inc()
		workspace.notify(notify.Failure("Upload Failed", appError.Message))
		workspace.record(ctx, activity.Entry{Action: activity.ActionDocumentUpload, Category: category, Success: false, Message: appError.Message})

		return appError
	}

	// A file staged while this one was in flight stays staged.
	if slot.file == file {
		slot.file = nil
	}
	workspace.mu.Unlock()

	description := title + " uploaded successfully!"

	workspace.logger.Info("document_uploaded",
		slog.String("category", string(category)),
		slog.Int64("bytes", file.Size()),
	)
	uploadedBytes.WithLabelValues(string(category)).Observe(float64(file.Size()))
	uploadsTotal.WithLabelValues(string(category), "uploaded").Inc()
	workspace.notify(notify.Info("Upload Successful", description))
	workspace.record(ctx, activity.Entry{Action: activity.ActionDocumentUpload, Category: category, Success: true, Message: description})

	workspace.refreshDocuments(callCtx)
	return nil
}

// refreshDocuments re-reads the bundle after an upload. A failed refresh
// keeps the previous bundle; the upload itself has already succeeded.
func (workspace *Workspace) refreshDocuments(callCtx context.Context) {
	bundle, err := workspace.api.GetDocuments(callCtx)
	if err != nil {
		workspace.logger.Warn("document_refresh_failed", slog.Any("error", err))
		return
	}

	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	if workspace.closed || bundle == nil {
		return
	}
	if bundle.Documents == nil {
		bundle.Documents = map[profile.Category]profile.Document{}
	}
	workspace.bundle = bundle
}
