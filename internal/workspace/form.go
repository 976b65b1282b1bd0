// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"context"
	"log/slog"
	"slices"

	"github.com/joelnust/namsa/internal/activity"
	"github.com/joelnust/namsa/internal/backend"
	"github.com/joelnust/namsa/internal/notify"
	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/profile"
)

const saveFallbackMessage = "Failed to save profile"

// # Draft Editing

// ChangeText applies one text or numeric input to the draft.
func (workspace *Workspace) ChangeText(name, value string) error {
	return workspace.edit(func(draft *profile.Draft) error {
		return draft.SetText(name, value)
	})
}

// ChangeReference applies one select input to the draft; an empty value
// clears the field.
func (workspace *Workspace) ChangeReference(name, value string) error {
	return workspace.edit(func(draft *profile.Draft) error {
		return draft.SetReference(name, value)
	})
}

// ApplyChanges applies a batch of inputs, routing each to [Workspace.ChangeText]
// or [Workspace.ChangeReference] by field name. Either every change is applied
// or none is.
func (workspace *Workspace) ApplyChanges(changes map[string]string) error {
	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}
	slices.Sort(names)

	return workspace.edit(func(draft *profile.Draft) error {
		for _, name := range names {
			var err error
			if profile.IsReferenceField(name) {
				err = draft.SetReference(name, changes[name])
			} else {
				err = draft.SetText(name, changes[name])
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Draft returns a copy of the current draft.
func (workspace *Workspace) Draft() profile.Draft {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	return workspace.draft.Clone()
}

// edit runs change on a copy of the draft and commits it on success.
func (workspace *Workspace) edit(change func(*profile.Draft) error) error {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	if workspace.closed {
		return ErrClosed
	}

	draft := workspace.draft.Clone()
	if err := change(&draft); err != nil {
		return err
	}
	workspace.draft = draft
	return nil
}

// # Submission

/*
Submit sends the draft to the registry: update when a profile exists, create
otherwise.

A second submit while one is in flight is rejected. Submitting is also refused
while the last load failed, since the exists flag cannot be trusted then. On
failure the draft and the exists flag are left untouched and the registry's
message (or a generic one) is queued as an error notification.

Returns:
  - error: ErrClosed, a 409 or 422 AppError, or the registry failure
*/
func (workspace *Workspace) Submit(ctx context.Context) error {
	workspace.mu.Lock()
	if workspace.closed {
		workspace.mu.Unlock()
		return ErrClosed
	}
	if workspace.submitting {
		workspace.mu.Unlock()
		return apperr.Conflict("The profile is already being saved")
	}
	if workspace.loadFailed {
		workspace.mu.Unlock()
		return apperr.Unprocessable("Profile data could not be loaded. Reload the page before saving")
	}

	workspace.submitting = true
	draft := workspace.draft.Clone()
	exists := workspace.exists
	workspace.mu.Unlock()

	action, save := activity.ActionProfileCreate, workspace.api.CreateProfile
	if exists {
		action, save = activity.ActionProfileUpdate, workspace.api.UpdateProfile
	}

	record, err := save(workspace.callContext(ctx), draft)

	workspace.mu.Lock()
	workspace.submitting = false
	if workspace.closed {
		workspace.mu.Unlock()
		return ErrClosed
	}

	if err != nil {
		workspace.mu.Unlock()

		status, message := backend.Details(err)
		appError := apperr.Upstream(status, message, saveFallbackMessage, err)

		workspace.logger.Warn("profile_save_failed",
			slog.String("action", string(action)),
			slog.Int("status", status),
			slog.Any("error", err),
		)
		submissionsTotal.WithLabelValues(string(action), "failed").Inc()
		workspace.notify(notify.Failure("Error", appError.Message))
		workspace.record(ctx, activity.Entry{Action: action, Success: false, Message: appError.Message})

		return appError
	}

	workspace.exists = true
	if record != nil {
		bundle := *workspace.bundle
		bundle.Profile = record
		workspace.bundle = &bundle
	}
	workspace.mu.Unlock()

	description := "Profile created successfully"
	if exists {
		description = "Profile updated successfully"
	}

	workspace.logger.Info("profile_saved", slog.String("action", string(action)))
	submissionsTotal.WithLabelValues(string(action), "saved").Inc()
	workspace.notify(notify.Info("Success", description))
	workspace.record(ctx, activity.Entry{Action: action, Success: true, Message: description})

	return nil
}
