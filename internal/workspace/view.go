// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"fmt"

	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/profile"
)

// # Page View

// Tone is the colour family of the status banner.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
	ToneWarning Tone = "warning"
)

// notAssigned is shown for identifiers the registry assigns on approval.
const notAssigned = "Pending"

// View is everything the browser needs to render the profile page.
type View struct {
	Loading    bool `json:"loading"`
	LoadFailed bool `json:"loadFailed"`
	Submitting bool `json:"submitting"`

	// Mode is "create" until a profile exists, then "update".
	Mode        string `json:"mode"`
	Heading     string `json:"heading"`
	Description string `json:"description"`

	Status  *StatusBanner  `json:"status,omitempty"`
	Tabs    []Tab          `json:"tabs"`
	Draft   profile.Draft  `json:"draft"`
	Uploads []UploadWidget `json:"uploads"`

	// Missing marks empty required fields; it does not block saving.
	Missing []apperr.FieldError `json:"missing,omitempty"`
}

// StatusBanner summarises the registry's review of the profile.
type StatusBanner struct {
	Status    profile.Status `json:"status"`
	Tone      Tone           `json:"tone"`
	ArtistID  string         `json:"artistId"`
	IPINumber string         `json:"ipiNumber"`
	Notes     string         `json:"notes,omitempty"`
}

// Tab is one of the two sections of the page.
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// UploadWidget is the state of one document category.
type UploadWidget struct {
	Category profile.Category `json:"category"`
	Label    string           `json:"label"`
	Accept   string           `json:"accept"`

	// Title is the title the staged file will be sent with.
	Title     string `json:"title"`
	FileName  string `json:"fileName,omitempty"`
	FileSize  string `json:"fileSize,omitempty"`
	Uploading bool   `json:"uploading"`
	CanUpload bool   `json:"canUpload"`

	Uploaded *profile.Document `json:"uploaded,omitempty"`
}

var tabs = []Tab{
	{ID: "profile", Label: "Profile Information"},
	{ID: "documents", Label: "Documents"},
}

// View renders the current state.
func (workspace *Workspace) View() View {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	view := View{
		Loading:     workspace.loads > 0,
		LoadFailed:  workspace.loadFailed,
		Submitting:  workspace.submitting,
		Mode:        "create",
		Heading:     "Create Profile",
		Description: "Complete your artist profile to start uploading music",
		Tabs:        append([]Tab(nil), tabs...),
		Draft:       workspace.draft.Clone(),
		Missing:     workspace.draft.Missing(),
	}

	if workspace.exists {
		view.Mode = "update"
		view.Heading = "Update Profile"
		view.Description = "Update your artist profile information"
	}

	if record := workspace.bundle.Profile; record != nil {
		view.Status = bannerOf(record)
	}

	for _, info := range profile.Categories() {
		slot := workspace.pending[info.Category]

		widget := UploadWidget{
			Category:  info.Category,
			Label:     info.Title,
			Accept:    info.Accept,
			Title:     slot.title,
			Uploading: slot.uploading,
			CanUpload: slot.file != nil && !slot.uploading,
		}
		if slot.file != nil {
			widget.FileName = slot.file.Name
			widget.FileSize = formatMegabytes(slot.file.Size())
		}
		if document, ok := workspace.bundle.Document(info.Category); ok {
			widget.Uploaded = &document
		}

		view.Uploads = append(view.Uploads, widget)
	}

	return view
}

func bannerOf(record *profile.Record) *StatusBanner {
	status := record.Status.Normalize()

	banner := &StatusBanner{
		Status:    status,
		Tone:      ToneWarning,
		ArtistID:  orPending(record.ArtistID),
		IPINumber: orPending(record.IPINumber),
		Notes:     record.Notes,
	}

	switch status {
	case profile.StatusApproved:
		banner.Tone = ToneSuccess
	case profile.StatusRejected:
		banner.Tone = ToneError
	}

	return banner
}

func orPending(value string) string {
	if value == "" {
		return notAssigned
	}
	return value
}

// formatMegabytes renders a byte count as mebibytes with two decimals.
func formatMegabytes(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}
