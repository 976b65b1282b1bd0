// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity keeps a trail of what artists did with their profile.

Each submit and upload attempt is stored with its outcome and the message
the artist was shown. The trail is best effort: a failure to record never
changes the outcome of the operation being recorded.
*/
package activity

import (
	"time"

	"github.com/joelnust/namsa/internal/profile"
)

// Action names a recorded operation.
type Action string

const (
	ActionProfileCreate  Action = "profile_create"
	ActionProfileUpdate  Action = "profile_update"
	ActionDocumentUpload Action = "document_upload"
)

// Entry is one recorded attempt.
type Entry struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Action    Action           `json:"action"`
	Category  profile.Category `json:"category,omitempty"`
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	RequestID string           `json:"requestId,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
