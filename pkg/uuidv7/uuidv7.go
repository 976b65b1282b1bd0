// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 generates time-ordered identifiers for activity entries.
// Ordering by ID matches ordering by creation time.
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string. It falls back to a random v4 if the clock
// sequence cannot be read.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
