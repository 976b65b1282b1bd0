// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import "context"

// # Activity Data Access

// Repository defines the persistence contract of the activity trail.
type Repository interface {

	/*
		Insert stores one entry.

		Parameters:
		  - context: context.Context
		  - entry: *Entry (ID and CreatedAt already set)

		Returns:
		  - error: Database execution failures
	*/
	Insert(context context.Context, entry *Entry) error

	/*
		ListByUser returns one page of a user's entries, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Entry: Entries, never nil
		  - int: Total number of entries of the user
		  - error: Database retrieval failures
	*/
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Entry, int, error)
}
