// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer holds generic helpers for optional values modelled as
// pointers, such as the nullable reference fields of a profile draft.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Copy returns a pointer to a fresh copy of *p, or nil when p is nil.
// The result never aliases p.
func Copy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return To(*p)
}
