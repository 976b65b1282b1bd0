// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lookup loads the small reference tables the profile form selects from
(titles, bank names, marital statuses, member categories, genders).

The five tables are fetched concurrently. A table whose fetch fails degrades
to an empty list: one broken lookup must never prevent the page from
rendering. Tables are read only and live as long as the workspace that loaded
them.
*/
package lookup

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Entry is one selectable reference value.
type Entry struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Table is an ordered list of entries.
type Table []Entry

// Label returns the display label of id, if present.
func (t Table) Label(id int) (string, bool) {
	for _, entry := range t {
		if entry.ID == id {
			return entry.Label, true
		}
	}
	return "", false
}

// Tables groups the five reference tables of the profile form.
type Tables struct {
	Titles           Table `json:"titles"`
	BankNames        Table `json:"bankNames"`
	MaritalStatuses  Table `json:"maritalStatuses"`
	MemberCategories Table `json:"memberCategories"`
	Genders          Table `json:"genders"`
}

// Source is the registry surface the tables are read from.
type Source interface {
	GetTitles(ctx context.Context) (Table, error)
	GetBankNames(ctx context.Context) (Table, error)
	GetMaritalStatuses(ctx context.Context) (Table, error)
	GetMemberCategories(ctx context.Context) (Table, error)
	GetGenders(ctx context.Context) (Table, error)
}

// Load fetches all five tables concurrently and waits for every fetch.
//
// Each failed fetch is logged and yields an empty (non-nil) table; Load itself
// never fails. Cancelling ctx makes the pending fetches fail, and therefore
// empty, without affecting the ones already completed.
func Load(ctx context.Context, source Source, logger *slog.Logger) Tables {
	var tables Tables

	fetches := []struct {
		name   string
		fetch  func(context.Context) (Table, error)
		target *Table
	}{
		{"titles", source.GetTitles, &tables.Titles},
		{"bank_names", source.GetBankNames, &tables.BankNames},
		{"marital_statuses", source.GetMaritalStatuses, &tables.MaritalStatuses},
		{"member_categories", source.GetMemberCategories, &tables.MemberCategories},
		{"genders", source.GetGenders, &tables.Genders},
	}

	// The group is only used as a join point: no member returns an error, so
	// one failure never cancels its siblings.
	var group errgroup.Group
	for _, item := range fetches {
		group.Go(func() error {
			table, err := item.fetch(ctx)
			if err != nil {
				logger.Warn("lookup_fetch_failed",
					slog.String("table", item.name),
					slog.Any("error", err),
				)
				table = Table{}
			}
			if table == nil {
				table = Table{}
			}
			*item.target = table
			return nil
		})
	}
	_ = group.Wait()

	return tables
}
