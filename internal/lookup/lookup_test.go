// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lookup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joelnust/namsa/internal/lookup"
)

var errRegistryDown = errors.New("registry unavailable")

// fakeSource serves canned tables and fails the ones listed in failing.
type fakeSource struct {
	failing map[string]bool
	calls   atomic.Int32
}

func (s *fakeSource) table(name string, entries ...lookup.Entry) (lookup.Table, error) {
	s.calls.Add(1)
	if s.failing[name] {
		return nil, errRegistryDown
	}
	return lookup.Table(entries), nil
}

func (s *fakeSource) GetTitles(context.Context) (lookup.Table, error) {
	return s.table("titles", lookup.Entry{ID: 1, Label: "Mr"}, lookup.Entry{ID: 2, Label: "Ms"})
}

func (s *fakeSource) GetBankNames(context.Context) (lookup.Table, error) {
	return s.table("bankNames", lookup.Entry{ID: 7, Label: "Bank Windhoek"})
}

func (s *fakeSource) GetMaritalStatuses(context.Context) (lookup.Table, error) {
	return s.table("maritalStatuses", lookup.Entry{ID: 1, Label: "Single"})
}

func (s *fakeSource) GetMemberCategories(context.Context) (lookup.Table, error) {
	return s.table("memberCategories", lookup.Entry{ID: 3, Label: "Composer"})
}

func (s *fakeSource) GetGenders(context.Context) (lookup.Table, error) {
	return s.table("genders", lookup.Entry{ID: 1, Label: "Female"})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestLoad_FailureIsolation verifies that failed tables are empty and the rest populated.
*/
func TestLoad_FailureIsolation(t *testing.T) {
	tests := []struct {
		name    string
		failing map[string]bool
	}{
		{"none_fail", map[string]bool{}},
		{"one_fails", map[string]bool{"bankNames": true}},
		{"subset_fails", map[string]bool{"titles": true, "genders": true}},
		{"all_fail", map[string]bool{"titles": true, "bankNames": true, "maritalStatuses": true, "memberCategories": true, "genders": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeSource{failing: tt.failing}
			tables := lookup.Load(context.Background(), source, discardLogger())

			assert.Equal(t, int32(5), source.calls.Load())

			check := func(name string, table lookup.Table) {
				assert.NotNil(t, table, name)
				if tt.failing[name] {
					assert.Empty(t, table, name)
				} else {
					assert.NotEmpty(t, table, name)
				}
			}
			check("titles", tables.Titles)
			check("bankNames", tables.BankNames)
			check("maritalStatuses", tables.MaritalStatuses)
			check("memberCategories", tables.MemberCategories)
			check("genders", tables.Genders)
		})
	}
}

func TestTable_Label(t *testing.T) {
	table := lookup.Table{{ID: 1, Label: "Mr"}, {ID: 2, Label: "Ms"}}

	label, ok := table.Label(2)
	assert.True(t, ok)
	assert.Equal(t, "Ms", label)

	_, ok = table.Label(9)
	assert.False(t, ok)
}
