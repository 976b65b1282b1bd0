// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joelnust/namsa/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"?page=-2&limit=0", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?limit=10000", pagination.Params{Page: 1, Limit: pagination.MaxLimit}},
		{"?page=two&limit=ten", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
	}

	for _, tt := range tests {
		got := pagination.FromRequest(httptest.NewRequest("GET", "/"+tt.query, nil))
		assert.Equal(t, tt.want, got, tt.query)
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 2, Limit: 20}, 41)
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 20, Total: 41, TotalPages: 3}, meta)

	assert.Zero(t, pagination.NewMeta(pagination.Params{Page: 1, Limit: 20}, 0).TotalPages)
}
