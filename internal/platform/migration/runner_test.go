// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://portal:secret@db:5432/namsa?sslmode=disable", "pgx5://portal:secret@db:5432/namsa?sslmode=disable"},
		{"postgresql://db/namsa", "pgx5://db/namsa"},
		{"pgx5://db/namsa", "pgx5://db/namsa"},
		{"host=db dbname=namsa", "host=db dbname=namsa"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pgx5DSN(tt.in), tt.in)
	}
}
