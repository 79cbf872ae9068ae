package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get kv entry: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestIsUndefinedTable(t *testing.T) {
	t.Run("matches 42P01", func(t *testing.T) {
		err := fmt.Errorf("select kv entry: %w", &pq.Error{Code: "42P01", Message: `relation "kv_entries" does not exist`})
		if !isUndefinedTable(err) {
			t.Fatalf("expected true for undefined table")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUndefinedTable(&pq.Error{Code: "23505"}) {
			t.Fatalf("expected false for unique violation")
		}
		if isUndefinedTable(fmt.Errorf("plain")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestFormatQueryForTrace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "   ", want: ""},
		{name: "collapses whitespace", in: "SELECT value\n\tFROM kv_entries\n  WHERE key = $1", want: "SELECT value FROM kv_entries WHERE key = $1"},
		{name: "truncates", in: strings.Repeat("x", maxTracedQueryLength+10), want: strings.Repeat("x", maxTracedQueryLength) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatQueryForTrace(tt.in); got != tt.want {
				t.Fatalf("formatQueryForTrace(%q)=%q want=%q", tt.in, got, tt.want)
			}
		})
	}
}
