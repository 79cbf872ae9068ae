package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/solution"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
)

func TestVaultService_Search(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	env.signIn(t, "ws", "Guardiola")

	for _, id := range []string{"fix-1", "fix-3"} {
		if _, err := env.dashboard.Submit(ctx, "ws", id, textUpload(id)); err != nil {
			t.Fatalf("submit %s: %v", id, err)
		}
	}
	orphan := solution.Solution{
		ID:          "sol-orphan",
		FixtureID:   "fix-gone",
		UserID:      "user-x",
		UserName:    "Ghost",
		SubmittedAt: testLoadedAt,
		FileContent: "data:text/plain;base64,",
	}
	if err := env.solutions.Append(ctx, "ws", orphan); err != nil {
		t.Fatalf("append orphan: %v", err)
	}

	vault, err := env.vault.Search(ctx, "ws", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(vault.Entries) != 0 || len(vault.Expiring) != 0 {
		t.Fatalf("nothing is archived before any deadline, got %+v", vault)
	}

	env.advance(day + time.Hour)
	vault, _ = env.vault.Search(ctx, "ws", "")
	if len(vault.Entries) != 1 || vault.Entries[0].Fixture.ID != "fix-3" {
		t.Fatalf("expected only fix-3 archived, got %+v", vault.Entries)
	}
	if len(vault.Expiring) != 1 || vault.Expiring[0].ID != "fix-3" {
		t.Fatalf("expected fix-3 expiring, got %+v", vault.Expiring)
	}

	env.advance(3 * day)
	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 2},
		{query: "CALCULUS", want: 1},
		{query: "guardiola", want: 2},
		{query: "ghost", want: 0},
		{query: "chemistry", want: 0},
	}
	for _, tc := range tests {
		t.Run("query "+tc.query, func(t *testing.T) {
			got, err := env.vault.Search(ctx, "ws", tc.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got.Entries) != tc.want {
				t.Fatalf("query %q: got %d entries want %d", tc.query, len(got.Entries), tc.want)
			}
		})
	}

	env.now = testLoadedAt.Add(day + 21*day)
	vault, _ = env.vault.Search(ctx, "ws", "")
	for _, entry := range vault.Entries {
		if entry.Fixture.ID == "fix-3" {
			t.Fatalf("fix-3 must leave the vault exactly 21 days after its deadline")
		}
	}
}

func TestVaultService_File(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	env.signIn(t, "ws", "Guardiola")

	result, err := env.dashboard.Submit(ctx, "ws", "fix-3", Upload{FileName: "notes.txt", ContentType: "text/plain", Content: strings.NewReader("kickoff")})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := env.vault.File(ctx, "ws", result.Solution.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("file must be sealed before the deadline, got %v", err)
	}

	env.advance(2 * day)
	file, err := env.vault.File(ctx, "ws", result.Solution.ID)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if file.Name != "notes.txt" || file.MimeType != "text/plain" || string(file.Data) != "kickoff" {
		t.Fatalf("unexpected file: %+v", file)
	}

	if _, err := env.vault.File(ctx, "ws", "sol-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.vault.File(ctx, "ws", " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVaultService_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.vault.Search(t.Context(), "ws", ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if _, err := env.sessions.Login(t.Context(), "ws", user.User{ID: "u", Name: "n", Role: user.RolePlayer}, nil); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := env.vault.Search(t.Context(), "ws", ""); err != nil {
		t.Fatalf("search after login: %v", err)
	}
}
