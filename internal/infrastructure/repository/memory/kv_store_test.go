package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	err := store.SetMany(ctx, "ws-1",
		kvstore.Entry{Key: "gaffer_user", Value: []byte(`{"id":"user-1"}`)},
		kvstore.Entry{Key: "gaffer_members", Value: []byte(`[]`)},
	)
	if err != nil {
		t.Fatalf("set many: %v", err)
	}

	got, ok, err := store.Get(ctx, "ws-1", "gaffer_user")
	if err != nil || !ok {
		t.Fatalf("get user: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"id":"user-1"}` {
		t.Fatalf("unexpected value: %s", got)
	}

	got[0] = 'X'
	again, _, _ := store.Get(ctx, "ws-1", "gaffer_user")
	if again[0] != '{' {
		t.Fatalf("stored value aliased by caller mutation")
	}

	if _, ok, _ := store.Get(ctx, "ws-2", "gaffer_user"); ok {
		t.Fatalf("expected workspaces to be isolated")
	}

	if err := store.Delete(ctx, "ws-1", "gaffer_user", "gaffer_members", "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "ws-1", "gaffer_members"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestKVStore_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	if err := store.SetMany(ctx, "", kvstore.Entry{Key: "k"}); err == nil {
		t.Fatalf("expected error for empty namespace")
	}
	if err := store.SetMany(ctx, "ws", kvstore.Entry{Key: "ok"}, kvstore.Entry{Key: ""}); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, ok, _ := store.Get(ctx, "ws", "ok"); ok {
		t.Fatalf("rejected batch must not be partially applied")
	}
}

func TestFixtureRepository_ListAndGet(t *testing.T) {
	repo := NewFixtureRepository(SeedFixtures(fixedLoadTime))

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 || items[0].ID != "fix-1" {
		t.Fatalf("unexpected fixtures: %+v", items)
	}

	item, ok, err := repo.GetByID(context.Background(), "fix-2")
	if err != nil || !ok {
		t.Fatalf("get fix-2: ok=%v err=%v", ok, err)
	}
	if item.Difficulty != 5 {
		t.Fatalf("unexpected difficulty: %d", item.Difficulty)
	}

	if _, ok, _ := repo.GetByID(context.Background(), "missing"); ok {
		t.Fatalf("expected missing fixture")
	}
}

func TestFixtureRepository_DuplicateIDKeepsPosition(t *testing.T) {
	seed := SeedFixtures(fixedLoadTime)
	replacement := seed[0]
	replacement.Title = "Replacement FC"

	repo := NewFixtureRepository(append(seed, replacement))
	items, _ := repo.List(context.Background())
	if len(items) != len(seed) {
		t.Fatalf("expected %d fixtures, got %d", len(seed), len(items))
	}
	if items[0].ID != seed[0].ID || items[0].Title != "Replacement FC" {
		t.Fatalf("expected first slot replaced in place, got %+v", items[0])
	}

	items[0].Title = "mutated"
	again, _, _ := repo.GetByID(context.Background(), seed[0].ID)
	if again.Title != "Replacement FC" {
		t.Fatalf("list result aliased repository state: %+v", again)
	}
}
