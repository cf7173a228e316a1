package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glabrego/arcade-cli/internal/bookmarks"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "arcade.db")
	repo, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func TestRepository_GetMissingKey(t *testing.T) {
	repo := newTestRepository(t)

	value, ok, err := repo.Get(context.Background(), "bookmarks")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok || value != nil {
		t.Fatalf("expected missing key, got ok=%v value=%q", ok, value)
	}
}

func TestRepository_SetUpserts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "bookmarks", []byte(`["Chess"]`)); err != nil {
		t.Fatalf("initial Set returned error: %v", err)
	}
	if err := repo.Set(ctx, "bookmarks", []byte(`["Chess","Go"]`)); err != nil {
		t.Fatalf("second Set returned error: %v", err)
	}

	value, ok, err := repo.Get(ctx, "bookmarks")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || string(value) != `["Chess","Go"]` {
		t.Fatalf("unexpected value: ok=%v value=%q", ok, value)
	}
}

func TestRepository_CheckWritableLeavesNoRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.CheckWritable(ctx); err != nil {
		t.Fatalf("CheckWritable returned error: %v", err)
	}
	if _, ok, err := repo.Get(ctx, "__write_check__"); err != nil || ok {
		t.Fatalf("expected write check to roll back, ok=%v err=%v", ok, err)
	}
}

func TestRepository_BacksBookmarkStoreAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "arcade.db")
	ctx := context.Background()

	repo, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	store := bookmarks.NewStore(repo, nil)
	store.Load(ctx)
	if _, err := store.Toggle(ctx, "Space War"); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	if err := reopened.Init(ctx); err != nil {
		t.Fatalf("Init on reopen returned error: %v", err)
	}

	loaded := bookmarks.NewStore(reopened, nil).Load(ctx)
	if !loaded.Has("Space War") {
		t.Fatalf("expected bookmark to survive reopen, got %v", loaded.Titles())
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	if err := mem.Set(ctx, "k", []byte("abc")); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	v, ok, _ := mem.Get(ctx, "k")
	if !ok || string(v) != "abc" {
		t.Fatalf("unexpected value: %q ok=%v", v, ok)
	}
	v[0] = 'z'
	again, _, _ := mem.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}
