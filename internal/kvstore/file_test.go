package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return s, path
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	type user struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	if err := Set(ctx, s, "ss_users", []user{{ID: 1, Name: "Juan"}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got := Get(ctx, s, "ss_users", []user(nil))
	if len(got) != 1 || got[0].ID != 1 || got[0].Name != "Juan" {
		t.Fatalf("unexpected value: %#v", got)
	}
}

func TestFileStoreMissingKeyReturnsDefault(t *testing.T) {
	s, _ := newTestFileStore(t)

	got := Get(context.Background(), s, "nope", 42)
	if got != 42 {
		t.Fatalf("expected default 42, got %d", got)
	}
}

func TestFileStoreParseFailureReturnsDefault(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "ss_user", []byte(`"not a number"`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := Get(ctx, s, "ss_user", 7)
	if got != 7 {
		t.Fatalf("expected default 7 on decode failure, got %d", got)
	}
}

func TestFileStoreLastWriteWins(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	if err := Set(ctx, s, "k", []int{1, 2, 3}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := Set(ctx, s, "k", []int{9}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got := Get(ctx, s, "k", []int(nil))
	if len(got) != 1 || got[0] != 9 {
		t.Fatalf("expected [9], got %v", got)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	s, path := newTestFileStore(t)
	ctx := context.Background()

	if err := Set(ctx, s, "ss_bookings", []string{"a", "b"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	got := Get(ctx, reopened, "ss_bookings", []string(nil))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected persisted value after reopen, got %v", got)
	}
}

func TestFileStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{{{ not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	got := Get(context.Background(), s, "ss_users", "fallback")
	if got != "fallback" {
		t.Fatalf("expected fallback from corrupt store, got %q", got)
	}
}
