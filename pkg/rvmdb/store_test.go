package rvmdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/funvibe/rvm/internal/typeir"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.sqlite")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreGetMiss(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss on an empty store")
	}
}

func TestStorePutThenGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	node := typeir.NewLiteral("hi")

	if err := s.Put(ctx, "digest-1", node, 1000); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "digest-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a hit after Put")
	}
	if got.Kind != typeir.KindLiteral || got.Literal != "hi" {
		t.Fatalf("got %+v, want the stored literal", got)
	}
}

func TestStorePutOverwritesExistingDigest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "digest-1", typeir.New(typeir.KindString), 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "digest-1", typeir.New(typeir.KindNumber), 2); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "digest-1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Kind != typeir.KindNumber {
		t.Fatalf("got %s, want the overwritten kind (number)", got.Kind)
	}
}

func TestStoreDeleteAndCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Put(ctx, "a", typeir.New(typeir.KindString), 1)
	s.Put(ctx, "b", typeir.New(typeir.KindNumber), 1)

	n, err := s.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("got count %d, err %v, want 2", n, err)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	n, err = s.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("got count %d, err %v, want 1 after deleting one entry", n, err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatalf("expected \"a\" to be gone after Delete")
	}
}
