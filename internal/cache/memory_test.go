package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("t", time.Minute)

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get de key inexistente: want ErrNotFound, got %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("get = %q, want %q", got, "v")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get post-delete: want ErrNotFound, got %v", err)
	}
}

func TestMemory_PrefixIsolation(t *testing.T) {
	ctx := context.Background()
	a := NewMemory("a", time.Minute)
	b := NewMemory("b", time.Minute)

	if err := a.Set(ctx, "k", []byte("va"), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("prefijos distintos no deberían compartir keys: %v", err)
	}
}

func TestNew_UnknownKind(t *testing.T) {
	if _, err := New(Config{Kind: "etcd"}); err == nil {
		t.Fatal("kind desconocido debería fallar")
	}
}
