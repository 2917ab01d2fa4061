package kv_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"learnify/internal/platform/kv"
)

func exerciseStore(t *testing.T, store kv.Store) {
	t.Helper()
	ctx := context.Background()
	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%t err=%v", ok, err)
	}
	for key, value := range map[string]string{"progress_c1": "42", "progress_c2": "7", "theme": "dark"} {
		if err := store.Set(ctx, key, value); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	if err := store.Set(ctx, "progress_c1", "43"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := store.Get(ctx, "progress_c1")
	if err != nil || !ok || v != "43" {
		t.Fatalf("expected overwritten value 43, got %q ok=%t err=%v", v, ok, err)
	}
	keys, err := store.Keys(ctx, "progress_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"progress_c1", "progress_c2"}) {
		t.Fatalf("unexpected keys %v", keys)
	}
	if err := store.Delete(ctx, "progress_c2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	keys, _ = store.Keys(ctx, "progress_")
	if len(keys) != 1 {
		t.Fatalf("expected one key after delete, got %v", keys)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	exerciseStore(t, kv.NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	store, err := kv.NewSQLiteStore(filepath.Join(t.TempDir(), ".learnify", "learnify.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "learnify.db")
	store, err := kv.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	if err := store.Set(context.Background(), "learnify_theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = store.Close()

	reopened, err := kv.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	v, ok, err := reopened.Get(context.Background(), "learnify_theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("expected persisted value, got %q ok=%t err=%v", v, ok, err)
	}
}

func TestNamespacedIsolatesKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backing := kv.NewMemoryStore()
	_ = backing.Set(ctx, "other_progress_x", "1")
	ns := kv.NewNamespaced(backing, "learnify_")
	exerciseStore(t, ns)
	if _, ok, _ := backing.Get(ctx, "learnify_progress_c1"); !ok {
		t.Fatalf("namespaced key must be stored with prefix")
	}
	keys, _ := ns.Keys(ctx, "")
	for _, key := range keys {
		if key == "other_progress_x" || key == "_progress_x" {
			t.Fatalf("foreign key leaked into namespace: %v", keys)
		}
	}
}
