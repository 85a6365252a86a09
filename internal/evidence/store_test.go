package evidence

import (
	"context"
	"slices"
	"testing"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := t.Context()

	if _, ok, err := store.Get(ctx, "/music/a"); err != nil || ok {
		t.Fatalf("Get on empty store = %v, %v", ok, err)
	}

	first := Evidence{HasValidLog: true, ReleaseIDs: []string{"rel-1", "rel-2"}}
	if err := store.Put(ctx, "/music/a", first); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, "/music/a", Evidence{}); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	got, ok, err := store.Get(ctx, "/music/a")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if !got.HasValidLog || !slices.Equal(got.ReleaseIDs, first.ReleaseIDs) {
		t.Fatalf("entry overwritten: %+v", got)
	}

	if err := store.Put(ctx, "/music/empty", Evidence{HasValidLog: true}); err != nil {
		t.Fatalf("Put empty: %v", err)
	}
	got, ok, err = store.Get(ctx, "/music/empty")
	if err != nil || !ok {
		t.Fatalf("Get empty = %v, %v", ok, err)
	}
	if !got.HasValidLog || len(got.ReleaseIDs) != 0 {
		t.Fatalf("empty evidence = %+v", got)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store)

	got, _, _ := store.Get(context.Background(), "/music/a")
	got.ReleaseIDs[0] = "mutated"
	again, _, _ := store.Get(context.Background(), "/music/a")
	if again.ReleaseIDs[0] != "rel-1" {
		t.Fatal("Get leaked internal slice")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLiteStore(t.Context())
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}

func TestCacheWithSQLiteStore(t *testing.T) {
	store, err := OpenSQLiteStore(t.Context())
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	root := writeTree(t, map[string]string{"rip.log": threeTrackLog})
	cache := New(&fakeLookup{results: map[string][]string{threeTrackTOC: {"rel-9"}}}, WithStore(store))
	for range 2 {
		ev, err := cache.ForDirectory(t.Context(), root)
		if err != nil {
			t.Fatalf("ForDirectory: %v", err)
		}
		if !ev.Contains("rel-9") {
			t.Fatalf("evidence = %+v", ev)
		}
	}
	if cache.Walks() != 1 {
		t.Fatalf("walks = %d", cache.Walks())
	}
}
