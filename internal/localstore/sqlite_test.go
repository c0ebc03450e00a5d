package localstore

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hub.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	t.Run("MissingKey", func(t *testing.T) {
		_, ok, err := store.Get("nope")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("Missing key should report ok=false")
		}
	})

	t.Run("PutGet", func(t *testing.T) {
		if err := store.Put(KeyProjects, []byte(`["Alpha"]`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		value, ok, err := store.Get(KeyProjects)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !ok || string(value) != `["Alpha"]` {
			t.Errorf("Get = %q, ok=%v", value, ok)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := store.Put(KeyProjects, []byte(`[]`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		value, _, _ := store.Get(KeyProjects)
		if string(value) != `[]` {
			t.Errorf("Overwrite did not stick, got %q", value)
		}
	})

	t.Run("Keys", func(t *testing.T) {
		if err := store.Put(ChatMessagesKey("u1"), []byte(`[]`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		keys, err := store.Keys()
		if err != nil {
			t.Fatalf("Keys failed: %v", err)
		}
		if len(keys) != 2 {
			t.Errorf("Expected 2 keys, got %v", keys)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(KeyProjects); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := store.Get(KeyProjects); ok {
			t.Error("Deleted key should be gone")
		}
		// Deleting again is a no-op.
		if err := store.Delete(KeyProjects); err != nil {
			t.Errorf("Deleting a missing key should not fail: %v", err)
		}
	})
}

func TestSQLiteStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hub.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Put(KeyUserChats, []byte(`[{"id":"u1"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get(KeyUserChats)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || string(value) != `[{"id":"u1"}]` {
		t.Errorf("Value did not survive reopen: %q, ok=%v", value, ok)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Put("a", []byte("1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("b", []byte("2")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, ok, _ := store.Get("a")
	if !ok || string(value) != "1" {
		t.Errorf("Get = %q, ok=%v", value, ok)
	}

	// Mutating the returned slice must not affect the stored value.
	value[0] = 'X'
	again, _, _ := store.Get("a")
	if string(again) != "1" {
		t.Error("Store returned an aliased slice")
	}

	keys, _ := store.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys = %v", keys)
	}

	store.Delete("a")
	if _, ok, _ := store.Get("a"); ok {
		t.Error("Deleted key should be gone")
	}
}
