package store_test

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"gemba.tools/internal/store"
	"gemba.tools/internal/store/filekv"
	"gemba.tools/internal/store/sqlitekv"
)

func newFileAdapter(t *testing.T) *store.Adapter {
	t.Helper()
	kv, err := filekv.New(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("filekv.New: %v", err)
	}
	return store.NewAdapter(kv, zap.NewNop())
}

func TestGetMissingKeyLeavesDefault(t *testing.T) {
	a := newFileAdapter(t)

	got := []string{"default"}
	if a.Get("nothing", &got) {
		t.Fatal("expected miss for unwritten key")
	}
	if len(got) != 1 || got[0] != "default" {
		t.Fatalf("default clobbered: %v", got)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	a := newFileAdapter(t)

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if !a.Set("doc", doc{Name: "linha-a", Count: 3}) {
		t.Fatal("Set failed")
	}
	var got doc
	if !a.Get("doc", &got) {
		t.Fatal("Get missed a written key")
	}
	if got.Name != "linha-a" || got.Count != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCorruptEntryClearedAndDefaulted(t *testing.T) {
	fs := afero.NewMemMapFs()
	kv, err := filekv.New(fs, "/data")
	if err != nil {
		t.Fatalf("filekv.New: %v", err)
	}
	if err := kv.Write("audits", []byte(`{not json`)); err != nil {
		t.Fatalf("seed corrupt payload: %v", err)
	}

	a := store.NewAdapter(kv, zap.NewNop())
	var out []string
	if a.Get("audits", &out) {
		t.Fatal("corrupt payload must read as a miss")
	}
	// the bad entry is gone, so a second read is a plain miss
	if _, err := kv.Read("audits"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("corrupt entry not cleared: %v", err)
	}
}

// Type-mismatch corruption: a stored object where a list is expected behaves
// the same as malformed JSON.
func TestWrongShapeTreatedAsCorrupt(t *testing.T) {
	a := newFileAdapter(t)
	if !a.Set("audits", map[string]string{"stray": "object"}) {
		t.Fatal("Set failed")
	}
	var out []string
	if a.Get("audits", &out) {
		t.Fatal("object payload must not decode into a list")
	}
	if a.Get("audits", &out) {
		t.Fatal("entry should have been cleared after the failed decode")
	}
}

func TestRemove(t *testing.T) {
	a := newFileAdapter(t)
	a.Set("session", "x")
	if !a.Remove("session") {
		t.Fatal("Remove failed")
	}
	if !a.Remove("session") {
		t.Fatal("Remove of a missing key should succeed")
	}
	var got string
	if a.Get("session", &got) {
		t.Fatal("removed key still readable")
	}
}

// Both backends must satisfy the same KV contract.
func TestBackendConformance(t *testing.T) {
	sqliteStore, err := sqlitekv.Open(":memory:")
	if err != nil {
		t.Fatalf("sqlitekv.Open: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	fileStore, err := filekv.New(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("filekv.New: %v", err)
	}

	backends := map[string]store.KV{
		"filekv":   fileStore,
		"sqlitekv": sqliteStore,
	}
	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Read("absent"); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("read of absent key: got %v, want ErrNotFound", err)
			}
			if err := kv.Write("k", []byte(`"v1"`)); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := kv.Write("k", []byte(`"v2"`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			raw, err := kv.Read("k")
			if err != nil || string(raw) != `"v2"` {
				t.Fatalf("read after overwrite: %s, %v", raw, err)
			}
			if err := kv.Delete("k"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := kv.Read("k"); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("read after delete: got %v, want ErrNotFound", err)
			}
			if err := kv.Delete("k"); err != nil {
				t.Fatalf("delete of missing key must be benign: %v", err)
			}
		})
	}
}
