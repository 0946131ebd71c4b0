package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "storefront.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	if _, err := f.Get("cart"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on fresh store, got %v", err)
	}

	if err := f.Set("cart", `[{"id":1,"qty":2}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := f.Set("token", "t1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// a fresh handle over the same path sees persisted values
	f2, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	v, err := f2.Get("cart")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != `[{"id":1,"qty":2}]` {
		t.Fatalf("unexpected value: %q", v)
	}

	if err := f2.Remove("cart"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := f2.Get("cart"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after Remove, got %v", err)
	}
	// the other key survives
	if v, err := f2.Get("token"); err != nil || v != "t1" {
		t.Fatalf("token should survive cart removal: %q %v", v, err)
	}
}

func TestFileCorruptStateTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0600); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if _, err := f.Get("cart"); err != ErrNotFound {
		t.Fatalf("corrupt file should read as empty, got %v", err)
	}
	// writes still work and replace the corrupt file
	if err := f.Set("token", "t1"); err != nil {
		t.Fatalf("Set over corrupt file failed: %v", err)
	}
	if v, _ := f.Get("token"); v != "t1" {
		t.Fatalf("unexpected value after recovery: %q", v)
	}
}
