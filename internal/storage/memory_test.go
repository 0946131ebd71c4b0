package storage

import "testing"

func TestMemoryGetSetRemove(t *testing.T) {
	m := NewMemory()

	if _, err := m.Get("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := m.Set("token", "t1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, err := m.Get("token")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "t1" {
		t.Fatalf("Get = %q, want %q", v, "t1")
	}

	if err := m.Remove("token"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := m.Get("token"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after Remove, got %v", err)
	}

	// removing an absent key is a no-op
	if err := m.Remove("token"); err != nil {
		t.Fatalf("Remove of absent key should not fail: %v", err)
	}
}
