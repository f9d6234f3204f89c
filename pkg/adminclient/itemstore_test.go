package adminclient

import "testing"

func TestItemStoreOptimisticFlow(t *testing.T) {
	s := NewItemStore[int, testItem]()

	s.Confirm(1, testItem{ID: 1, IsActive: true})

	// Optimistic flip is visible immediately.
	s.Stage(1, testItem{ID: 1, IsActive: false})
	if v, _ := s.Get(1); v.IsActive {
		t.Error("staged value not visible")
	}

	// Server rejects: roll back to last confirmed.
	s.Rollback(1)
	if v, _ := s.Get(1); !v.IsActive {
		t.Error("rollback did not restore confirmed value")
	}

	// Server accepts: confirmed state replaces the pending edit.
	s.Stage(1, testItem{ID: 1, IsActive: false})
	s.Confirm(1, testItem{ID: 1, IsActive: false})
	if v, _ := s.Get(1); v.IsActive {
		t.Error("confirm did not apply server value")
	}
}

func TestItemStoreRemove(t *testing.T) {
	s := NewItemStore[int, testItem]()
	s.Confirm(7, testItem{ID: 7})
	s.Stage(7, testItem{ID: 7, Name: "edited"})

	s.Remove(7)
	if _, ok := s.Get(7); ok {
		t.Error("removed item still readable")
	}
}

func TestItemStoreMissingKey(t *testing.T) {
	s := NewItemStore[int, testItem]()
	if _, ok := s.Get(42); ok {
		t.Error("missing key reported as present")
	}
	// Rollback of a key with no pending edit is a no-op.
	s.Rollback(42)
}
