package adminclient

import (
	"errors"
	"testing"
)

func TestListViewLifecycle(t *testing.T) {
	var v ListView[testItem]

	if state, _, _, _ := v.Snapshot(); state != StateIdle {
		t.Fatalf("initial state = %v, want idle", state)
	}

	seq := v.Begin()
	if state, items, _, _ := v.Snapshot(); state != StateLoading || items != nil {
		t.Fatalf("after Begin: state = %v items = %v, want loading with no items", state, items)
	}

	ok := v.Complete(seq, []testItem{{ID: 1}}, Pagination{Total: 1, Page: 1, Limit: 20, Pages: 1})
	if !ok {
		t.Fatal("Complete rejected the current sequence")
	}
	state, items, p, err := v.Snapshot()
	if state != StateReady || len(items) != 1 || p.Total != 1 || err != nil {
		t.Errorf("after Complete: state=%v items=%d total=%d err=%v", state, len(items), p.Total, err)
	}
}

func TestListViewFail(t *testing.T) {
	var v ListView[testItem]
	seq := v.Begin()

	if !v.Fail(seq, errors.New("network down")) {
		t.Fatal("Fail rejected the current sequence")
	}
	state, _, _, err := v.Snapshot()
	if state != StateErrored || err == nil {
		t.Errorf("after Fail: state=%v err=%v", state, err)
	}
}

// Two overlapping fetches: the earlier response must be discarded even when
// it arrives last.
func TestListViewDiscardsStaleResponse(t *testing.T) {
	var v ListView[testItem]

	first := v.Begin()
	second := v.Begin()

	if !v.Complete(second, []testItem{{ID: 2, Name: "newer"}}, Pagination{Total: 1, Page: 1, Limit: 20, Pages: 1}) {
		t.Fatal("current response rejected")
	}
	if v.Complete(first, []testItem{{ID: 1, Name: "stale"}}, Pagination{Total: 5, Page: 1, Limit: 20, Pages: 1}) {
		t.Fatal("stale response was applied")
	}

	_, items, p, _ := v.Snapshot()
	if len(items) != 1 || items[0].Name != "newer" || p.Total != 1 {
		t.Errorf("view shows %v total=%d, want the newer response", items, p.Total)
	}

	// Stale failures are discarded too.
	if v.Fail(first, errors.New("late timeout")) {
		t.Error("stale failure was applied")
	}
	if state, _, _, _ := v.Snapshot(); state != StateReady {
		t.Errorf("state = %v, want ready", state)
	}
}

func TestListViewDrop(t *testing.T) {
	var v ListView[testItem]
	seq := v.Begin()
	v.Complete(seq, []testItem{{ID: 1}, {ID: 2}, {ID: 3}}, Pagination{Total: 3, Page: 1, Limit: 20, Pages: 1})

	if !v.Drop(func(it testItem) bool { return it.ID == 2 }) {
		t.Fatal("Drop found nothing")
	}
	_, items, p, _ := v.Snapshot()
	if len(items) != 2 || p.Total != 2 {
		t.Errorf("after Drop: %d items, total %d; want 2 and 2", len(items), p.Total)
	}
	for _, it := range items {
		if it.ID == 2 {
			t.Error("dropped item still present")
		}
	}

	if v.Drop(func(it testItem) bool { return it.ID == 99 }) {
		t.Error("Drop matched a missing item")
	}
}
