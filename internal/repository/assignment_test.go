package repository

import (
	"testing"
	"time"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

func TestAssignmentLockKey(t *testing.T) {
	d1 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	// Same date and type always hash to the same key, regardless of the
	// time-of-day component.
	noon := time.Date(2024, 6, 3, 12, 30, 0, 0, time.UTC)
	if assignmentLockKey(d1, entities.ContentWord) != assignmentLockKey(noon, entities.ContentWord) {
		t.Error("lock key must depend on the calendar date only")
	}

	keys := map[int64]string{}
	for _, tc := range []struct {
		name string
		date time.Time
		ct   entities.ContentType
	}{
		{"word day1", d1, entities.ContentWord},
		{"word day2", d2, entities.ContentWord},
		{"grammar day1", d1, entities.ContentGrammar},
	} {
		key := assignmentLockKey(tc.date, tc.ct)
		if prev, dup := keys[key]; dup {
			t.Errorf("%s collides with %s on key %d", tc.name, prev, key)
		}
		keys[key] = tc.name
	}
}

func TestSortedIDs(t *testing.T) {
	in := []int64{5, 1, 3}

	got := sortedIDs(in)
	want := []int64{1, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedIDs(%v) = %v, want %v", in, got, want)
		}
	}

	// Input must not be mutated.
	if in[0] != 5 || in[1] != 1 || in[2] != 3 {
		t.Fatalf("input mutated: %v", in)
	}
}
