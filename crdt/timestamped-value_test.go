package crdt

import (
	"testing"
	"time"
)

// Functions

// TestIsBefore executes a white-box unit test
// on implemented IsBefore() and IsBeforeTimestamp().
func TestIsBefore(t *testing.T) {

	early := NewTimestampedValue("early", Logical(1))
	late := NewTimestampedValue("late", Logical(2))
	same := NewTimestampedValue("same", Logical(1))

	if !early.IsBefore(late) {
		t.Fatalf("[crdt.TestIsBefore] Expected '%v' to be before '%v' but IsBefore() returned false.\n", early.Timestamp(), late.Timestamp())
	}

	if late.IsBefore(early) {
		t.Fatalf("[crdt.TestIsBefore] Expected '%v' not to be before '%v' but IsBefore() returned true.\n", late.Timestamp(), early.Timestamp())
	}

	if early.IsBefore(same) || same.IsBefore(early) {
		t.Fatal("[crdt.TestIsBefore] Expected equal timestamps not to be before each other.")
	}

	if !early.IsBeforeTimestamp(Logical(5)) {
		t.Fatal("[crdt.TestIsBefore] Expected timestamp 1 to be before raw timestamp 5.")
	}

	if early.IsBeforeTimestamp(Logical(1)) {
		t.Fatal("[crdt.TestIsBefore] Expected timestamp 1 not to be before raw timestamp 1.")
	}

	if early.Value() != "early" {
		t.Fatalf("[crdt.TestIsBefore] Expected value 'early' but found '%s'.\n", early.Value())
	}
}

// TestIsBeforeWallClock makes sure time.Time
// can be used as timestamp type directly.
func TestIsBeforeWallClock(t *testing.T) {

	now := time.Date(2007, 7, 7, 7, 7, 7, 0, time.UTC)

	first := NewTimestampedValue(1, now)
	second := NewTimestampedValue(2, now.Add(time.Nanosecond))

	if !first.IsBefore(second) {
		t.Fatal("[crdt.TestIsBeforeWallClock] Expected earlier wall clock value to be before later one.")
	}

	// Same instant in another location is still equal.
	sameInstant := now.In(time.FixedZone("UTC+2", 2*60*60))
	if first.IsBeforeTimestamp(sameInstant) || !isBeforeWithBias(now, sameInstant, true) {
		t.Fatal("[crdt.TestIsBeforeWallClock] Expected same instant in different zones to compare equal.")
	}
}

// TestIsBeforeWithBias checks the tie-break helper.
func TestIsBeforeWithBias(t *testing.T) {

	if !isBeforeWithBias(Logical(1), Logical(2), false) {
		t.Fatal("[crdt.TestIsBeforeWithBias] Expected 1 before 2 without bias.")
	}

	if isBeforeWithBias(Logical(2), Logical(2), false) {
		t.Fatal("[crdt.TestIsBeforeWithBias] Expected tie not to count as before without bias.")
	}

	if !isBeforeWithBias(Logical(2), Logical(2), true) {
		t.Fatal("[crdt.TestIsBeforeWithBias] Expected tie to count as before with bias.")
	}

	if isBeforeWithBias(Logical(3), Logical(2), true) {
		t.Fatal("[crdt.TestIsBeforeWithBias] Expected 3 not to be before 2 even with bias.")
	}
}
