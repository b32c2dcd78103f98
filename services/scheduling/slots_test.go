package scheduling

import (
	"testing"
	"time"
)

var testDay = time.Date(2023, 12, 11, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2023, 12, 11, hour, minute, 0, 0, time.UTC)
}

func TestComputeFreeSlotsFullDay(t *testing.T) {
	slots := ComputeFreeSlots(testDay, 9, 18, 60, 30, nil)

	if len(slots) == 0 {
		t.Fatal("expected slots on an empty day")
	}
	if !slots[0].Equal(at(9, 0)) {
		t.Errorf("first slot = %v, want 9:00", slots[0])
	}
	if !slots[len(slots)-1].Equal(at(17, 0)) {
		t.Errorf("last slot = %v, want 17:00", slots[len(slots)-1])
	}
	// 9:00 through 17:00 stepped by 30 minutes.
	if len(slots) != 17 {
		t.Errorf("got %d slots, want 17", len(slots))
	}

	for _, s := range slots {
		if s.Hour() < 9 {
			t.Errorf("slot %v starts before opening", s)
		}
		if s.Add(60 * time.Minute).After(at(18, 0)) {
			t.Errorf("slot %v runs past closing", s)
		}
	}
}

func TestComputeFreeSlotsExcludesConflicts(t *testing.T) {
	busy := []Interval{{Start: at(10, 0), End: at(11, 0)}}
	slots := ComputeFreeSlots(testDay, 9, 18, 60, 30, busy)

	want := map[string]bool{
		"09:00": true,  // ends exactly at the busy start
		"09:30": false, // runs into the busy interval
		"10:00": false,
		"10:30": false,
		"11:00": true, // back-to-back with the busy end
	}
	have := make(map[string]bool)
	for _, s := range slots {
		have[s.Format("15:04")] = true
	}
	for clock, free := range want {
		if have[clock] != free {
			t.Errorf("slot %s free = %v, want %v", clock, have[clock], free)
		}
	}
}

func TestComputeFreeSlotsIdempotent(t *testing.T) {
	busy := []Interval{
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(14, 30), End: at(15, 30)},
	}
	first := ComputeFreeSlots(testDay, 9, 18, 60, 30, busy)
	second := ComputeFreeSlots(testDay, 9, 18, 60, 30, busy)

	if len(first) != len(second) {
		t.Fatalf("slot counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("slot %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestComputeFreeSlotsNoPartialSlotAtClose(t *testing.T) {
	slots := ComputeFreeSlots(testDay, 9, 18, 90, 30, nil)

	last := slots[len(slots)-1]
	if !last.Equal(at(16, 30)) {
		t.Errorf("last 90-minute slot = %v, want 16:30", last)
	}
}

func TestComputeFreeSlotsDegenerateInputs(t *testing.T) {
	if got := ComputeFreeSlots(testDay, 18, 9, 60, 30, nil); got != nil {
		t.Errorf("inverted hours: got %v, want nil", got)
	}
	if got := ComputeFreeSlots(testDay, 9, 18, 0, 30, nil); got != nil {
		t.Errorf("zero duration: got %v, want nil", got)
	}
}

func TestIntervalOverlapsHalfOpen(t *testing.T) {
	iv := Interval{Start: at(10, 0), End: at(11, 0)}

	if iv.Overlaps(at(9, 0), at(10, 0)) {
		t.Error("back-to-back before should not overlap")
	}
	if iv.Overlaps(at(11, 0), at(12, 0)) {
		t.Error("back-to-back after should not overlap")
	}
	if !iv.Overlaps(at(10, 30), at(11, 30)) {
		t.Error("partial overlap not detected")
	}
	if !iv.Overlaps(at(9, 30), at(11, 30)) {
		t.Error("containing interval not detected")
	}
}
