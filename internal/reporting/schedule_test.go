package reporting

import (
	"testing"
	"time"
)

// 2025-03-03 is a Monday.
var scheduleRef = time.Date(2025, 3, 3, 10, 30, 0, 0, time.UTC)

func TestExpandScheduleMatchesSlotWeekday(t *testing.T) {
	slots := []ScheduleSlot{
		{SlotID: 1, ClassID: 1, ClassName: "Algebra", DayOfWeek: 1, StartMinutes: 540, EndMinutes: 600},
		{SlotID: 2, ClassID: 2, ClassName: "Chemistry", DayOfWeek: 4, StartMinutes: 840, EndMinutes: 930},
		{SlotID: 3, ClassID: 1, ClassName: "Algebra", DayOfWeek: 6, StartMinutes: 600, EndMinutes: 660},
	}

	byDay := map[int]int{}
	for _, s := range ExpandSchedule(slots, scheduleRef, 14) {
		if int(s.StartsAt.UTC().Weekday()) != s.DayOfWeek {
			t.Errorf("session %s: weekday %d does not match slot day %d",
				s.ID, int(s.StartsAt.UTC().Weekday()), s.DayOfWeek)
		}
		byDay[s.DayOfWeek]++
	}

	// Two full weeks: every slot occurs exactly twice.
	for _, day := range []int{1, 4, 6} {
		if byDay[day] != 2 {
			t.Errorf("day %d: got %d sessions, want 2", day, byDay[day])
		}
	}
}

func TestExpandScheduleZeroHorizonIsEmpty(t *testing.T) {
	slots := []ScheduleSlot{{SlotID: 1, DayOfWeek: 1, StartMinutes: 0, EndMinutes: 60}}

	for _, horizon := range []int{0, -1, -30} {
		if got := ExpandSchedule(slots, scheduleRef, horizon); len(got) != 0 {
			t.Errorf("horizon=%d: got %d sessions, want 0", horizon, len(got))
		}
	}
}

func TestExpandScheduleSortedByStart(t *testing.T) {
	// Deliberately unordered input across days and times.
	slots := []ScheduleSlot{
		{SlotID: 9, ClassID: 3, DayOfWeek: 5, StartMinutes: 1000, EndMinutes: 1060},
		{SlotID: 2, ClassID: 1, DayOfWeek: 1, StartMinutes: 600, EndMinutes: 660},
		{SlotID: 7, ClassID: 2, DayOfWeek: 1, StartMinutes: 540, EndMinutes: 600},
		{SlotID: 4, ClassID: 4, DayOfWeek: 3, StartMinutes: 60, EndMinutes: 120},
	}

	sessions := ExpandSchedule(slots, scheduleRef, 10)
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartsAt.Before(sessions[i-1].StartsAt) {
			t.Fatalf("session %d (%s) starts before session %d (%s)",
				i, sessions[i].StartsAt, i-1, sessions[i-1].StartsAt)
		}
	}
}

func TestExpandScheduleDeterministicIDs(t *testing.T) {
	slots := []ScheduleSlot{{SlotID: 42, ClassID: 1, DayOfWeek: 1, StartMinutes: 540, EndMinutes: 600}}

	first := ExpandSchedule(slots, scheduleRef, 7)
	if len(first) != 1 {
		t.Fatalf("got %d sessions, want 1", len(first))
	}
	if first[0].ID != "42-2025-03-03" {
		t.Errorf("got ID %q, want %q", first[0].ID, "42-2025-03-03")
	}

	// An overlapping re-expansion anchored later the same day produces the
	// same identifier for the same occurrence.
	second := ExpandSchedule(slots, scheduleRef.Add(6*time.Hour), 7)
	if len(second) != 1 || second[0].ID != first[0].ID {
		t.Errorf("overlapping expansion changed ID: %v vs %v", second, first)
	}
}

func TestExpandScheduleDegenerateSlotStillEmitted(t *testing.T) {
	// end <= start should never survive upstream validation, but expansion
	// must pass the anomaly through instead of failing.
	slots := []ScheduleSlot{{SlotID: 5, ClassID: 1, DayOfWeek: 1, StartMinutes: 600, EndMinutes: 540}}

	sessions := ExpandSchedule(slots, scheduleRef, 7)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if !sessions[0].EndsAt.Before(sessions[0].StartsAt) {
		t.Errorf("expected visible anomaly EndsAt < StartsAt, got start=%s end=%s",
			sessions[0].StartsAt, sessions[0].EndsAt)
	}
}

func TestExpandScheduleInstantsAreUTC(t *testing.T) {
	// A non-UTC reference must not leak its zone into the output.
	jakarta := time.FixedZone("WIB", 7*3600)
	ref := time.Date(2025, 3, 3, 1, 0, 0, 0, jakarta)

	slots := []ScheduleSlot{{SlotID: 1, ClassID: 1, DayOfWeek: 0, StartMinutes: 480, EndMinutes: 540}}
	sessions := ExpandSchedule(slots, ref, 7)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	// 2025-03-03 01:00 WIB is 2025-03-02 18:00 UTC, a Sunday.
	want := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	if !sessions[0].StartsAt.Equal(want) {
		t.Errorf("got start %s, want %s", sessions[0].StartsAt, want)
	}
}
