package scheduling

import (
	"testing"
	"time"
)

var (
	workStart = 9 * time.Hour
	workEnd   = 17 * time.Hour
	slotLen   = 30 * time.Minute
)

func day(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func appt(hour, min, durationMin int, status string) *Appointment {
	return &Appointment{
		StartTime:       day(hour, min),
		DurationMinutes: durationMin,
		Status:          status,
	}
}

func containsSlot(slots []time.Time, t time.Time) bool {
	for _, s := range slots {
		if s.Equal(t) {
			return true
		}
	}
	return false
}

func TestComputeAvailableSlots_EmptyDay(t *testing.T) {
	slots := ComputeAvailableSlots(nil, day(0, 0), workStart, workEnd, slotLen)

	if len(slots) != 16 {
		t.Fatalf("got %d slots, want 16 for an empty 09:00-17:00 day at 30min", len(slots))
	}
	if !slots[0].Equal(day(9, 0)) {
		t.Errorf("first slot = %v, want 09:00", slots[0])
	}
	if !slots[15].Equal(day(16, 30)) {
		t.Errorf("last slot = %v, want 16:30", slots[15])
	}
}

func TestComputeAvailableSlots_BookedSlotRemoved(t *testing.T) {
	existing := []*Appointment{appt(10, 0, 30, StatusScheduled)}
	slots := ComputeAvailableSlots(existing, day(0, 0), workStart, workEnd, slotLen)

	if containsSlot(slots, day(10, 0)) {
		t.Error("10:00 slot should be removed by a [10:00,10:30) booking")
	}
}

func TestComputeAvailableSlots_InclusiveBoundaries(t *testing.T) {
	// An appointment ending exactly at a slot's start, and one starting
	// exactly at a slot's end, both block that slot.
	existing := []*Appointment{appt(9, 30, 30, StatusScheduled)} // [09:30, 10:00]
	slots := ComputeAvailableSlots(existing, day(0, 0), workStart, workEnd, slotLen)

	if containsSlot(slots, day(9, 0)) {
		t.Error("09:00 slot should be blocked: its end touches the appointment start")
	}
	if containsSlot(slots, day(10, 0)) {
		t.Error("10:00 slot should be blocked: its start touches the appointment end")
	}
	if containsSlot(slots, day(9, 30)) {
		t.Error("09:30 slot should be blocked by the appointment itself")
	}
	if !containsSlot(slots, day(10, 30)) {
		t.Error("10:30 slot should remain free")
	}
}

func TestComputeAvailableSlots_CancelledFreesSlot(t *testing.T) {
	for _, status := range []string{StatusCancelled, StatusNoShow} {
		existing := []*Appointment{appt(10, 0, 30, status)}
		slots := ComputeAvailableSlots(existing, day(0, 0), workStart, workEnd, slotLen)
		if !containsSlot(slots, day(10, 0)) {
			t.Errorf("%s appointment should free the 10:00 slot", status)
		}
	}
}

func TestComputeAvailableSlots_CompletedStillOccupies(t *testing.T) {
	existing := []*Appointment{appt(10, 0, 30, StatusCompleted)}
	slots := ComputeAvailableSlots(existing, day(0, 0), workStart, workEnd, slotLen)
	if containsSlot(slots, day(10, 0)) {
		t.Error("completed appointment still occupies its window")
	}
}

func TestHasConflict(t *testing.T) {
	scheduled := appt(10, 0, 30, StatusScheduled)

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		existing []*Appointment
		want     bool
	}{
		{"identical interval", day(10, 0), 30 * time.Minute, []*Appointment{scheduled}, true},
		{"contained", day(10, 10), 10 * time.Minute, []*Appointment{scheduled}, true},
		{"straddles start", day(9, 45), 30 * time.Minute, []*Appointment{scheduled}, true},
		{"ends at existing start", day(9, 30), 30 * time.Minute, []*Appointment{scheduled}, true},
		{"starts at existing end", day(10, 30), 30 * time.Minute, []*Appointment{scheduled}, true},
		{"clearly before", day(8, 0), 30 * time.Minute, []*Appointment{scheduled}, false},
		{"clearly after", day(12, 0), 30 * time.Minute, []*Appointment{scheduled}, false},
		{"cancelled ignored", day(10, 0), 30 * time.Minute, []*Appointment{appt(10, 0, 30, StatusCancelled)}, false},
		{"no existing", day(10, 0), 30 * time.Minute, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasConflict(tc.start, tc.duration, tc.existing); got != tc.want {
				t.Errorf("HasConflict = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	for _, to := range []string{StatusCompleted, StatusCancelled, StatusNoShow} {
		if !CanTransition(StatusScheduled, to) {
			t.Errorf("scheduled -> %s should be allowed", to)
		}
	}
	for _, terminal := range []string{StatusCompleted, StatusCancelled, StatusNoShow} {
		for _, to := range []string{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow} {
			if CanTransition(terminal, to) {
				t.Errorf("%s -> %s should be rejected: terminal states are immutable", terminal, to)
			}
		}
	}
}
