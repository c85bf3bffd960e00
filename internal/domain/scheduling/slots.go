package scheduling

import "time"

// occupies reports whether an active appointment overlaps the window
// [start, end]. Boundaries are inclusive on both sides: an appointment
// ending exactly at start, or starting exactly at end, still counts as an
// overlap. Callers rely on this to keep adjacent bookings apart.
func occupies(a *Appointment, start, end time.Time) bool {
	if !a.Active() {
		return false
	}
	return !a.StartTime.After(end) && !a.End().Before(start)
}

// ComputeAvailableSlots partitions day's working window into slotLen steps
// and returns the start times of slots not occupied by any active
// appointment, in order. workStart and workEnd are offsets from midnight of
// day. Pure function, no side effects.
func ComputeAvailableSlots(existing []*Appointment, day time.Time, workStart, workEnd, slotLen time.Duration) []time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	free := []time.Time{}
	for off := workStart; off+slotLen <= workEnd; off += slotLen {
		slotStart := midnight.Add(off)
		slotEnd := slotStart.Add(slotLen)

		booked := false
		for _, a := range existing {
			if occupies(a, slotStart, slotEnd) {
				booked = true
				break
			}
		}
		if !booked {
			free = append(free, slotStart)
		}
	}
	return free
}

// HasConflict reports whether a proposed booking overlaps any active
// appointment in existing. Uses the same inclusive-boundary overlap test as
// the slot calculator.
func HasConflict(proposedStart time.Time, duration time.Duration, existing []*Appointment) bool {
	proposedEnd := proposedStart.Add(duration)
	for _, a := range existing {
		if occupies(a, proposedStart, proposedEnd) {
			return true
		}
	}
	return false
}
