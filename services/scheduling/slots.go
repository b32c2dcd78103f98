package scheduling

import "time"

// Interval is a half-open busy interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end) intersects the interval. Two
// half-open intervals conflict iff startA < endB && endA > startB, so
// back-to-back bookings never collide.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}

// ComputeFreeSlots returns every candidate start instant on the calendar day
// containing day, stepped by granularityMin from the opening hour, whose
// full duration fits before the closing hour and conflicts with no busy
// interval. The result is ascending and a pure function of its inputs.
func ComputeFreeSlots(day time.Time, openHour, closeHour, durationMin, granularityMin int, busy []Interval) []time.Time {
	if durationMin <= 0 || granularityMin <= 0 || closeHour <= openHour {
		return nil
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	open := dayStart.Add(time.Duration(openHour) * time.Hour)
	close := dayStart.Add(time.Duration(closeHour) * time.Hour)

	duration := time.Duration(durationMin) * time.Minute
	step := time.Duration(granularityMin) * time.Minute

	var slots []time.Time
	for start := open; !start.Add(duration).After(close); start = start.Add(step) {
		end := start.Add(duration)

		conflict := false
		for _, iv := range busy {
			if iv.Overlaps(start, end) {
				conflict = true
				break
			}
		}
		if !conflict {
			slots = append(slots, start)
		}
	}
	return slots
}

// conflictsWith reports whether [start, start+durationMin) overlaps any busy
// interval, optionally ignoring intervals tagged with excludeID.
func conflictsWith(start time.Time, durationMin int, busy []taggedInterval, excludeID string) bool {
	end := start.Add(time.Duration(durationMin) * time.Minute)
	for _, iv := range busy {
		if excludeID != "" && iv.id == excludeID {
			continue
		}
		if iv.Overlaps(start, end) {
			return true
		}
	}
	return false
}

type taggedInterval struct {
	Interval
	id string
}
