package domain

import "time"

// defaultCustomInterval is used when a custom-kind task carries a missing or
// non-positive interval. Defaulting instead of failing avoids starving
// recurrence generation for misconfigured rows.
const defaultCustomInterval = 1

// NextOccurrence computes the calendar date of the next occurrence of the
// given task. It is pure and deterministic: no I/O, no clock reads.
//
// Returns the next date and true for recurring tasks (daily: +1 day,
// weekly: +7 days, custom: +CustomIntervalDays, defaulted to 1 when unset or
// non-positive). Returns a zero time and false when the task is not recurring
// or its kind is none/unset.
//
// The arithmetic uses AddDate on midnight-UTC calendar dates, so day steps
// can never be skipped or doubled by timezone or DST boundaries.
func NextOccurrence(t *Task) (time.Time, bool) {
	if !t.IsRecurring {
		return time.Time{}, false
	}

	date := DateOnly(t.OccurrenceDate)

	switch t.RecurrenceKind {
	case RecurrenceDaily:
		return date.AddDate(0, 0, 1), true
	case RecurrenceWeekly:
		return date.AddDate(0, 0, 7), true
	case RecurrenceCustom:
		interval := t.CustomIntervalDays
		if interval <= 0 {
			interval = defaultCustomInterval
		}
		return date.AddDate(0, 0, interval), true
	default:
		return time.Time{}, false
	}
}
