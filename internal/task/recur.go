package task

import "time"

// NextOccurrence computes the next occurrence of a recurring date: it
// advances start by one period at a time until the result is no longer
// before now, and returns that first non-past date. A start already in
// the future comes back unmodified. Either input being absent yields
// nil.
//
// Month steps use time.AddDate, so calendar normalization applies
// (e.g. Jan 31 + 1 month rolls into March).
func NextOccurrence(start *time.Time, period Recurrence, now time.Time) *time.Time {
	if start == nil || period == RecurrenceNone {
		return nil
	}
	next := *start
	for next.Before(now) {
		switch period {
		case RecurrenceDaily:
			next = next.AddDate(0, 0, 1)
		case RecurrenceWeekly:
			next = next.AddDate(0, 0, 7)
		case RecurrenceMonthly:
			next = next.AddDate(0, 1, 0)
		default:
			return nil
		}
	}
	return &next
}
