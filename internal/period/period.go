// Package period computes budget period boundaries. All math is in
// whole local calendar days; callers pass "now" explicitly so the
// engine stays clock-free and testable.
package period

import (
	"time"

	"github.com/moneta-dev/moneta/internal/model"
)

// CurrentRange returns the period containing now. Monthly and yearly
// budgets use the calendar month/year; weekly periods are phase-locked
// to the anchor's weekday, not to a fixed Sunday or Monday.
func CurrentRange(t model.PeriodType, anchor, now time.Time) (start, end time.Time) {
	now = Day(now)
	switch t {
	case model.PeriodWeekly:
		offset := (int(now.Weekday()) - int(Day(anchor).Weekday()) + 7) % 7
		start = now.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 6)
	case model.PeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.Local)
	default: // monthly
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		end = start.AddDate(0, 1, -1)
	}
	return start, end
}

// NextRange returns the period that follows one ending on currentEnd:
// it starts the next day and ends per the period type's calendar rule.
func NextRange(t model.PeriodType, currentEnd time.Time) (start, end time.Time) {
	start = Day(currentEnd).AddDate(0, 0, 1)
	switch t {
	case model.PeriodWeekly:
		end = start.AddDate(0, 0, 6)
	case model.PeriodYearly:
		end = time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, time.Local)
	default: // monthly
		end = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1)
	}
	return start, end
}

// PreviousRange mirrors a period's length backward from its start.
// Used for rollover so the prior window exists even when no
// BudgetPeriod row was ever materialized for it, and so short first or
// last periods mirror their actual length rather than an assumed 30/7.
func PreviousRange(start, end time.Time) (prevStart, prevEnd time.Time) {
	length := Days(start, end)
	prevEnd = Day(start).AddDate(0, 0, -1)
	prevStart = prevEnd.AddDate(0, 0, -(length - 1))
	return prevStart, prevEnd
}

// Days counts the actual elapsed days between start and end inclusive.
// Month lengths vary, so this is never assumed to be 30/7/365. The
// calculation goes through UTC so DST transitions cannot shorten or
// stretch a day.
func Days(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Day truncates a timestamp to its local calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
