package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moneta-dev/moneta/internal/model"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.Local)
}

func TestCurrentRange_Monthly(t *testing.T) {
	start, end := CurrentRange(model.PeriodMonthly, d(2023, time.May, 10), d(2024, time.February, 14))
	assert.Equal(t, d(2024, time.February, 1), start)
	assert.Equal(t, d(2024, time.February, 29), end) // leap year
}

func TestCurrentRange_Yearly(t *testing.T) {
	start, end := CurrentRange(model.PeriodYearly, d(2020, time.June, 1), d(2024, time.August, 31))
	assert.Equal(t, d(2024, time.January, 1), start)
	assert.Equal(t, d(2024, time.December, 31), end)
}

func TestCurrentRange_WeeklyPhaseLockedToAnchorWeekday(t *testing.T) {
	// Anchor is a Wednesday.
	anchor := d(2024, time.January, 3)
	assert.Equal(t, time.Wednesday, anchor.Weekday())

	for dayOffset := 0; dayOffset < 60; dayOffset++ {
		now := d(2024, time.March, 1).AddDate(0, 0, dayOffset)
		start, end := CurrentRange(model.PeriodWeekly, anchor, now)

		assert.Equal(t, time.Wednesday, start.Weekday(), "now=%s", now)
		assert.Equal(t, 7, Days(start, end))
		assert.False(t, now.Before(start))
		assert.False(t, now.After(end))
	}
}

func TestCurrentRange_WeeklyWhenNowIsAnchorWeekday(t *testing.T) {
	anchor := d(2024, time.January, 3) // Wednesday
	now := d(2024, time.April, 10)     // also a Wednesday
	start, end := CurrentRange(model.PeriodWeekly, anchor, now)
	assert.Equal(t, now, start)
	assert.Equal(t, now.AddDate(0, 0, 6), end)
}

func TestNextRange(t *testing.T) {
	start, end := NextRange(model.PeriodMonthly, d(2024, time.January, 31))
	assert.Equal(t, d(2024, time.February, 1), start)
	assert.Equal(t, d(2024, time.February, 29), end)

	start, end = NextRange(model.PeriodWeekly, d(2024, time.January, 9))
	assert.Equal(t, d(2024, time.January, 10), start)
	assert.Equal(t, d(2024, time.January, 16), end)

	start, end = NextRange(model.PeriodYearly, d(2024, time.December, 31))
	assert.Equal(t, d(2025, time.January, 1), start)
	assert.Equal(t, d(2025, time.December, 31), end)
}

func TestPreviousRange_MirrorsLengthBackward(t *testing.T) {
	// 29-day February mirrors to a 29-day window ending Jan 31.
	prevStart, prevEnd := PreviousRange(d(2024, time.February, 1), d(2024, time.February, 29))
	assert.Equal(t, d(2024, time.January, 31), prevEnd)
	assert.Equal(t, d(2024, time.January, 3), prevStart)
	assert.Equal(t, 29, Days(prevStart, prevEnd))

	// A week mirrors to the preceding week.
	prevStart, prevEnd = PreviousRange(d(2024, time.January, 10), d(2024, time.January, 16))
	assert.Equal(t, d(2024, time.January, 3), prevStart)
	assert.Equal(t, d(2024, time.January, 9), prevEnd)
}

func TestDays_ActualElapsedDays(t *testing.T) {
	assert.Equal(t, 1, Days(d(2024, time.March, 5), d(2024, time.March, 5)))
	assert.Equal(t, 7, Days(d(2024, time.January, 10), d(2024, time.January, 16)))
	assert.Equal(t, 29, Days(d(2024, time.February, 1), d(2024, time.February, 29)))
	assert.Equal(t, 28, Days(d(2023, time.February, 1), d(2023, time.February, 28)))
	assert.Equal(t, 366, Days(d(2024, time.January, 1), d(2024, time.December, 31)))
	// Spans a US DST transition; still whole days.
	assert.Equal(t, 31, Days(d(2024, time.March, 1), d(2024, time.March, 31)))
}

func TestDay_TruncatesTimeComponent(t *testing.T) {
	withTime := time.Date(2024, time.June, 5, 17, 30, 2, 999, time.Local)
	assert.Equal(t, d(2024, time.June, 5), Day(withTime))
}
