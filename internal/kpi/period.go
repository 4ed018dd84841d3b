package kpi

import (
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
)

// AlignPeriod normalizes a reference date to the anchor date of the period
// containing it: the day itself for daily, the Monday on or before it for
// weekly, the first of the month for monthly. The time component is always
// truncated to midnight UTC. Aligning an already-aligned date is a no-op.
func AlignPeriod(periodType domain.PeriodType, ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	switch periodType {
	case domain.PeriodWeekly:
		// time.Weekday numbers Sunday as 0; shift so Monday is the origin.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case domain.PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// PeriodWindow returns the half-open window [start, end) covered by the
// period anchored at the given aligned start date. Daily records whose date
// satisfies start <= d < end belong to the period.
func PeriodWindow(periodType domain.PeriodType, start time.Time) (time.Time, time.Time) {
	switch periodType {
	case domain.PeriodWeekly:
		return start, start.AddDate(0, 0, 7)
	case domain.PeriodMonthly:
		return start, start.AddDate(0, 1, 0)
	default:
		return start, start.AddDate(0, 0, 1)
	}
}

// InWindow reports whether d falls inside [start, end).
func InWindow(d, start, end time.Time) bool {
	return !d.Before(start) && d.Before(end)
}
