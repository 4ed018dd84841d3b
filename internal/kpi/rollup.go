package kpi

import (
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
)

// SumDailies sums every schema field across the given daily records,
// independently per field. Records missing a field contribute 0 for it.
// The result carries every schema key, so a period with no matching
// records yields an all-zero map rather than missing entries.
func SumDailies(records []*domain.KpiRecord) map[string]float64 {
	totals := ZeroValues()
	for _, rec := range records {
		for _, f := range Schema {
			totals[f.Key] += rec.Values[f.Key]
		}
	}
	return totals
}

// FilterWindow returns the records whose period date falls inside
// [start, end). Records are not assumed to be pre-sorted or pre-filtered.
func FilterWindow(records []*domain.KpiRecord, start, end time.Time) []*domain.KpiRecord {
	var matched []*domain.KpiRecord
	for _, rec := range records {
		if InWindow(rec.PeriodDate, start, end) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// Result is what the resolver hands to the entry form and dashboard for one
// agent and period.
type Result struct {
	AgentID    string
	PeriodType domain.PeriodType
	PeriodDate time.Time

	// Values are the figures to display: the manual record's values when one
	// exists at this exact granularity, otherwise the synthesized daily sum.
	Values map[string]float64

	// DailySum is the synthesized sum over daily records in the window.
	// For daily periods it equals Values.
	DailySum map[string]float64

	// Manual is true when a stored record exists at this exact granularity.
	// Synthesized is true when Values came from the daily sum instead.
	Manual      bool
	Synthesized bool
}

// Diverged reports whether a manual override disagrees with the underlying
// daily sum on any field.
func (r *Result) Diverged() bool {
	if !r.Manual {
		return false
	}
	for _, f := range Schema {
		if r.Values[f.Key] != r.DailySum[f.Key] {
			return true
		}
	}
	return false
}
