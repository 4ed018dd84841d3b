package domain

import "time"

// KpiRecord is one row per agent, per period type, per period anchor date.
// Values is keyed by the canonical KPI field schema; a record loaded from
// storage always carries every schema key.
type KpiRecord struct {
	ID         string
	AgentID    string
	PeriodType PeriodType
	PeriodDate time.Time // aligned period start (day, Monday, or first of month)
	Values     map[string]float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
