package kpi

import (
	"testing"
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daily(d time.Time, values map[string]float64) *domain.KpiRecord {
	return &domain.KpiRecord{
		AgentID:    "agent-1",
		PeriodType: domain.PeriodDaily,
		PeriodDate: d,
		Values:     values,
	}
}

func TestSumDailies_FieldwiseSum(t *testing.T) {
	records := []*domain.KpiRecord{
		daily(date(2025, 3, 10), map[string]float64{"llamadas": 4, "visitas": 1, "facturacion_venta": 1500}),
		daily(date(2025, 3, 11), map[string]float64{"llamadas": 2, "captaciones": 1}),
		daily(date(2025, 3, 12), map[string]float64{"llamadas": 1, "visitas": 2, "facturacion_venta": 800.50}),
	}

	totals := SumDailies(records)
	assert.Equal(t, 7.0, totals["llamadas"])
	assert.Equal(t, 3.0, totals["visitas"])
	assert.Equal(t, 1.0, totals["captaciones"])
	assert.Equal(t, 2300.50, totals["facturacion_venta"])
	// Untouched fields sum to zero, not missing.
	assert.Equal(t, 0.0, totals["referidos"])
}

func TestSumDailies_Empty(t *testing.T) {
	totals := SumDailies(nil)
	require.Len(t, totals, len(Schema))
	for _, f := range Schema {
		assert.Zero(t, totals[f.Key], "field %s", f.Key)
	}
}

func TestSumDailies_MissingFieldsDefaultZero(t *testing.T) {
	// Records with sparse value maps must not panic or skew other fields.
	records := []*domain.KpiRecord{
		daily(date(2025, 3, 10), map[string]float64{"ventas": 1}),
		daily(date(2025, 3, 11), nil),
	}
	totals := SumDailies(records)
	assert.Equal(t, 1.0, totals["ventas"])
	assert.Equal(t, 0.0, totals["alquileres"])
}

func TestFilterWindow_WeeklyBounds(t *testing.T) {
	start, end := PeriodWindow(domain.PeriodWeekly, date(2025, 3, 10))
	records := []*domain.KpiRecord{
		daily(date(2025, 3, 9), map[string]float64{"llamadas": 100}),  // Sunday before
		daily(date(2025, 3, 10), map[string]float64{"llamadas": 1}),  // Monday
		daily(date(2025, 3, 16), map[string]float64{"llamadas": 2}),  // Sunday inside
		daily(date(2025, 3, 17), map[string]float64{"llamadas": 100}), // next Monday
	}

	matched := FilterWindow(records, start, end)
	require.Len(t, matched, 2)

	totals := SumDailies(matched)
	assert.Equal(t, 3.0, totals["llamadas"])
}

func TestNormalize(t *testing.T) {
	out := Normalize(map[string]float64{"llamadas": 5, "bogus_key": 9})
	assert.Equal(t, 5.0, out["llamadas"])
	assert.NotContains(t, out, "bogus_key")
	assert.Len(t, out, len(Schema))
}

func TestResult_Diverged(t *testing.T) {
	values := ZeroValues()
	values["ventas"] = 2
	sum := ZeroValues()
	sum["ventas"] = 3

	r := &Result{Manual: true, Values: values, DailySum: sum}
	assert.True(t, r.Diverged())

	r.DailySum["ventas"] = 2
	assert.False(t, r.Diverged())

	// A purely synthesized result never diverges from itself.
	r.Manual = false
	r.DailySum["ventas"] = 99
	assert.False(t, r.Diverged())
}
