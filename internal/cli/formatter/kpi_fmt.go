package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/kpi"
)

// periodTitle maps period types to the heading shown above the figures.
var periodTitle = map[domain.PeriodType]string{
	domain.PeriodDaily:   "Daily KPIs",
	domain.PeriodWeekly:  "Weekly KPIs",
	domain.PeriodMonthly: "Monthly KPIs",
}

// FormatKpiResult renders one resolved period as grouped rows. Manual
// records that disagree with the underlying daily sum get the stored and
// summed value side by side so the divergence is visible at a glance.
func FormatKpiResult(r *kpi.Result) string {
	var b strings.Builder
	title := fmt.Sprintf("%s — %s", periodTitle[r.PeriodType], r.PeriodDate.Format("2006-01-02"))
	b.WriteString(Header(title))
	b.WriteString("\n")

	switch {
	case r.Manual && r.Diverged():
		b.WriteString(StyleYellow.Render("manual record (differs from daily sum)") + "\n")
	case r.Manual:
		b.WriteString(Dim("manual record") + "\n")
	case r.Synthesized:
		b.WriteString(Dim("summed from daily records") + "\n")
	}
	b.WriteString("\n")

	showSum := r.Manual && r.PeriodType != domain.PeriodDaily

	group := ""
	for _, f := range kpi.Schema {
		if f.Group != group {
			group = f.Group
			b.WriteString(StyleBlue.Render(group) + "\n")
		}
		line := fmt.Sprintf("  %-25s %s", f.Label, FormatValue(r.Values[f.Key]))
		if showSum && r.Values[f.Key] != r.DailySum[f.Key] {
			line += Dim(fmt.Sprintf("  (daily sum %s)", FormatValue(r.DailySum[f.Key])))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// FormatEnteredValues renders form input in schema order, one field per
// line. The save path echoes this when the write fails so the figures the
// user typed are not lost with the process.
func FormatEnteredValues(values map[string]float64) string {
	var b strings.Builder
	for _, f := range kpi.Schema {
		b.WriteString(fmt.Sprintf("  %-25s %s\n", f.Label, FormatValue(values[f.Key])))
	}
	return b.String()
}

// FormatValue renders a KPI figure without trailing decimal noise: counts
// show as integers, money keeps two decimals.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
