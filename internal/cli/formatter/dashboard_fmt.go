package formatter

import (
	"fmt"
	"strings"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/kpi"
)

// DashboardData bundles what the dashboard command renders: per-stage
// contact counts, the current period's figures and the annual objective.
type DashboardData struct {
	AgentName   string
	StageCounts map[domain.Stage]int
	Kpis        *kpi.Result
	Objective   *domain.AgentObjective
	// Billed is the year's accumulated billing across the revenue fields.
	Billed float64
}

// FormatDashboard renders the full dashboard screen.
func FormatDashboard(d DashboardData) string {
	var b strings.Builder
	b.WriteString(Header("Pipeline — " + d.AgentName))
	b.WriteString("\n\n")

	total := 0
	for _, s := range domain.Stages {
		n := d.StageCounts[s]
		total += n
		bar := strings.Repeat("█", n)
		if n > 40 {
			bar = strings.Repeat("█", 40) + "…"
		}
		fmt.Fprintf(&b, "%s %3d %s\n",
			StageColor(s).Render(fmt.Sprintf("%-12s", string(s))), n, StageColor(s).Render(bar))
	}
	fmt.Fprintf(&b, "%s %3d\n", Dim(fmt.Sprintf("%-12s", "total")), total)

	if d.Kpis != nil {
		b.WriteString("\n")
		b.WriteString(FormatKpiSummary(d.Kpis))
	}

	if d.Objective != nil && d.Objective.AnnualGoal > 0 {
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("Objective %d", d.Objective.Year)))
		b.WriteString("\n")
		pct := d.Billed / d.Objective.AnnualGoal
		fmt.Fprintf(&b, "%s / %s  %s\n",
			FormatValue(d.Billed), FormatValue(d.Objective.AnnualGoal), RenderProgress(pct, 20))
	}
	return b.String()
}

// FormatKpiSummary renders a compact one-line-per-group period summary
// used on the dashboard; the kpi command shows the full breakdown.
func FormatKpiSummary(r *kpi.Result) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s — %s", periodTitle[r.PeriodType], r.PeriodDate.Format("2006-01-02"))))
	b.WriteString("\n")

	type groupRow struct {
		name  string
		cells []string
	}
	var groups []groupRow
	for _, f := range kpi.Schema {
		if len(groups) == 0 || groups[len(groups)-1].name != f.Group {
			groups = append(groups, groupRow{name: f.Group})
		}
		g := &groups[len(groups)-1]
		g.cells = append(g.cells, fmt.Sprintf("%s %s", Dim(f.Label), FormatValue(r.Values[f.Key])))
	}
	for _, g := range groups {
		fmt.Fprintf(&b, "%s  %s\n", StyleBlue.Render(fmt.Sprintf("%-12s", g.name)), strings.Join(g.cells, "  "))
	}
	return b.String()
}

// RenderProgress renders a fixed-width progress bar with a percentage.
// Ratios above 1 render full.
func RenderProgress(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	capped := ratio
	if capped > 1 {
		capped = 1
	}
	filled := int(capped * float64(width))
	bar := StyleGreen.Render(strings.Repeat("█", filled)) + Dim(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, ratio*100)
}
