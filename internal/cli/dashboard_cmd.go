package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mvaldelvira/corredor/internal/cli/formatter"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/pipeline"
	"github.com/spf13/cobra"
)

// billingKeys are the schema fields that count toward the annual objective.
var billingKeys = []string{"facturacion_venta", "facturacion_alquiler", "honorarios_otros"}

func newDashboardCmd(app *App) *cobra.Command {
	var period, agent string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Pipeline overview, current KPIs and objective progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pt, err := parsePeriodType(period)
			if err != nil {
				return err
			}
			agentID, err := resolveAgentID(ctx, app, agent)
			if err != nil {
				return err
			}
			a, err := app.Agents.GetByID(ctx, agentID)
			if err != nil {
				return err
			}

			contacts, err := app.Contacts.List(ctx, app.Session)
			if err != nil {
				return err
			}
			counts := make(map[domain.Stage]int, len(domain.Stages))
			for stage, col := range pipeline.GroupByStage(contacts) {
				counts[stage] = len(col)
			}

			now := time.Now().UTC()
			res, err := app.Kpis.Resolve(ctx, app.Session, agentID, pt, now)
			if err != nil {
				return err
			}

			objective, err := app.Objectives.Get(ctx, app.Session, agentID, now.Year())
			if err != nil {
				return err
			}

			billed, err := yearBilling(ctx, app, agentID, now)
			if err != nil {
				return err
			}

			fmt.Printf("%s", formatter.FormatDashboard(formatter.DashboardData{
				AgentName:   a.FullName,
				StageCounts: counts,
				Kpis:        res,
				Objective:   objective,
				Billed:      billed,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "weekly", "KPI period to summarize (daily|weekly|monthly)")
	cmd.Flags().StringVar(&agent, "agent", "", "Agent email or ID (default: you)")

	return cmd
}

// yearBilling sums the revenue fields over every month of the year up to
// and including the current one. Monthly resolution applies the usual
// override-wins rule per month.
func yearBilling(ctx context.Context, app *App, agentID string, now time.Time) (float64, error) {
	var total float64
	for m := time.January; m <= now.Month(); m++ {
		ref := time.Date(now.Year(), m, 1, 0, 0, 0, 0, time.UTC)
		res, err := app.Kpis.Resolve(ctx, app.Session, agentID, domain.PeriodMonthly, ref)
		if err != nil {
			return 0, fmt.Errorf("resolving %s: %w", ref.Format("2006-01"), err)
		}
		for _, key := range billingKeys {
			total += res.Values[key]
		}
	}
	return total, nil
}
