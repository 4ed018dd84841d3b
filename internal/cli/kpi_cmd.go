package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mvaldelvira/corredor/internal/cli/formatter"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/kpi"
	"github.com/spf13/cobra"
)

func newKpiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "View and record performance figures",
	}

	cmd.AddCommand(
		newKpiShowCmd(app),
		newKpiLogCmd(app),
	)

	return cmd
}

// parseRefDate maps the --date flag to a reference date, defaulting to today.
func parseRefDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

func newKpiShowCmd(app *App) *cobra.Command {
	var period, date, agent string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show KPIs for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			pt, err := parsePeriodType(period)
			if err != nil {
				return err
			}
			ref, err := parseRefDate(date)
			if err != nil {
				return err
			}
			agentID, err := resolveAgentID(ctx, app, agent)
			if err != nil {
				return err
			}

			res, err := app.Kpis.Resolve(ctx, app.Session, agentID, pt, ref)
			if err != nil {
				return err
			}

			fmt.Printf("%s", formatter.FormatKpiResult(res))
			return nil
		},
	}

	addPeriodFlags(cmd.Flags(), &period, &date, &agent)

	return cmd
}

func newKpiLogCmd(app *App) *cobra.Command {
	var period, date, agent string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record KPIs for a period through an interactive form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("kpi log needs an interactive terminal")
			}

			ctx := context.Background()

			pt, err := parsePeriodType(period)
			if err != nil {
				return err
			}
			ref, err := parseRefDate(date)
			if err != nil {
				return err
			}
			agentID, err := resolveAgentID(ctx, app, agent)
			if err != nil {
				return err
			}

			// Pre-fill the form with the currently resolved figures so
			// editing a period starts from what is already there.
			current, err := app.Kpis.Resolve(ctx, app.Session, agentID, pt, ref)
			if err != nil {
				return err
			}

			inputs := make(map[string]*string, len(kpi.Schema))
			for _, f := range kpi.Schema {
				s := ""
				if v := current.Values[f.Key]; v != 0 {
					s = formatter.FormatValue(v)
				}
				inputs[f.Key] = &s
			}

			if err := kpiEntryForm(inputs).Run(); err != nil {
				return err
			}

			values := make(map[string]float64, len(inputs))
			for key, s := range inputs {
				values[key] = parseValueOrZero(*s)
			}

			return saveKpiEntries(ctx, cmd, app, agentID, pt, ref, values)
		},
	}

	addPeriodFlags(cmd.Flags(), &period, &date, &agent)

	return cmd
}

// saveKpiEntries persists the figures collected by the entry form. When the
// write fails the entered values are echoed back in schema order, so a
// failed save never discards what the user typed.
func saveKpiEntries(ctx context.Context, cmd *cobra.Command, app *App, agentID string, pt domain.PeriodType, ref time.Time, values map[string]float64) error {
	rec, err := app.Kpis.Save(ctx, app.Session, agentID, pt, ref, values)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Your entries were not saved:\n%s", formatter.FormatEnteredValues(values))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s KPIs for %s\n", rec.PeriodType, rec.PeriodDate.Format("2006-01-02"))
	return nil
}
