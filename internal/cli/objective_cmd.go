package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mvaldelvira/corredor/internal/cli/formatter"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/spf13/cobra"
)

func newObjectiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objective",
		Short: "Manage annual billing objectives",
	}

	cmd.AddCommand(
		newObjectiveShowCmd(app),
		newObjectiveSetCmd(app),
	)

	return cmd
}

func newObjectiveShowCmd(app *App) *cobra.Command {
	var year int
	var agent string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the objective for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			agentID, err := resolveAgentID(ctx, app, agent)
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().Year()
			}

			o, err := app.Objectives.Get(ctx, app.Session, agentID, year)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header(fmt.Sprintf("Objective %d", o.Year)))
			fmt.Printf("%s %s\n", formatter.Dim("Annual "), formatter.FormatValue(o.AnnualGoal))
			for i, q := range []float64{o.Q1Goal, o.Q2Goal, o.Q3Goal, o.Q4Goal} {
				fmt.Printf("%s %s\n", formatter.Dim(fmt.Sprintf("Q%d     ", i+1)), formatter.FormatValue(q))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current)")
	cmd.Flags().StringVar(&agent, "agent", "", "Agent email or ID (default: you)")

	return cmd
}

func newObjectiveSetCmd(app *App) *cobra.Command {
	var year int
	var agent string
	var annual, q1, q2, q3, q4 float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the objective for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			agentID, err := resolveAgentID(ctx, app, agent)
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().Year()
			}

			// Start from the stored objective so partial flag sets don't
			// wipe the other goals.
			o, err := app.Objectives.Get(ctx, app.Session, agentID, year)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("annual") {
				o.AnnualGoal = annual
			}
			if cmd.Flags().Changed("q1") {
				o.Q1Goal = q1
			}
			if cmd.Flags().Changed("q2") {
				o.Q2Goal = q2
			}
			if cmd.Flags().Changed("q3") {
				o.Q3Goal = q3
			}
			if cmd.Flags().Changed("q4") {
				o.Q4Goal = q4
			}

			if err := app.Objectives.Save(ctx, app.Session, o); err != nil {
				return err
			}

			fmt.Printf("Saved objective %d: annual %s\n", o.Year, formatter.FormatValue(o.AnnualGoal))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current)")
	cmd.Flags().StringVar(&agent, "agent", "", "Agent email or ID (default: you)")
	cmd.Flags().Float64Var(&annual, "annual", 0, "Annual billing goal")
	cmd.Flags().Float64Var(&q1, "q1", 0, "First quarter goal")
	cmd.Flags().Float64Var(&q2, "q2", 0, "Second quarter goal")
	cmd.Flags().Float64Var(&q3, "q3", 0, "Third quarter goal")
	cmd.Flags().Float64Var(&q4, "q4", 0, "Fourth quarter goal")

	return cmd
}

// newAgentCmd manages the agent roster; coordinators use it to onboard
// teammates.
func newAgentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage agents",
	}

	var name, email, role string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a new agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Agent{
				FullName: name,
				Email:    email,
				Role:     domain.Role(role),
			}
			if err := app.Agents.Create(context.Background(), a); err != nil {
				return err
			}
			fmt.Printf("Created agent %s <%s> (%s)\n", a.FullName, a.Email, a.Role)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Full name")
	add.Flags().StringVar(&email, "email", "", "Email address")
	add.Flags().StringVar(&role, "role", string(domain.RoleAgent), "Role (agente|coordinador|admin)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")

	list := &cobra.Command{
		Use:   "list",
		Short: "List agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := app.Agents.List(context.Background())
			if err != nil {
				return err
			}
			if len(agents) == 0 {
				fmt.Println("No agents found.")
				return nil
			}
			rows := make([][]string, 0, len(agents))
			for _, a := range agents {
				rows = append(rows, []string{formatter.ShortID(a.ID), a.FullName, a.Email, string(a.Role)})
			}
			fmt.Printf("%s", formatter.RenderTable([]string{"ID", "Name", "Email", "Role"}, rows))
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
