package cli

import (
	"github.com/mvaldelvira/corredor/internal/config"
	"github.com/mvaldelvira/corredor/internal/service"
	"github.com/mvaldelvira/corredor/internal/session"
	"github.com/mvaldelvira/corredor/internal/tutorial"
	"github.com/spf13/cobra"
)

// App holds the service interfaces and viewer context used by CLI commands.
type App struct {
	Contacts   service.ContactService
	Kpis       service.KpiService
	Pipeline   service.PipelineService
	Objectives service.ObjectiveService
	Agents     service.AgentService

	Session session.Session
	Config  config.Config

	// Narration is nil when voice synthesis is disabled.
	Narration *tutorial.Pipeline

	// IsInteractive reports whether stdin is a terminal; forms and the
	// board refuse to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "corredor" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "corredor",
		Short: "Real-estate agency CRM: contact pipeline, KPIs and objectives",
	}

	root.AddCommand(
		newContactCmd(app),
		newBoardCmd(app),
		newKpiCmd(app),
		newObjectiveCmd(app),
		newDashboardCmd(app),
		newAgentCmd(app),
		newTutorialCmd(app),
	)

	return root
}
