package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvaldelvira/corredor/internal/pipeline"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive pipeline board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the board needs an interactive terminal")
			}

			prefsPath := filepath.Join(app.Config.DataDir, "board_columns.yaml")
			prefs, err := pipeline.LoadColumnPrefs(prefsPath)
			if err != nil {
				return err
			}

			m := newBoardModel(app, prefs, prefsPath)
			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
