package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mvaldelvira/corredor/internal/cli/formatter"
	"github.com/mvaldelvira/corredor/internal/tutorial"
	"github.com/spf13/cobra"
)

func newTutorialCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Narrated tutorial scripts",
	}

	cmd.AddCommand(
		newTutorialListCmd(app),
		newTutorialRenderCmd(app),
	)

	return cmd
}

func newTutorialListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available tutorial scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := tutorial.ListScripts(app.Config.Tutorial.ScriptDir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Println("No tutorial scripts found.")
				return nil
			}

			rows := make([][]string, 0, len(paths))
			for _, p := range paths {
				s, err := tutorial.LoadScript(p)
				if err != nil {
					rows = append(rows, []string{filepath.Base(p), formatter.StyleRed.Render(err.Error()), ""})
					continue
				}
				rows = append(rows, []string{
					s.Slug,
					s.Title,
					strings.Join(s.Vars(), ", "),
				})
			}
			fmt.Printf("%s", formatter.RenderTable([]string{"Slug", "Title", "Variables"}, rows))
			return nil
		},
	}
}

func newTutorialRenderCmd(app *App) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "render SLUG",
		Short: "Synthesize narration audio and write the render manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Narration == nil {
				return fmt.Errorf("voice synthesis is disabled; enable it in the config to render tutorials")
			}

			varMap := make(map[string]string)
			for _, v := range vars {
				parts := strings.SplitN(v, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid --var format %q, expected key=value", v)
				}
				varMap[parts[0]] = parts[1]
			}

			path := filepath.Join(app.Config.Tutorial.ScriptDir, args[0]+".yaml")
			script, err := tutorial.LoadScript(path)
			if err != nil {
				return err
			}

			m, err := app.Narration.Run(context.Background(), script, varMap)
			if err != nil {
				return err
			}

			fmt.Printf("Rendered %q: %d sections under %s\n",
				m.Title, len(m.Sections), filepath.Join(app.Config.Tutorial.OutputDir, m.Slug))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Narration variables (key=value)")

	return cmd
}
