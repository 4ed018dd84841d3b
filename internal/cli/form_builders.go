package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mvaldelvira/corredor/internal/cli/formatter"
	"github.com/mvaldelvira/corredor/internal/kpi"
)

// corredorHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func corredorHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// kpiEntryForm builds one huh group per schema group, with an input per
// field pre-filled from inputs. The caller parses inputs after Run.
func kpiEntryForm(inputs map[string]*string) *huh.Form {
	var groups []*huh.Group
	var fields []huh.Field
	group := ""
	for _, f := range kpi.Schema {
		if f.Group != group && len(fields) > 0 {
			groups = append(groups, huh.NewGroup(fields...).Title(group))
			fields = nil
		}
		group = f.Group
		fields = append(fields,
			huh.NewInput().
				Title(f.Label).
				Placeholder("0").
				Value(inputs[f.Key]).
				Validate(validateNonNegativeNumber))
	}
	groups = append(groups, huh.NewGroup(fields...).Title(group))

	return huh.NewForm(groups...).WithTheme(corredorHuhTheme()).WithShowHelp(false)
}
