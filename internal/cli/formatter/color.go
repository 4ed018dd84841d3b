package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mvaldelvira/corredor/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StageColor returns the style used for a pipeline stage across the board
// and the list views.
func StageColor(s domain.Stage) lipgloss.Style {
	switch s {
	case domain.StageActive:
		return StyleGreen
	case domain.StageFollowUp:
		return StyleYellow
	case domain.StageClosed:
		return StyleBlue
	case domain.StageInactive:
		return StyleDim
	case domain.StageArchived:
		return StylePurple
	default:
		return StyleDim
	}
}

// StageLabel returns the uppercased display label for a stage.
func StageLabel(s domain.Stage) string {
	return strings.ToUpper(string(s))
}

// ClassificationIndicator returns a colored lead-temperature marker such
// as "● caliente".
func ClassificationIndicator(c domain.Classification) string {
	switch c {
	case domain.ClassHot:
		return StyleRed.Render("● " + string(c))
	case domain.ClassWarm:
		return StyleYellow.Render("● " + string(c))
	case domain.ClassCold:
		return StyleBlue.Render("● " + string(c))
	default:
		return StyleDim.Render("●")
	}
}

// Header renders a section header with the orange header style and an
// underline matching its display width. Measured in cells, not bytes, so
// accented names and dashes don't stretch the line.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
