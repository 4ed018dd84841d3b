package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mvaldelvira/corredor/internal/cli/formatter"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/pipeline"
)

// searchDebounce is how long the board waits after the last keystroke
// before applying the search term to the card set.
const searchDebounce = 300 * time.Millisecond

// boardLoadedMsg carries the reloaded contact set.
type boardLoadedMsg struct {
	contacts []*domain.Contact
	err      error
}

// moveDoneMsg reports the outcome of persisting one stage transition.
type moveDoneMsg struct {
	t   pipeline.Transition
	err error
}

// searchDebounceMsg fires when the debounce window for one keystroke
// elapses. Stale sequence numbers are ignored; only the latest timer wins.
type searchDebounceMsg struct{ seq int }

// boardModel is the drag-and-drop pipeline board: one column per visible
// stage, cards moved optimistically and rolled back if the write fails.
type boardModel struct {
	app       *App
	prefs     *pipeline.ColumnPrefs
	prefsPath string

	contacts []*domain.Contact
	filter   pipeline.Filter

	search    textinput.Model
	searching bool
	searchSeq int

	colCursor int
	rowCursor int
	grabbed   *domain.Contact

	width   int
	height  int
	loading bool
	status  string
	err     error
}

func newBoardModel(app *App, prefs *pipeline.ColumnPrefs, prefsPath string) *boardModel {
	ti := textinput.New()
	ti.Placeholder = "search name, email, phone, address"
	ti.Prompt = "/ "
	ti.CharLimit = 80

	return &boardModel{
		app:       app,
		prefs:     prefs,
		prefsPath: prefsPath,
		search:    ti,
		loading:   true,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.loadContacts()
}

func (m *boardModel) loadContacts() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		contacts, err := app.Contacts.List(context.Background(), app.Session)
		return boardLoadedMsg{contacts: contacts, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.contacts = msg.contacts
		m.clampCursor()
		return m, nil

	case moveDoneMsg:
		if msg.err != nil {
			// The optimistic move did not stick; put the card back.
			msg.t.Rollback(m.contacts)
			m.status = formatter.StyleRed.Render("move failed: " + msg.err.Error())
			return m, nil
		}
		m.status = formatter.StyleGreen.Render("moved to " + string(msg.t.To))
		return m, nil

	case searchDebounceMsg:
		if msg.seq == m.searchSeq {
			m.filter.Search = m.search.Value()
			m.clampCursor()
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

// updateSearch handles keys while the search input has focus. Every edit
// arms a fresh debounce timer; earlier timers are ignored by sequence.
func (m *boardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Search = ""
		m.clampCursor()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.searchSeq++
	seq := m.searchSeq
	debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m *boardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	columns := m.prefs.Visible()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "esc":
		m.grabbed = nil
		return m, nil

	case "left", "h":
		if m.colCursor > 0 {
			m.colCursor--
			m.clampCursor()
		}
	case "right", "l":
		if m.colCursor < len(columns)-1 {
			m.colCursor++
			m.clampCursor()
		}
	case "up", "k":
		if m.rowCursor > 0 {
			m.rowCursor--
		}
	case "down", "j":
		col := m.columnContacts(columns)
		if m.colCursor < len(col) && m.rowCursor < len(col[m.colCursor])-1 {
			m.rowCursor++
		}

	case " ", "space", "enter":
		if m.grabbed == nil {
			return m.grab(columns), nil
		}
		return m.drop(columns)

	case "H":
		if m.colCursor < len(columns) {
			return m.hideColumn(columns[m.colCursor]), nil
		}
	case "S":
		for _, s := range domain.Stages {
			m.prefs.Show(s)
		}
		m.savePrefs()
		m.clampCursor()

	case "r":
		m.loading = true
		return m, m.loadContacts()
	}
	return m, nil
}

// grab picks up the card under the cursor.
func (m *boardModel) grab(columns []domain.Stage) tea.Model {
	cols := m.columnContacts(columns)
	if m.colCursor < len(cols) && m.rowCursor < len(cols[m.colCursor]) {
		m.grabbed = cols[m.colCursor][m.rowCursor]
	}
	return m
}

// drop releases the grabbed card onto the cursor's column: the card moves
// locally at once, and the write happens in the background. A drop on the
// card's own column releases it without any write.
func (m *boardModel) drop(columns []domain.Stage) (tea.Model, tea.Cmd) {
	grabbed := m.grabbed
	m.grabbed = nil
	if m.colCursor >= len(columns) {
		return m, nil
	}

	t, ok := pipeline.NewTransition(grabbed, columns[m.colCursor])
	if !ok {
		return m, nil
	}

	now := time.Now().UTC()
	t.Apply(m.contacts, now)
	m.clampCursor()

	app := m.app
	return m, func() tea.Msg {
		err := app.Pipeline.Move(context.Background(), app.Session, t, now)
		return moveDoneMsg{t: t, err: err}
	}
}

func (m *boardModel) hideColumn(s domain.Stage) tea.Model {
	if err := m.prefs.Hide(s); err != nil {
		m.status = formatter.StyleYellow.Render(err.Error())
		return m
	}
	m.savePrefs()
	m.clampCursor()
	return m
}

func (m *boardModel) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := m.prefs.Save(m.prefsPath); err != nil {
		m.status = formatter.StyleYellow.Render("prefs not saved: " + err.Error())
	}
}

// columnContacts returns the filtered contacts bucketed into the visible
// columns, in board order.
func (m *boardModel) columnContacts(columns []domain.Stage) [][]*domain.Contact {
	grouped := pipeline.GroupByStage(m.filter.Apply(m.contacts))
	out := make([][]*domain.Contact, len(columns))
	for i, s := range columns {
		out[i] = grouped[s]
	}
	return out
}

func (m *boardModel) clampCursor() {
	columns := m.prefs.Visible()
	if m.colCursor >= len(columns) {
		m.colCursor = len(columns) - 1
	}
	if m.colCursor < 0 {
		m.colCursor = 0
	}
	cols := m.columnContacts(columns)
	if m.colCursor < len(cols) {
		if n := len(cols[m.colCursor]); m.rowCursor >= n {
			m.rowCursor = n - 1
		}
	}
	if m.rowCursor < 0 {
		m.rowCursor = 0
	}
}

const (
	minColWidth = 18
	maxColWidth = 30
)

var (
	boardColStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Padding(0, 1)
	boardColFocusStyle = boardColStyle.
				BorderForeground(formatter.ColorHeader)
)

func (m *boardModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading board...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}

	columns := m.prefs.Visible()
	cols := m.columnContacts(columns)

	colWidth := maxColWidth
	if len(columns) > 0 && m.width > 0 {
		if w := m.width/len(columns) - 4; w < colWidth {
			colWidth = w
		}
	}
	if colWidth < minColWidth {
		colWidth = minColWidth
	}

	rendered := make([]string, len(columns))
	for i, stage := range columns {
		rendered[i] = m.renderColumn(stage, cols[i], i == m.colCursor, colWidth)
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	var b strings.Builder
	if m.searching || m.search.Value() != "" {
		b.WriteString(" " + m.search.View() + "\n")
	}
	b.WriteString(board)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(" " + m.status + "\n")
	}
	b.WriteString(" " + m.helpLine())
	return b.String()
}

func (m *boardModel) renderColumn(stage domain.Stage, contacts []*domain.Contact, focused bool, width int) string {
	title := formatter.StageColor(stage).Bold(true).
		Render(fmt.Sprintf("%s (%d)", formatter.StageLabel(stage), len(contacts)))

	lines := []string{title, ""}
	for i, c := range contacts {
		cursor := "  "
		if focused && i == m.rowCursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		name := c.FullName
		if m.grabbed != nil && m.grabbed.ID == c.ID {
			name = formatter.StyleHeader.Render("⇕ " + name)
		}
		line := cursor + name
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(line))
	}
	if len(contacts) == 0 {
		lines = append(lines, formatter.Dim("  —"))
	}

	style := boardColStyle
	if focused {
		style = boardColFocusStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *boardModel) helpLine() string {
	if m.grabbed != nil {
		return formatter.Dim("◂ ▸ choose column · space/enter drop · esc cancel")
	}
	return formatter.Dim("◂ ▸ ▴ ▾ navigate · space grab · / search · H hide column · S show all · r refresh · q quit")
}
