package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magicwall/internal/storage"
	"github.com/vovakirdan/magicwall/internal/wall"
)

// Records screen constants
const (
	maxResults = 100 // Max history rows to load
)

// recordsTab is one page of the records screen.
type recordsTab int

const (
	tabCustom recordsTab = iota
	tabChallenge
	tabLevels
	tabCount
)

func (t recordsTab) String() string {
	switch t {
	case tabCustom:
		return "Custom rounds"
	case tabChallenge:
		return "Challenge rounds"
	default:
		return "My levels"
	}
}

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel is the Bubble Tea model for the records screen: the history
// of completed rounds and the player's challenge records.
type RecordsModel struct {
	store     *storage.Store
	user      string
	tab       recordsTab
	results   []storage.Result
	levels    []wall.LevelRecord
	loadErr   error
	table     table.Model
	help      help.Model
	keys      RecordsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRecordsModel creates a records screen for user.
func NewRecordsModel(opts Options) RecordsModel {
	opts = opts.withDefaults()
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		store:  opts.Store,
		user:   opts.User,
		keys:   DefaultRecordsKeyMap(),
		help:   h,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the screen.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Wall", Width: 14},
		{Title: "Errors", Width: 7},
		{Title: "Hints", Width: 6},
		{Title: "Time", Width: 11},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, tabs and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the data for the current tab.
func (m *RecordsModel) load() {
	m.results, m.levels, m.loadErr = nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	switch m.tab {
	case tabCustom:
		m.results, m.loadErr = m.store.TopResults(wall.ModeCustom, maxResults)
	case tabChallenge:
		m.results, m.loadErr = m.store.TopResults(wall.ModeChallenge, maxResults)
	case tabLevels:
		m.levels, m.loadErr = m.store.LoadLevelRecords(m.user)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded results.
func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			wallLabel(r),
			fmt.Sprintf("%d", r.Errors),
			fmt.Sprintf("%d", r.Cheats),
			formatSeconds(r.Elapsed),
			r.User,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func wallLabel(r storage.Result) string {
	if r.Mode == wall.ModeChallenge {
		return fmt.Sprintf("L%d %dx%d", r.Level, r.Width, r.Height)
	}
	return fmt.Sprintf("%dx%d/%d", r.Width, r.Height, r.Diffs)
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RECORDS", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.renderContent())))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RecordsModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, tabCount)
	for t := range tabCount {
		if t == m.tab {
			tabs[t] = activeTabStyle.Render(t.String())
		} else {
			tabs[t] = tabStyle.Render(t.String())
		}
	}
	return strings.Join(tabs, " ")
}

// renderContent renders the table, the level records or an empty message.
func (m RecordsModel) renderContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Records need a database.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load records:\n" + m.loadErr.Error())
	case m.tab == tabLevels:
		return strings.Join(RecordLines(m.levels), "\n")
	case len(m.results) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nFind all differences to get listed!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}
