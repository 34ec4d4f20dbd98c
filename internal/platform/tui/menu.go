package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magicwall/internal/core"
	"github.com/vovakirdan/magicwall/internal/wall"
)

// MenuKind identifies what the player picked in the menu.
type MenuKind int

const (
	MenuCustom MenuKind = iota
	MenuChallenge
	MenuContinue
	MenuRecords
)

// MenuChoice is the result of a menu selection.
type MenuChoice struct {
	Kind  MenuKind
	Level int              // Challenge level; 0 picks the highest unlocked
	Round wall.RoundConfig // Custom round settings
}

// menuItem is one line of the main menu.
type menuItem int

const (
	itemPlayCustom menuItem = iota
	itemWidth
	itemHeight
	itemCellSize
	itemDiffs
	itemScheme
	itemChallenge
	itemSelectLevel
	itemContinue
	itemRecords
	itemQuit
	itemCount
)

// sideStep is how much the wall size changes per key press.
const sideStep = 5

// diffSteps is roughly how many key presses cover the whole difference range.
const diffSteps = 50

// diffStep returns how much the difference count changes per key press for
// a wall that allows up to limit differences.
func diffStep(limit int) int {
	return max(limit/diffSteps, 1)
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	menuStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	custom        wall.RoundConfig
	maxUnlocked   int
	status        string
	choice        *MenuChoice
	quitting      bool
}

// NewMenuModel creates a menu with the configured custom round and the
// challenge unlocks stored for the user.
func NewMenuModel(opts Options) MenuModel {
	opts = opts.withDefaults()
	return MenuModel{
		width:       opts.Runtime.ScreenW,
		height:      opts.Runtime.ScreenH,
		custom:      opts.Config.Round.ToRound(),
		maxUnlocked: loadProgression(opts).MaxUnlocked(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := MapKeyToMenuAction(msg)
		if action == MenuActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if m.inLevelSelect {
			m.handleLevelKey(action)
		} else {
			m.handleMenuKey(action)
		}
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m *MenuModel) handleMenuKey(action MenuAction) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < int(itemCount)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.adjust(-1)
	case MenuActionRight:
		m.adjust(1)
	case MenuActionSelect:
		m.status = ""
		switch menuItem(m.cursor) {
		case itemPlayCustom, itemWidth, itemHeight, itemCellSize, itemDiffs, itemScheme:
			if err := m.custom.Validate(); err != nil {
				m.status = err.Error()
				return
			}
			m.choice = &MenuChoice{Kind: MenuCustom, Round: m.custom}
		case itemChallenge:
			m.choice = &MenuChoice{Kind: MenuChallenge}
		case itemSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = m.maxUnlocked - 1
		case itemContinue:
			m.choice = &MenuChoice{Kind: MenuContinue}
		case itemRecords:
			m.choice = &MenuChoice{Kind: MenuRecords}
		case itemQuit:
			m.quitting = true
		}
	}
}

// adjust changes the custom setting under the cursor by one step in dir.
func (m *MenuModel) adjust(dir int) {
	c := &m.custom
	switch menuItem(m.cursor) {
	case itemWidth:
		c.Width = core.Clamp(c.Width+dir*sideStep, wall.MinSide, wall.MaxSide)
	case itemHeight:
		c.Height = core.Clamp(c.Height+dir*sideStep, wall.MinSide, wall.MaxSide)
	case itemCellSize:
		c.CellSize = core.Clamp(c.CellSize+dir, wall.MinCellSize, wall.MaxCellSize)
	case itemDiffs:
		limit := wall.MaxDiffsFor(c.Width, c.Height)
		c.DiffCount = core.Clamp(c.DiffCount+dir*diffStep(limit), 1, limit)
	case itemScheme:
		if c.Scheme == wall.SchemeB {
			c.Scheme = wall.SchemeA
		} else {
			c.Scheme = wall.SchemeB
		}
	default:
		return
	}
	c.DiffCount = min(c.DiffCount, wall.MaxDiffsFor(c.Width, c.Height))
}

func (m *MenuModel) handleLevelKey(action MenuAction) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(wall.Levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		level := m.levelCursor + 1
		if level > m.maxUnlocked {
			m.status = fmt.Sprintf("Level %d is locked", level)
			return
		}
		m.status = ""
		m.choice = &MenuChoice{Kind: MenuChallenge, Level: level}
	case MenuActionBack:
		m.inLevelSelect = false
		m.status = ""
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M A G I C   W A L L"), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		m.viewLevels(&b)
	} else {
		m.viewItems(&b)
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(centerText(menuStatusStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m MenuModel) viewItems(b *strings.Builder) {
	scheme := "A (white)"
	if m.custom.Scheme == wall.SchemeB {
		scheme = "B (black)"
	}
	labels := [itemCount]string{
		itemPlayCustom:  "Play custom round",
		itemWidth:       fmt.Sprintf("   Width        < %3d >", m.custom.Width),
		itemHeight:      fmt.Sprintf("   Height       < %3d >", m.custom.Height),
		itemCellSize:    fmt.Sprintf("   Cell size    < %3d >", m.custom.CellSize),
		itemDiffs:       fmt.Sprintf("   Differences  < %3d >", m.custom.DiffCount),
		itemScheme:      fmt.Sprintf("   Colors       < %s >", scheme),
		itemChallenge:   fmt.Sprintf("Challenge (level %d)", m.maxUnlocked),
		itemSelectLevel: "Select level...",
		itemContinue:    "Continue saved game",
		itemRecords:     "Records",
		itemQuit:        "Quit",
	}
	for i, label := range labels {
		line := "  " + label
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")
}

func (m MenuModel) viewLevels(b *strings.Builder) {
	b.WriteString(centerText("Select level:", m.width))
	b.WriteString("\n\n")

	// Window the list around the cursor on short terminals
	visible := max(m.height-10, 3)
	start := core.Clamp(m.levelCursor-visible/2, 0, max(len(wall.Levels)-visible, 0))
	end := min(start+visible, len(wall.Levels))

	for i := start; i < end; i++ {
		l := wall.Levels[i]
		label := l.String()
		if l.Number > m.maxUnlocked {
			label = menuLockedStyle.Render(label + "  (locked)")
		}
		line := "  " + label
		if i == m.levelCursor {
			line = menuActiveStyle.Render("> ") + label
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Play  |  Esc: Back", m.width))
	b.WriteString("\n")
}

// SetStatus shows a message under the menu, e.g. why a choice failed.
func (m *MenuModel) SetStatus(status string) {
	m.status = status
}

// Choice returns the selection, or nil if none was made.
func (m MenuModel) Choice() *MenuChoice {
	return m.choice
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
