package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magicwall/internal/core"
	"github.com/vovakirdan/magicwall/internal/storage"
	"github.com/vovakirdan/magicwall/internal/wall"
)

// hintBlink is the on/off period of the hint markers.
const hintBlink = 400 * time.Millisecond

var (
	hudTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	hintsOnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	recordsStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// RoundModel is the Bubble Tea model for playing rounds: a single custom
// round, or a challenge run that moves through the levels.
type RoundModel struct {
	opts     Options
	session  *wall.Session
	prog     *wall.Progression // nil for custom rounds
	custom   wall.RoundConfig  // Replayed by retry in custom mode
	renderer *Renderer
	keys     KeyMap
	help     help.Model

	layout    Layout
	view      core.Viewport
	cursor    wall.Coord
	hover     wall.Coord
	hovering  bool
	crosshair bool

	gen     int // Bumped whenever the running round changes
	elapsed time.Duration
	status  string
	dialog  *dialog
	records bool // Challenge records shown instead of the board

	standalone bool // Leaving the round ends the program
	backToMenu bool
	quitting   bool
}

func newRoundModel(opts Options) (RoundModel, error) {
	opts = opts.withDefaults()
	sessionOpts := []wall.Option{
		wall.WithSeed(opts.Runtime.Seed),
		wall.WithLogger(opts.Logger),
	}
	if opts.Clock != nil {
		sessionOpts = append(sessionOpts, wall.WithClock(opts.Clock))
	}
	session, err := wall.NewSession(sessionOpts...)
	if err != nil {
		return RoundModel{}, err
	}

	h := help.New()
	h.Width = opts.Runtime.ScreenW
	return RoundModel{
		opts:      opts,
		session:   session,
		renderer:  NewRenderer(),
		keys:      DefaultKeyMap(),
		help:      h,
		crosshair: opts.Config.Display.MouseTracking,
	}, nil
}

// NewCustomRound starts a custom round with cfg.
// Configuration errors are returned before any UI is shown.
func NewCustomRound(opts Options, cfg wall.RoundConfig) (RoundModel, error) {
	m, err := newRoundModel(opts)
	if err != nil {
		return m, err
	}
	cfg.Mode = wall.ModeCustom
	cfg.Level = 0
	if err := m.session.Start(cfg); err != nil {
		return m, err
	}
	m.custom = cfg
	m.afterStart()
	if m.session.State() == wall.StateCompleted {
		m.finish()
	}
	return m, nil
}

// NewChallengeRound opens a challenge run at level, resuming the unlocks
// stored for the user. Level 0 picks the highest unlocked level.
// The level is announced in a dialog and starts when the player confirms.
func NewChallengeRound(opts Options, level int) (RoundModel, error) {
	m, err := newRoundModel(opts)
	if err != nil {
		return m, err
	}
	m.prog = loadProgression(m.opts)
	if level == 0 {
		level = m.prog.MaxUnlocked()
	}
	if err := m.prog.Select(level); err != nil {
		return m, err
	}
	m.dialog = levelStartDialog(m.prog.CurrentLevel())
	m.relayout()
	return m, nil
}

// NewSavedRound resumes a saved game.
func NewSavedRound(opts Options, snap wall.Snapshot) (RoundModel, error) {
	m, err := newRoundModel(opts)
	if err != nil {
		return m, err
	}
	var prog *wall.Progression
	if snap.Progression != nil {
		prog = wall.NewProgression()
	}
	if err := wall.Restore(snap, m.session, prog); err != nil {
		return m, err
	}
	m.prog = prog
	m.resume()
	return m, nil
}

// loadProgression rebuilds a challenge run from the stored level records.
// Every level after a completed one is unlocked.
func loadProgression(opts Options) *wall.Progression {
	p := wall.NewProgression()
	if opts.Store == nil {
		return p
	}
	records, err := opts.Store.LoadLevelRecords(opts.User)
	if err != nil {
		opts.Logger.Warn("could not load level records", "user", opts.User, "error", err)
		return p
	}
	maxUnlocked := 1
	for i, r := range records {
		if r.Completed {
			maxUnlocked = max(maxUnlocked, min(i+2, wall.LevelCount))
		}
	}
	if err := p.Restore(1, maxUnlocked, records); err != nil {
		opts.Logger.Warn("ignoring stored level records", "user", opts.User, "error", err)
		p.Reset()
	}
	return p
}

// Init starts the timer of an already running round.
func (m RoundModel) Init() tea.Cmd {
	if m.session.Running() {
		return tickCmd(m.opts.tickInterval(), m.gen)
	}
	return nil
}

// Update handles messages for the round.
func (m RoundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleTick refreshes the elapsed time. Ticks scheduled for an earlier
// round, or arriving after the round ended, are dropped.
func (m RoundModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || !m.session.Running() {
		return m, nil
	}
	m.elapsed = m.session.Tick(msg.Time)
	return m, tickCmd(m.opts.tickInterval(), m.gen)
}

func (m RoundModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return m, nil
	}
	if m.dialog != nil {
		return m.handleDialogKey(msg)
	}
	return m.apply(m.keys.Action(msg))
}

func (m RoundModel) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		d := m.dialog
		m.dialog = nil
		switch d.action {
		case dialogStartLevel:
			cmd := m.startLevel()
			return m, cmd
		case dialogNextLevel:
			if m.prog.Advance() {
				cmd := m.startLevel()
				return m, cmd
			}
		case dialogMenu:
			return m.exit()
		case dialogClose:
			m.session.Resume()
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		switch m.dialog.action {
		case dialogClose:
			m.dialog = nil
			m.session.Resume()
			return m, nil
		case dialogMenu:
			return m.exit()
		}
		return m.leave()

	case key.Matches(msg, m.keys.Retry):
		if m.session.State() == wall.StateCompleted {
			m.dialog = nil
			cmd := m.retry()
			return m, cmd
		}
	}
	return m, nil
}

// apply performs a round action.
func (m RoundModel) apply(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.records {
			m.records = false
			return m, nil
		}
		return m.leave()

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.moveCursor(action.Delta())

	case core.ActionSelect:
		m.attempt(m.cursor)

	case core.ActionHints:
		m.toggleHints()

	case core.ActionCrosshair:
		m.crosshair = !m.crosshair
		if m.opts.Config.Display.MouseTracking {
			return m, nil
		}
		// Hover is only reported with all-motion tracking.
		if m.crosshair {
			return m, tea.EnableMouseAllMotion
		}
		return m, tea.EnableMouseCellMotion

	case core.ActionSave:
		m.save()

	case core.ActionLoad:
		cmd := m.load()
		return m, cmd

	case core.ActionRetry:
		cmd := m.retry()
		return m, cmd

	case core.ActionNext:
		cmd := m.next()
		return m, cmd

	case core.ActionRecords:
		if m.prog == nil {
			m.status = "Records are kept for challenge levels only"
			return m, nil
		}
		m.records = !m.records
	}
	return m, nil
}

func (m RoundModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil || m.records || m.session.Base() == nil {
		return m, nil
	}
	cfg := m.session.Config()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			m.view.Scroll(-1, 0, cfg.Width, cfg.Height)
		} else {
			m.view.Scroll(0, -1, cfg.Width, cfg.Height)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			m.view.Scroll(1, 0, cfg.Width, cfg.Height)
		} else {
			m.view.Scroll(0, 1, cfg.Width, cfg.Height)
		}
		return m, nil
	case tea.MouseButtonWheelLeft:
		m.view.Scroll(-1, 0, cfg.Width, cfg.Height)
		return m, nil
	case tea.MouseButtonWheelRight:
		m.view.Scroll(1, 0, cfg.Width, cfg.Height)
		return m, nil
	}

	c, ok := m.layout.CellAt(msg.X, msg.Y, m.view)
	m.hovering = ok
	if !ok {
		return m, nil
	}
	m.hover = c
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.cursor = c
		m.attempt(c)
	}
	return m, nil
}

func (m *RoundModel) moveCursor(dx, dy int) {
	if m.session.Base() == nil {
		return
	}
	cfg := m.session.Config()
	m.cursor.X = core.Clamp(m.cursor.X+dx, 0, cfg.Width-1)
	m.cursor.Y = core.Clamp(m.cursor.Y+dy, 0, cfg.Height-1)
	m.view.Follow(m.cursor.X, m.cursor.Y, cfg.Width, cfg.Height)
}

func (m *RoundModel) attempt(c wall.Coord) {
	switch m.session.Attempt(c.X, c.Y) {
	case wall.AttemptHit:
		m.status = fmt.Sprintf("Found one at %s, %d left", c, m.session.Total()-m.session.FoundCount())
	case wall.AttemptMiss:
		m.status = fmt.Sprintf("No difference at %s", c)
	case wall.AttemptCompleted:
		m.finish()
	}
}

// finish records a completed round and opens the matching dialog.
func (m *RoundModel) finish() {
	res := m.session.Result()
	m.elapsed = res.Elapsed
	m.gen++
	m.status = ""
	m.recordResult(res)

	if m.prog == nil {
		m.dialog = customCompleteDialog(res)
		return
	}
	if err := m.prog.CompleteLevel(res.Level, res.Elapsed, res.Errors, res.Cheats); err != nil {
		m.alert(err)
		return
	}
	m.saveRecords()

	next, err := wall.DeriveParams(res.Level + 1)
	if err != nil {
		m.dialog = finalDialog(m.prog)
		return
	}
	m.dialog = levelCompleteDialog(res, next)
}

func (m *RoundModel) recordResult(res wall.RoundResult) {
	if m.opts.Store == nil || res.Diffs == 0 {
		return
	}
	if _, err := m.opts.Store.SaveResult(storage.ResultFrom(m.opts.User, res)); err != nil {
		m.opts.Logger.Warn("could not record result", "user", m.opts.User, "error", err)
	}
}

func (m *RoundModel) saveRecords() {
	if m.opts.Store == nil || m.prog == nil {
		return
	}
	if err := m.opts.Store.SaveLevelRecords(m.opts.User, m.prog.Records()); err != nil {
		m.opts.Logger.Warn("could not save level records", "user", m.opts.User, "error", err)
	}
}

// start replaces the current round with a fresh one.
func (m *RoundModel) start(cfg wall.RoundConfig) tea.Cmd {
	m.session.Stop()
	if err := m.session.Start(cfg); err != nil {
		m.gen++
		m.alert(err)
		return nil
	}
	m.afterStart()
	if m.session.State() == wall.StateCompleted {
		m.finish()
		return nil
	}
	return tickCmd(m.opts.tickInterval(), m.gen)
}

// afterStart resets the view state for a round that was just generated.
func (m *RoundModel) afterStart() {
	m.gen++
	m.cursor = wall.Coord{}
	m.view = core.Viewport{}
	m.elapsed = 0
	m.records = false
	m.status = ""
	if stats := m.session.GenStats(); stats.Degraded() {
		m.status = fmt.Sprintf("Only %d of %d differences could be placed", stats.Placed, stats.Requested)
	}
	m.relayout()
}

func (m *RoundModel) startLevel() tea.Cmd {
	cfg := m.prog.CurrentLevel().RoundConfig(m.opts.Config.Round.SchemeValue())
	return m.start(cfg)
}

func (m *RoundModel) retry() tea.Cmd {
	m.dialog = nil
	if m.prog != nil {
		return m.startLevel()
	}
	return m.start(m.custom)
}

func (m *RoundModel) next() tea.Cmd {
	if m.prog == nil {
		m.status = "Levels exist in challenge mode only"
		return nil
	}
	if m.session.State() != wall.StateCompleted {
		m.status = "Finish this level first"
		return nil
	}
	if !m.prog.Advance() {
		m.status = "No further level unlocked"
		return nil
	}
	m.dialog = nil
	return m.startLevel()
}

// leave ends the round. A challenge run with completed levels shows its
// records first and returns to the menu once they are dismissed.
func (m RoundModel) leave() (tea.Model, tea.Cmd) {
	if m.prog == nil || m.prog.Summary().Completed == 0 {
		return m.exit()
	}
	m.session.Stop()
	m.gen++
	m.records = false
	m.status = ""
	m.dialog = recordsDialog(m.prog)
	return m, nil
}

// exit returns to the menu. Leaving a challenge run starts the progression
// over.
func (m RoundModel) exit() (tea.Model, tea.Cmd) {
	if m.prog != nil {
		m.prog.Reset()
		m.saveRecords()
	}
	m.session.Stop()
	m.gen++
	m.backToMenu = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// alert shows err in a dialog. The round timer stands still until it is
// closed.
func (m *RoundModel) alert(err error) {
	m.dialog = errorDialog(err)
	m.session.Pause()
}

func (m *RoundModel) toggleHints() {
	if !m.opts.Config.Display.HintsAllowed {
		m.status = "Hints are disabled"
		return
	}
	on := !m.session.Hints()
	if !m.session.SetHints(on) {
		m.status = "Hints only work while a round is running"
		return
	}
	if on {
		m.status = "Hints on: differences found now count as cheats"
	} else {
		m.status = "Hints off"
	}
}

func (m *RoundModel) save() {
	if m.opts.Store == nil {
		m.status = "Saving is unavailable without a database"
		return
	}
	if m.session.State() == wall.StateIdle {
		m.status = "Nothing to save yet"
		return
	}
	if err := m.opts.Store.SaveSnapshot(m.opts.Slot, wall.Capture(m.session, m.prog)); err != nil {
		m.opts.Logger.Error("save failed", "slot", m.opts.Slot, "error", err)
		m.alert(err)
		return
	}
	m.status = fmt.Sprintf("Saved to slot %q", m.opts.Slot)
}

func (m *RoundModel) load() tea.Cmd {
	if m.opts.Store == nil {
		m.status = "Loading is unavailable without a database"
		return nil
	}
	snap, err := m.opts.Store.LoadSnapshot(m.opts.Slot)
	if errors.Is(err, storage.ErrNoSave) {
		m.status = fmt.Sprintf("No saved game in slot %q", m.opts.Slot)
		return nil
	}
	if err != nil {
		m.alert(err)
		return nil
	}

	var prog *wall.Progression
	if snap.Progression != nil {
		prog = wall.NewProgression()
	}
	if err := wall.Restore(snap, m.session, prog); err != nil {
		m.opts.Logger.Error("load failed", "slot", m.opts.Slot, "error", err)
		m.alert(err)
		return nil
	}
	m.prog = prog
	return m.resume()
}

// resume picks up a restored session.
func (m *RoundModel) resume() tea.Cmd {
	cfg := m.session.Config()
	if cfg.Mode == wall.ModeChallenge && m.prog == nil {
		m.prog = loadProgression(m.opts)
		//nolint:errcheck // Falls back to the first level
		m.prog.Select(cfg.Level)
	}
	if cfg.Mode != wall.ModeChallenge {
		m.custom = cfg
	}

	m.gen++
	m.cursor = wall.Coord{}
	m.view = core.Viewport{}
	m.records = false
	m.dialog = nil
	m.elapsed = m.session.Elapsed()
	m.relayout()

	switch m.session.State() {
	case wall.StateRunning:
		m.status = "Saved game loaded"
		return tickCmd(m.opts.tickInterval(), m.gen)
	case wall.StateCompleted:
		m.status = "This saved round is already complete"
	case wall.StateIdle:
		if m.prog != nil {
			m.dialog = levelStartDialog(m.prog.CurrentLevel())
			m.relayout()
			return nil
		}
		return m.start(cfg)
	}
	return nil
}

// roundSize returns the wall dimensions the layout is computed for.
func (m *RoundModel) roundSize() (w, h, cellSize int) {
	if m.session.Base() == nil && m.prog != nil {
		l := m.prog.CurrentLevel()
		return l.Width, l.Height, l.CellSize
	}
	cfg := m.session.Config()
	return cfg.Width, cfg.Height, cfg.CellSize
}

func (m *RoundModel) relayout() {
	w, h, cellSize := m.roundSize()
	extraHelp := 0
	if m.help.ShowAll {
		extraHelp = lipgloss.Height(m.help.View(m.keys)) - 1
	}
	m.layout = ComputeLayout(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH-extraHelp, w, h, cellSize)
	m.view.Resize(m.layout.ViewW, m.layout.ViewH, w, h)
	m.view.Follow(m.cursor.X, m.cursor.Y, w, h)
}

// overlay collects the markers drawn over both panels.
func (m RoundModel) overlay() Overlay {
	running := m.session.Running()
	ov := Overlay{
		Cursor:     m.cursor,
		ShowCursor: running,
		Hover:      m.hover,
		Crosshair:  running && m.crosshair && m.hovering,
	}
	if running && m.session.Hints() && (m.elapsed/hintBlink)%2 == 0 {
		ov.Hints = m.session.Remaining().Sorted()
	}
	return ov
}

// View renders the round.
func (m RoundModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	width := m.opts.Runtime.ScreenW
	bodyH := max(m.opts.Runtime.ScreenH-hudRows-footerRows, 1)

	var body string
	switch {
	case m.dialog != nil:
		body = m.dialog.View(width, bodyH)
	case m.records:
		body = m.recordsView(width, bodyH)
	case m.layout.TooSmall:
		body = lipgloss.Place(width, bodyH, lipgloss.Center, lipgloss.Center,
			"Terminal too small for this wall.\nEnlarge the window or pick a smaller wall.")
	case m.session.Base() != nil:
		body = m.renderer.RenderBoard(m.session, m.layout, m.view, m.overlay())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.hudView(),
		body,
		statusStyle.Render(m.status),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// hudView renders exactly hudRows lines: the title with round statistics,
// then the visible window when the wall is scrolled.
func (m RoundModel) hudView() string {
	w, h, _ := m.roundSize()
	title := fmt.Sprintf("Custom %dx%d", w, h)
	if m.prog != nil {
		title = m.prog.CurrentLevel().String()
	}
	line := hudTitleStyle.Render("MAGIC WALL") + "  " + title

	if m.session.Base() != nil {
		line += fmt.Sprintf("  Found %d/%d  Errors %d  Time %.1fs",
			m.session.FoundCount(), m.session.Total(), m.session.ErrorCount(), m.elapsed.Seconds())
		if m.session.Hints() {
			line += "  " + hintsOnStyle.Render("HINTS")
		}
		if c := m.session.CheatCount(); c > 0 {
			line += fmt.Sprintf("  Cheats %d", c)
		}
	}

	window := ""
	if m.session.Base() != nil && !m.layout.TooSmall && m.view.Partial(w, h) {
		window = hudDimStyle.Render(fmt.Sprintf("Columns %d-%d, rows %d-%d of %dx%d (mouse wheel or cursor scrolls)",
			m.view.X, m.view.X+m.view.W-1, m.view.Y, m.view.Y+m.view.H-1, w, h))
	}
	return line + "\n" + window
}

func (m RoundModel) recordsView(width, height int) string {
	lines := RecordLines(m.prog.Records())
	box := recordsStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		hudTitleStyle.Render("Challenge records"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// BackToMenu returns true if the player left the round for the menu.
func (m RoundModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the player requested to quit.
func (m RoundModel) IsQuitting() bool {
	return m.quitting
}
