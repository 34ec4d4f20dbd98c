package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/magicwall/internal/config"
	"github.com/vovakirdan/magicwall/internal/core"
	"github.com/vovakirdan/magicwall/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.magicwall/host_key.
	HostKeyPath string

	// DBPath is the path to the database shared by all players.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game holds the round defaults and display settings for every session.
	Game config.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.magicwall/magicwall.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server for Magic Wall.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "magicwall-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open database, saves and records are disabled", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".magicwall", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
// Every SSH user gets their own save slot and challenge records.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := Options{
		Store:  s.store,
		Config: s.config.Game,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.Game.Display.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		User:   sshSession.User(),
		Logger: s.logger.With("user", sshSession.User()),
	}

	return NewSessionModel(opts), programOptions(s.config.Game)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the full session flow: menu -> round or records -> menu.
// It is the top-level model for both SSH sessions and local play.
type SessionModel struct {
	opts      Options
	menu      MenuModel
	round     *RoundModel
	records   *RecordsModel
	inRound   bool
	inRecords bool
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options) SessionModel {
	opts = opts.withDefaults()
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch {
	case m.inRound && m.round != nil:
		return m.updateRound(msg)
	case m.inRecords && m.records != nil:
		return m.updateRecords(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	choice := m.menu.Choice()
	if choice == nil {
		return m, cmd
	}

	if choice.Kind == MenuRecords {
		records := NewRecordsModel(m.opts)
		m.records = &records
		m.inRecords = true
		return m, m.records.Init()
	}

	round, err := m.openRound(*choice)
	if err != nil {
		m.opts.Logger.Warn("cannot open round", "error", err)
		m.menu = NewMenuModel(m.opts)
		m.menu.SetStatus(err.Error())
		return m, nil
	}
	m.round = &round
	m.inRound = true
	return m, m.round.Init()
}

// openRound builds the round model for a menu choice.
func (m SessionModel) openRound(choice MenuChoice) (RoundModel, error) {
	switch choice.Kind {
	case MenuChallenge:
		return NewChallengeRound(m.opts, choice.Level)
	case MenuContinue:
		if m.opts.Store == nil {
			return RoundModel{}, errors.New("saved games need a database")
		}
		snap, err := m.opts.Store.LoadSnapshot(m.opts.Slot)
		if errors.Is(err, storage.ErrNoSave) {
			return RoundModel{}, errors.New("no saved game yet")
		}
		if err != nil {
			return RoundModel{}, err
		}
		return NewSavedRound(m.opts, snap)
	default:
		return NewCustomRound(m.opts, choice.Round)
	}
}

// updateRound handles updates when a round is open.
func (m SessionModel) updateRound(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.round.Update(msg)
	if roundModel, ok := newModel.(RoundModel); ok {
		m.round = &roundModel
	}

	if m.round.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.round.BackToMenu() {
		m.inRound = false
		m.round = nil
		m.menu = NewMenuModel(m.opts)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRecords handles updates when the records screen is open.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if recordsModel, ok := newModel.(RecordsModel); ok {
		m.records = &recordsModel
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.records.IsGoingBack() {
		m.inRecords = false
		m.records = nil
		m.menu = NewMenuModel(m.opts)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.inRound && m.round != nil:
		return m.round.View()
	case m.inRecords && m.records != nil:
		return m.records.View()
	}
	return m.menu.View()
}
