package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/magicwall/internal/config"
	"github.com/vovakirdan/magicwall/internal/core"
	"github.com/vovakirdan/magicwall/internal/storage"
	"github.com/vovakirdan/magicwall/internal/wall"
)

// Options configures the programs in this package.
type Options struct {
	Store   *storage.Store // nil runs without saves or records
	Config  config.Config
	Runtime core.RuntimeConfig
	User    string // Owner of results and challenge records
	Slot    string // Save slot; defaults to User
	Logger  *log.Logger
	Clock   wall.Clock // nil means the system clock
}

func (o Options) withDefaults() Options {
	if o.User == "" {
		o.User = o.Config.Storage.User
	}
	if o.User == "" {
		o.User = "local"
	}
	if o.Slot == "" {
		o.Slot = o.User
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Runtime.TickRate <= 0 {
		o.Runtime.TickRate = o.Config.Display.TickRate
	}
	if o.Runtime.Seed == 0 {
		o.Runtime.Seed = time.Now().UnixNano()
	}
	return o
}

// tickInterval returns the timer refresh period.
func (o Options) tickInterval() time.Duration {
	return config.DisplayConfig{TickRate: o.Runtime.TickRate}.TickInterval()
}

// programOptions returns the Bubble Tea options shared by local and SSH
// programs. Pointer motion is only reported when mouse tracking is on.
func programOptions(cfg config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Display.MouseTracking {
		return append(opts, tea.WithMouseAllMotion())
	}
	return append(opts, tea.WithMouseCellMotion())
}

// Run starts the menu-driven game in the local terminal.
func Run(opts Options) error {
	p := tea.NewProgram(NewSessionModel(opts), programOptions(opts.Config)...)
	_, err := p.Run()
	return err
}

// RunRound runs a single round model until the player leaves it.
func RunRound(m RoundModel) error {
	m.standalone = true
	p := tea.NewProgram(m, programOptions(m.opts.Config)...)
	_, err := p.Run()
	return err
}
