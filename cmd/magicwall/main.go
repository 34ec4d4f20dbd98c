// magicwall is a spot-the-difference puzzle played in the terminal.
//
// Usage:
//
//	magicwall                       - Start the interactive menu
//	magicwall play                  - Play a custom round
//	magicwall challenge             - Play the challenge levels
//	magicwall levels                - List the challenge levels
//	magicwall records               - Show completed rounds and level records
//	magicwall saves                 - List saved games
//	magicwall export <slot> <file>  - Write a saved game to a file
//	magicwall import <file> <slot>  - Read a saved game from a file
//	magicwall serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Timer refreshes per second (default: from config)
//	--seed <value>   - Set RNG seed for reproducible walls
//	--db <path>      - Set database path (default: ~/.magicwall/magicwall.db)
//	--config <path>  - Use a specific config file
//	--user <name>    - Owner of saves and challenge records
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/magicwall/internal/config"
	"github.com/vovakirdan/magicwall/internal/core"
	"github.com/vovakirdan/magicwall/internal/platform/tui"
	"github.com/vovakirdan/magicwall/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
	flagUser       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "magicwall",
	Short: "Magic Wall - spot the differences between two colored walls",
	Long: `Magic Wall shows two walls of colored squares side by side.
The right wall differs from the left one in a few cells: find them all.

Available commands:
  menu       - Interactive menu (default)
  play       - Play a custom round directly
  challenge  - Play the challenge levels
  levels     - List the challenge levels
  records    - Show completed rounds and level records
  saves      - List saved games
  export     - Write a saved game to a JSON or YAML file
  import     - Read a saved game from a file
  serve      - Start SSH server for remote play

Examples:
  magicwall
  magicwall play --width 40 --height 30 --diffs 8
  magicwall challenge --level 3
  magicwall serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Timer refreshes per second (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Owner of saves and challenge records (default from config)")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagUser != "" {
		cfg.Storage.User = flagUser
	}
	if flagFPS > 0 {
		cfg.Display.TickRate = flagFPS
	}
	return cfg, cfg.Validate()
}

// openStore opens the database, or returns nil with a warning so the game
// still works without saves and records.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database for commands that cannot work without it.
func mustOpenStore(cfg config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return store, nil
}

// gameOptions builds the options for a local game sized to the terminal.
func gameOptions(cfg config.Config, store *storage.Store) tui.Options {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return tui.Options{
		Store:  store,
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Display.TickRate,
			Seed:     flagSeed,
		},
	}
}
