package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/magicwall/internal/platform/tui"
)

var flagLevel int

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Play the challenge levels",
	Long: `Play the twenty challenge levels in order. Each level is larger and
has more differences than the one before. Completing a level unlocks the
next one; unlocks and best times are kept per user in the database.

Leaving the run with Esc starts the challenge over from level 1.
Quitting with Q keeps your progress.

Examples:
  magicwall challenge
  magicwall challenge --level 4
  magicwall challenge --user alice`,
	Args: cobra.NoArgs,
	RunE: runChallenge,
}

func init() {
	challengeCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start at (0 = highest unlocked)")
}

func runChallenge(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	m, err := tui.NewChallengeRound(gameOptions(cfg, store), flagLevel)
	if err != nil {
		return err
	}
	return tui.RunRound(m)
}
