package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magicwall/internal/platform/tui"
	"github.com/vovakirdan/magicwall/internal/wall"
)

var (
	flagWidth    int
	flagHeight   int
	flagCellSize int
	flagDiffs    int
	flagScheme   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a custom round",
	Long: `Play a single round with the given wall. Flags left unset use the
values from the config file.

Controls:
  Arrows/WASD   - Move the cursor
  Space/Enter   - Check the cell under the cursor
  Mouse click   - Check the clicked cell
  H             - Toggle hints (finds count as cheats)
  X             - Toggle the crosshair
  Ctrl+S/Ctrl+L - Save/load the game
  R             - Play a new wall
  Esc/Q         - Quit

Examples:
  magicwall play
  magicwall play --width 50 --height 30 --diffs 10
  magicwall play --scheme b --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Wall width in cells")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Wall height in cells")
	playCmd.Flags().IntVar(&flagCellSize, "cell", 0, "Cell size in pixels")
	playCmd.Flags().IntVar(&flagDiffs, "diffs", 0, "Number of differences")
	playCmd.Flags().StringVar(&flagScheme, "scheme", "", "Color scheme: a (white) or b (black)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	round := cfg.Round.ToRound()
	if flagWidth > 0 {
		round.Width = flagWidth
	}
	if flagHeight > 0 {
		round.Height = flagHeight
	}
	if flagCellSize > 0 {
		round.CellSize = flagCellSize
	}
	if flagDiffs > 0 {
		round.DiffCount = flagDiffs
	}
	if flagScheme != "" {
		scheme, ok := wall.ParseScheme(flagScheme)
		if !ok {
			return fmt.Errorf("unknown scheme %q (want a or b)", flagScheme)
		}
		round.Scheme = scheme
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	m, err := tui.NewCustomRound(gameOptions(cfg, store), round)
	if err != nil {
		return err
	}
	return tui.RunRound(m)
}
