package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magicwall/internal/platform/tui"
	"github.com/vovakirdan/magicwall/internal/wall"
)

var (
	flagRecordsMode  string
	flagRecordsLimit int
	flagClear        bool
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show completed rounds and level records",
	Long: `Display the fastest completed rounds and the challenge records of
the current user. Rounds played with hints rank below clean ones.

Examples:
  magicwall records
  magicwall records --mode challenge --limit 20
  magicwall records --user alice
  magicwall records --clear`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&flagRecordsMode, "mode", "custom", "Round history to show: custom or challenge")
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of rounds to show")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the round history")
}

func runRecords(_ *cobra.Command, _ []string) error {
	mode := wall.Mode(flagRecordsMode)
	if mode != wall.ModeCustom && mode != wall.ModeChallenge {
		return fmt.Errorf("unknown mode %q (want custom or challenge)", flagRecordsMode)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := mustOpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(); err != nil {
			return err
		}
		fmt.Println("Round history cleared.")
		return nil
	}

	results, err := store.TopResults(mode, flagRecordsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Fastest %s rounds\n", mode)
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No rounds recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-10s  %-10s  %s\n", "Rank", "Wall", "Errors", "Hints", "Time", "Player", "Date")
		fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-10s  %-10s  %s\n", "----", "----", "------", "-----", "----", "------", "----")
		for i, r := range results {
			wallStr := fmt.Sprintf("%dx%d/%d", r.Width, r.Height, r.Diffs)
			if r.Mode == wall.ModeChallenge {
				wallStr = fmt.Sprintf("L%d %dx%d", r.Level, r.Width, r.Height)
			}
			fmt.Printf("  %-4d  %-12s  %-6d  %-5d  %-10s  %-10s  %s\n",
				i+1, wallStr, r.Errors, r.Cheats, fmt.Sprintf("%.3f s", r.Elapsed.Seconds()),
				r.User, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	records, err := store.LoadLevelRecords(cfg.Storage.User)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Challenge records of %s\n", cfg.Storage.User)
	fmt.Println()
	for _, line := range tui.RecordLines(records) {
		fmt.Println("  " + line)
	}
	return nil
}
