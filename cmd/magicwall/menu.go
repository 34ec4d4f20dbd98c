package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/magicwall/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Magic Wall in interactive menu mode.

Set up a custom round, continue the challenge, resume a saved game
or browse the records. After a round you return to the menu.

Controls:
  Up/Down/w/s   - Navigate menu
  Left/Right    - Change the selected setting
  Enter/Space   - Select
  Q             - Quit

Examples:
  magicwall menu
  magicwall menu --db ./magicwall.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(gameOptions(cfg, store))
}
