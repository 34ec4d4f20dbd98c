package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magicwall/internal/storage"
)

var flagDelete string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games",
	Long: `Shows the saved games in the database. A game is saved with Ctrl+S
during play into the slot of the current user.

Examples:
  magicwall saves
  magicwall saves --delete alice`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

var exportCmd = &cobra.Command{
	Use:   "export <slot> <file>",
	Short: "Write a saved game to a file",
	Long: `Writes the saved game in slot to file. The format follows the file
extension: .json, .yaml or .yml.

Examples:
  magicwall export local ./wall.json
  magicwall export alice ./alice.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file> <slot>",
	Short: "Read a saved game from a file",
	Long: `Reads a saved game from file and stores it in slot, replacing any
game saved there. Continue it from the menu or with Ctrl+L in a round.

Examples:
  magicwall import ./wall.json local`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	savesCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the saved game in this slot")
}

func runSaves(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := mustOpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagDelete != "" {
		if err := store.DeleteSave(flagDelete); err != nil {
			return err
		}
		fmt.Printf("Deleted saved game %q.\n", flagDelete)
		return nil
	}

	saves, err := store.ListSaves()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	fmt.Println("Saved games:")
	fmt.Println()
	fmt.Printf("  %-12s  %-10s  %-9s  %-5s  %s\n", "Slot", "Mode", "State", "Level", "Saved")
	fmt.Printf("  %-12s  %-10s  %-9s  %-5s  %s\n", "----", "----", "-----", "-----", "-----")
	for _, s := range saves {
		level := "-"
		if s.Level > 0 {
			level = fmt.Sprintf("%d", s.Level)
		}
		fmt.Printf("  %-12s  %-10s  %-9s  %-5s  %s\n", s.Slot, s.Mode, s.State, level, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
	slot, path := args[0], args[1]
	if err := checkExtension(path); err != nil {
		return err
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

	snap, err := store.LoadSnapshot(slot)
	if err != nil {
		return err
	}
	if err := storage.WriteSnapshotFile(path, snap); err != nil {
		return err
	}
	fmt.Printf("Saved game %q written to %s\n", slot, path)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	path, slot := args[0], args[1]
	if err := checkExtension(path); err != nil {
		return err
	}

	snap, err := storage.ReadSnapshotFile(path)
	if err != nil {
		return err
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

	if err := store.SaveSnapshot(slot, snap); err != nil {
		return err
	}
	fmt.Printf("Saved game from %s stored in slot %q\n", path, slot)
	return nil
}

func checkExtension(path string) error {
	if !slices.Contains(storage.FormatExtensions(), strings.ToLower(filepath.Ext(path))) {
		return fmt.Errorf("unsupported file %s (want %s)", path, strings.Join(storage.FormatExtensions(), ", "))
	}
	return nil
}
