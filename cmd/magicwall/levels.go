package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magicwall/internal/wall"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the challenge levels",
	Long:  `Shows the wall size, cell size and number of differences of every challenge level.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Println("Challenge levels:")
	fmt.Println()

	fmt.Printf("  %-5s  %-9s  %-4s  %s\n", "Level", "Wall", "Cell", "Differences")
	fmt.Printf("  %-5s  %-9s  %-4s  %s\n", "-----", "----", "----", "-----------")
	for _, l := range wall.Levels {
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-5d  %-9s  %-4d  %d\n", l.Number, size, l.CellSize, l.DiffCount)
	}

	fmt.Println()
	fmt.Println("Run 'magicwall challenge' to play.")
}
