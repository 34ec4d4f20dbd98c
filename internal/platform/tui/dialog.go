package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magicwall/internal/wall"
)

// dialogAction is what confirming a dialog does.
type dialogAction int

const (
	dialogClose      dialogAction = iota // Dismiss and stay on the board
	dialogStartLevel                     // Start the current challenge level
	dialogNextLevel                      // Advance and start the next level
	dialogMenu                           // Leave the round
)

// dialog is a modal message box shown in place of the board.
type dialog struct {
	title  string
	lines  []string
	hint   string
	action dialogAction
}

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("229")).
			Padding(1, 3)
	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				MarginBottom(1)
	dialogHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// View renders the dialog centered in a width x height area.
func (d dialog) View(width, height int) string {
	parts := []string{dialogTitleStyle.Render(d.title), strings.Join(d.lines, "\n")}
	if d.hint != "" {
		parts = append(parts, dialogHintStyle.Render(d.hint))
	}
	box := dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// formatSeconds renders a duration the way results are reported: seconds
// with millisecond precision.
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f s", d.Seconds())
}

func levelStartDialog(l wall.Level) *dialog {
	return &dialog{
		title: fmt.Sprintf("Level %d", l.Number),
		lines: []string{
			fmt.Sprintf("Wall: %dx%d", l.Width, l.Height),
			fmt.Sprintf("Differences: %d", l.DiffCount),
		},
		hint:   "enter: start  esc: menu",
		action: dialogStartLevel,
	}
}

// customCompleteDialog reports a finished custom round. Rounds where any
// difference was found with hints on get a different verdict.
func customCompleteDialog(r wall.RoundResult) *dialog {
	if r.Cheated() {
		return &dialog{
			title: "Ha, you cheated!",
			lines: []string{
				fmt.Sprintf("Differences: %d", r.Diffs),
				fmt.Sprintf("Found with hints: %d", r.Cheats),
				fmt.Sprintf("Time: %s", formatSeconds(r.Elapsed)),
			},
			hint:   "enter: close  r: new round  esc: menu",
			action: dialogClose,
		}
	}
	return &dialog{
		title: "Congratulations!",
		lines: []string{
			fmt.Sprintf("Differences: %d", r.Diffs),
			fmt.Sprintf("Errors: %d", r.Errors),
			fmt.Sprintf("Time: %s", formatSeconds(r.Elapsed)),
		},
		hint:   "enter: close  r: new round  esc: menu",
		action: dialogClose,
	}
}

func levelCompleteDialog(r wall.RoundResult, next wall.Level) *dialog {
	lines := []string{
		fmt.Sprintf("Time: %s", formatSeconds(r.Elapsed)),
		fmt.Sprintf("Errors: %d", r.Errors),
	}
	if r.Cheated() {
		lines = append(lines, fmt.Sprintf("Found with hints: %d", r.Cheats))
	}
	lines = append(lines,
		"---",
		fmt.Sprintf("Next: level %d, %dx%d", next.Number, next.Width, next.Height),
		fmt.Sprintf("Differences: %d", next.DiffCount),
	)
	return &dialog{
		title:  fmt.Sprintf("Level %d complete", r.Level),
		lines:  lines,
		hint:   "enter: next level  r: retry  esc: menu",
		action: dialogNextLevel,
	}
}

func finalDialog(p *wall.Progression) *dialog {
	return &dialog{
		title:  "All levels complete",
		lines:  RecordLines(p.Records()),
		hint:   "enter: menu",
		action: dialogMenu,
	}
}

// recordsDialog summarizes a challenge run that is being abandoned.
func recordsDialog(p *wall.Progression) *dialog {
	return &dialog{
		title:  "Challenge records",
		lines:  RecordLines(p.Records()),
		hint:   "enter: menu  q: quit and keep records",
		action: dialogMenu,
	}
}

func errorDialog(err error) *dialog {
	return &dialog{
		title:  "Error",
		lines:  []string{err.Error()},
		hint:   "enter: close",
		action: dialogClose,
	}
}

// RecordLines formats challenge records: one line per completed level,
// then the totals.
func RecordLines(records []wall.LevelRecord) []string {
	var (
		lines  []string
		totalT time.Duration
		totalE int
		totalC int
	)
	for i, r := range records {
		if !r.Completed {
			continue
		}
		lines = append(lines, fmt.Sprintf("Level %2d: %10s  errors %3d  hints %3d",
			i+1, formatSeconds(r.Time), r.Errors, r.Cheats))
		totalT += r.Time
		totalE += r.Errors
		totalC += r.Cheats
	}
	if len(lines) == 0 {
		return []string{"No levels completed yet."}
	}
	lines = append(lines,
		"---",
		fmt.Sprintf("Total:    %10s  errors %3d  hints %3d", formatSeconds(totalT), totalE, totalC),
	)
	return lines
}
