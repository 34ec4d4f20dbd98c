package tui

import (
	"github.com/vovakirdan/magicwall/internal/core"
	"github.com/vovakirdan/magicwall/internal/wall"
)

// Round screen layout constants
const (
	hudRows    = 2 // Title/stats line + viewport line
	footerRows = 2 // Status line + help bar
	panelGap   = 2 // Columns between the two panel frames
	wideCell   = 10
)

// Layout places the two panels of a round on the terminal.
// Rects are relative to the board, which starts at terminal row Top.
type Layout struct {
	Top      int
	Width    int
	Height   int
	CellW    int // Terminal columns per grid cell: 1 or 2
	LeftBox  core.Rect
	RightBox core.Rect
	Left     core.Rect // Cell area inside LeftBox
	Right    core.Rect // Cell area inside RightBox
	ViewW    int       // Visible grid columns per panel
	ViewH    int       // Visible grid rows per panel
	TooSmall bool
}

// ComputeLayout fits a gridW x gridH wall into a screenW x screenH terminal.
// Cells are two columns wide when the whole wall fits that way and the pixel
// cell size is not tiny; otherwise one column, with scrolling if needed.
func ComputeLayout(screenW, screenH, gridW, gridH, cellSize int) Layout {
	availW := (screenW-panelGap)/2 - 2
	availH := screenH - hudRows - footerRows - 2

	cellW := 1
	if cellSize >= wideCell && gridW*2 <= availW {
		cellW = 2
	}

	l := Layout{
		Top:   hudRows,
		CellW: cellW,
		ViewW: min(gridW, availW/cellW),
		ViewH: min(gridH, availH),
	}
	if l.ViewW < 1 || l.ViewH < 1 {
		l.TooSmall = true
		return l
	}

	panelW := l.ViewW*cellW + 2
	panelH := l.ViewH + 2
	l.LeftBox = core.NewRect(0, 0, panelW, panelH)
	l.RightBox = core.NewRect(panelW+panelGap, 0, panelW, panelH)
	l.Left = l.LeftBox.Inset(1)
	l.Right = l.RightBox.Inset(1)
	l.Width = 2*panelW + panelGap
	l.Height = panelH
	return l
}

// CellAt maps a terminal position to the grid cell under it on either panel.
func (l Layout) CellAt(mx, my int, view core.Viewport) (wall.Coord, bool) {
	if l.TooSmall {
		return wall.Coord{}, false
	}
	y := my - l.Top
	for _, area := range []core.Rect{l.Left, l.Right} {
		if area.Contains(mx, y) {
			return wall.C(view.X+(mx-area.X)/l.CellW, view.Y+(y-area.Y)), true
		}
	}
	return wall.Coord{}, false
}
