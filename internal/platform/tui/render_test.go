package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magicwall/internal/core"
	"github.com/vovakirdan/magicwall/internal/wall"
)

func testGrid(t *testing.T) *wall.Grid {
	t.Helper()
	g, ok := wall.GridFromRows([][]wall.Color{
		{wall.ColorRed, wall.ColorYellow, wall.ColorBlue},
		{wall.ColorLimeGreen, wall.ColorOrange, wall.ColorWhite},
	})
	if !ok {
		t.Fatal("GridFromRows() failed")
	}
	return g
}

func TestRenderPanelCells(t *testing.T) {
	r := NewRenderer()
	r.Screen().Resize(6, 2)
	area := core.NewRect(0, 0, 6, 2)
	view := core.Viewport{W: 3, H: 2}

	r.RenderPanel(testGrid(t), area, view, 2, Overlay{})

	want := [][]core.Color{
		{core.ColorRed, core.ColorYellow, core.ColorBlue},
		{core.ColorLime, core.ColorOrange, core.ColorWhite},
	}
	for y, row := range want {
		for x, bg := range row {
			for i := range 2 {
				cell := r.Screen().GetCell(x*2+i, y)
				if cell.BG != bg || cell.Rune != ' ' {
					t.Errorf("cell (%d,%d) col %d = %+v, want blank on %v", x, y, i, cell, bg)
				}
			}
		}
	}
}

func TestRenderPanelOverlay(t *testing.T) {
	r := NewRenderer()
	r.Screen().Resize(6, 2)
	area := core.NewRect(0, 0, 6, 2)
	view := core.Viewport{W: 3, H: 2}

	r.RenderPanel(testGrid(t), area, view, 2, Overlay{
		Cursor:     wall.C(0, 0),
		ShowCursor: true,
		Hints:      []wall.Coord{wall.C(2, 1)},
	})

	if got := r.Screen().Row(0)[:2]; got != "[]" {
		t.Errorf("cursor marker = %q, want %q", got, "[]")
	}
	if cell := r.Screen().GetCell(0, 0); cell.FG != core.ColorWhite || cell.BG != core.ColorRed {
		t.Errorf("cursor cell = %+v, want white on red", cell)
	}
	if got := r.Screen().Row(1)[4:]; got != "<>" {
		t.Errorf("hint marker = %q, want %q", got, "<>")
	}
	if cell := r.Screen().GetCell(4, 1); cell.FG != core.ColorBlack {
		t.Errorf("hint on white has FG %v, want black", cell.FG)
	}
}

func TestRenderPanelCrosshair(t *testing.T) {
	r := NewRenderer()
	r.Screen().Resize(3, 2)
	area := core.NewRect(0, 0, 3, 2)
	view := core.Viewport{W: 3, H: 2}

	r.RenderPanel(testGrid(t), area, view, 1, Overlay{Hover: wall.C(1, 1), Crosshair: true})

	want := []string{" · ", "·o·"}
	for y, row := range want {
		if got := r.Screen().Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
}

func TestRenderPanelScrolledView(t *testing.T) {
	r := NewRenderer()
	r.Screen().Resize(2, 1)
	view := core.Viewport{X: 1, Y: 1, W: 2, H: 1}

	r.RenderPanel(testGrid(t), core.NewRect(0, 0, 2, 1), view, 1, Overlay{
		Cursor:     wall.C(0, 0), // Scrolled out of view
		ShowCursor: true,
	})

	if got := r.Screen().Row(0); got != "  " {
		t.Errorf("row = %q, want no markers", got)
	}
	if bg := r.Screen().GetCell(0, 0).BG; bg != core.ColorOrange {
		t.Errorf("first visible cell BG = %v, want orange", bg)
	}
}

func TestRenderBoard(t *testing.T) {
	s, err := wall.NewSession(wall.WithSeed(3))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	cfg := wall.RoundConfig{Width: 10, Height: 10, CellSize: 20, DiffCount: 3, Scheme: wall.SchemeA}
	if err := s.Start(cfg); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	l := ComputeLayout(100, 40, 10, 10, 20)
	view := core.Viewport{W: l.ViewW, H: l.ViewH}
	r := NewRenderer()
	out := r.RenderBoard(s, l, view, Overlay{})

	lines := strings.Split(out, "\n")
	if len(lines) != l.Height {
		t.Fatalf("board has %d lines, want %d", len(lines), l.Height)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != l.Width {
			t.Errorf("line %d width = %d, want %d", i, w, l.Width)
		}
	}
	if !strings.Contains(r.Screen().Row(0), "original") {
		t.Errorf("top frame %q lacks the panel title", r.Screen().Row(0))
	}

	// Every difference shows up as differing backgrounds across the panels.
	for _, c := range s.Remaining().Sorted() {
		left := r.Screen().GetCell(l.Left.X+c.X*l.CellW, l.Left.Y+c.Y)
		right := r.Screen().GetCell(l.Right.X+c.X*l.CellW, l.Right.Y+c.Y)
		if left.BG == right.BG {
			t.Errorf("difference %s renders the same color %v on both panels", c, left.BG)
		}
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hello", core.ColorDefault)
	s.SetCell(0, 1, core.Cell{Rune: 'x', FG: core.ColorRed, BG: core.ColorBlue})

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "hello" {
		t.Errorf("uncolored row = %q, want %q", lines[0], "hello")
	}
	if w := lipgloss.Width(lines[1]); w != 5 {
		t.Errorf("colored row width = %d, want 5", w)
	}
}
