package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/magicwall/internal/core"
	"github.com/vovakirdan/magicwall/internal/wall"
)

// terminalColors maps core.Color slots to 256-color codes.
// ColorDefault is absent and leaves the terminal color alone.
var terminalColors = map[core.Color]lipgloss.Color{
	core.ColorRed:    lipgloss.Color("196"),
	core.ColorYellow: lipgloss.Color("226"),
	core.ColorBlue:   lipgloss.Color("21"),
	core.ColorLime:   lipgloss.Color("118"),
	core.ColorOrange: lipgloss.Color("208"),
	core.ColorWhite:  lipgloss.Color("231"),
	core.ColorBlack:  lipgloss.Color("16"),
	core.ColorGray:   lipgloss.Color("240"),
	core.ColorDim:    lipgloss.Color("244"),
	core.ColorAccent: lipgloss.Color("229"),
	core.ColorHint:   lipgloss.Color("201"),
}

// cellColors maps wall colors to screen color slots.
var cellColors = [wall.ColorCount]core.Color{
	wall.ColorRed:       core.ColorRed,
	wall.ColorYellow:    core.ColorYellow,
	wall.ColorBlue:      core.ColorBlue,
	wall.ColorLimeGreen: core.ColorLime,
	wall.ColorOrange:    core.ColorOrange,
	wall.ColorWhite:     core.ColorWhite,
	wall.ColorBlack:     core.ColorBlack,
}

type colorPair struct {
	fg, bg core.Color
}

func styleFor(p colorPair) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := terminalColors[p.fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := terminalColors[p.bg]; ok {
		style = style.Background(c)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := make(map[colorPair]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{cell.FG, cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.FG, cell.BG}) != pair {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if pair == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[pair]
			if !ok {
				style = styleFor(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Overlay is what gets drawn on top of the cells of a panel.
type Overlay struct {
	Cursor     wall.Coord
	ShowCursor bool
	Hover      wall.Coord
	Crosshair  bool         // Draw the hovered row, column and cell box
	Hints      []wall.Coord // Unresolved differences, drawn on both panels
}

// Renderer draws rounds into a screen buffer.
type Renderer struct {
	screen *core.Screen
}

// NewRenderer creates a renderer with an empty screen.
func NewRenderer() *Renderer {
	return &Renderer{screen: core.NewScreen(0, 0)}
}

// Screen returns the buffer of the last render.
func (r *Renderer) Screen() *core.Screen {
	return r.screen
}

// RenderPanel draws the visible part of g into area, cellW columns per cell.
func (r *Renderer) RenderPanel(g *wall.Grid, area core.Rect, view core.Viewport, cellW int, ov Overlay) {
	if g == nil {
		r.screen.FillRect(area, core.Cell{Rune: ' '})
		return
	}
	for vy := 0; vy < view.H; vy++ {
		for vx := 0; vx < view.W; vx++ {
			bg := cellColors[g.At(view.X+vx, view.Y+vy)]
			for i := range cellW {
				r.screen.SetCell(area.X+vx*cellW+i, area.Y+vy, core.Cell{Rune: ' ', BG: bg})
			}
		}
	}

	// Lowest priority first; later marks overwrite earlier ones.
	if ov.Crosshair {
		for x := view.X; x < view.X+view.W; x++ {
			r.mark(area, view, cellW, wall.C(x, ov.Hover.Y), "··", "·")
		}
		for y := view.Y; y < view.Y+view.H; y++ {
			r.mark(area, view, cellW, wall.C(ov.Hover.X, y), "··", "·")
		}
	}
	for _, c := range ov.Hints {
		r.mark(area, view, cellW, c, "<>", "*")
	}
	if ov.Crosshair {
		r.mark(area, view, cellW, ov.Hover, "()", "o")
	}
	if ov.ShowCursor {
		r.mark(area, view, cellW, ov.Cursor, "[]", "+")
	}
}

// mark writes a marker over cell c, keeping its background.
func (r *Renderer) mark(area core.Rect, view core.Viewport, cellW int, c wall.Coord, wide, narrow string) {
	if !view.Visible(c.X, c.Y) {
		return
	}
	text := narrow
	if cellW > 1 {
		text = wide
	}
	x := area.X + (c.X-view.X)*cellW
	y := area.Y + (c.Y - view.Y)
	i := 0
	for _, ch := range text {
		if i >= cellW {
			break
		}
		cell := r.screen.GetCell(x+i, y)
		cell.Rune = ch
		cell.FG = contrast(cell.BG)
		r.screen.SetCell(x+i, y, cell)
		i++
	}
}

// drawTitle writes a label into the top edge of a frame when it fits.
func (r *Renderer) drawTitle(box core.Rect, title string) {
	if len(title)+4 > box.W {
		return
	}
	r.screen.DrawText(box.X+2, box.Y, title, core.ColorDim)
}

// contrast picks a readable foreground for a cell background.
func contrast(bg core.Color) core.Color {
	switch bg {
	case core.ColorWhite, core.ColorYellow, core.ColorLime, core.ColorOrange:
		return core.ColorBlack
	}
	return core.ColorWhite
}

// RenderBoard draws both panels of s with their frames and returns the
// styled board.
func (r *Renderer) RenderBoard(s *wall.Session, l Layout, view core.Viewport, ov Overlay) string {
	r.screen.Resize(l.Width, l.Height)
	r.screen.Clear()
	if l.TooSmall {
		return ""
	}

	frame := core.ColorGray
	if s.State() == wall.StateCompleted {
		frame = core.ColorAccent
	}
	r.screen.DrawBox(l.LeftBox, frame)
	r.screen.DrawBox(l.RightBox, frame)
	r.drawTitle(l.LeftBox, " original ")
	r.drawTitle(l.RightBox, " find the differences ")

	r.RenderPanel(s.Base(), l.Left, view, l.CellW, ov)
	r.RenderPanel(s.Variant(), l.Right, view, l.CellW, ov)
	return RenderScreen(r.screen)
}
