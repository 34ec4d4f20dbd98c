package wall

import "strings"

// Grid is a rectangular panel of colored cells.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int
	H     int
	Cells []Color
}

// NewGrid creates a grid with every cell set to fill.
func NewGrid(w, h int, fill Color) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]Color, w*h),
	}
	for i := range g.Cells {
		g.Cells[i] = fill
	}
	return g
}

// GridFromRows builds a grid from a slice of rows.
// Returns false if the rows are empty or ragged.
func GridFromRows(rows [][]Color) (*Grid, bool) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, false
	}
	w, h := len(rows[0]), len(rows)
	g := &Grid{W: w, H: h, Cells: make([]Color, 0, w*h)}
	for _, row := range rows {
		if len(row) != w {
			return nil, false
		}
		g.Cells = append(g.Cells, row...)
	}
	return g, true
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the color at c, or false if c is out of bounds.
func (g *Grid) Get(c Coord) (Color, bool) {
	if !g.InBounds(c) {
		return 0, false
	}
	return g.Cells[g.index(c)], true
}

// At returns the color at (x, y). The caller must ensure it is in bounds.
func (g *Grid) At(x, y int) Color {
	return g.Cells[y*g.W+x]
}

// Set recolors the cell at c. Out-of-bounds coordinates are ignored.
func (g *Grid) Set(c Coord, color Color) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = color
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Color, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, c := range g.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the grid as a freshly allocated slice of rows.
func (g *Grid) Rows() [][]Color {
	rows := make([][]Color, g.H)
	for y := range rows {
		rows[y] = make([]Color, g.W)
		copy(rows[y], g.Cells[y*g.W:(y+1)*g.W])
	}
	return rows
}

// Diff returns every coordinate where g and other disagree, row by row.
// Grids of different sizes yield nil.
func (g *Grid) Diff(other *Grid) []Coord {
	if g.W != other.W || g.H != other.H {
		return nil
	}
	var out []Coord
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) != other.At(x, y) {
				out = append(out, C(x, y))
			}
		}
	}
	return out
}

// String renders the grid one row per line using Color.Char.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.W + 1) * g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			b.WriteRune(g.At(x, y).Char())
		}
		if y < g.H-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
