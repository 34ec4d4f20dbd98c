package core

// Viewport is the window of grid cells currently visible in a panel.
// X and Y are the grid coordinates of the top-left visible cell.
type Viewport struct {
	X, Y int
	W, H int
}

// Resize sets the visible size and keeps the window inside a gridW x gridH grid.
func (v *Viewport) Resize(w, h, gridW, gridH int) {
	v.W = Clamp(w, 0, gridW)
	v.H = Clamp(h, 0, gridH)
	v.clamp(gridW, gridH)
}

// Scroll moves the window by (dx, dy) without leaving the grid.
func (v *Viewport) Scroll(dx, dy, gridW, gridH int) {
	v.X += dx
	v.Y += dy
	v.clamp(gridW, gridH)
}

// Follow scrolls the minimum amount needed to make (x, y) visible.
func (v *Viewport) Follow(x, y, gridW, gridH int) {
	if x < v.X {
		v.X = x
	} else if x >= v.X+v.W {
		v.X = x - v.W + 1
	}
	if y < v.Y {
		v.Y = y
	} else if y >= v.Y+v.H {
		v.Y = y - v.H + 1
	}
	v.clamp(gridW, gridH)
}

// Visible reports whether grid cell (x, y) is inside the window.
func (v Viewport) Visible(x, y int) bool {
	return x >= v.X && x < v.X+v.W && y >= v.Y && y < v.Y+v.H
}

// Partial reports whether the window shows less than the whole grid.
func (v Viewport) Partial(gridW, gridH int) bool {
	return v.W < gridW || v.H < gridH
}

func (v *Viewport) clamp(gridW, gridH int) {
	v.X = Clamp(v.X, 0, max(gridW-v.W, 0))
	v.Y = Clamp(v.Y, 0, max(gridH-v.H, 0))
}
