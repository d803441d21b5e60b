// Package grid implements the 2D container allocator: finding and claiming
// rectangular free regions in a container's item grid, with rotation.
package grid

// Slot is a successful placement candidate.
type Slot struct {
	X       int
	Y       int
	Rotated bool
}

// Grid is a fixed-size occupancy matrix belonging to exactly one container
// instance. It is mutated only by the placement pass that owns the container
// and discarded once the container's loot is finalized. Not safe for
// concurrent use.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// New creates an empty grid of width columns by height rows.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) occupied(x, y int) bool {
	return g.cells[y*g.width+x]
}

// fits reports whether a w x h rectangle anchored at (x, y) lies fully
// inside the grid with every cell free.
func (g *Grid) fits(x, y, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if x+w > g.width || y+h > g.height {
		return false
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if g.occupied(x+dx, y+dy) {
				return false
			}
		}
	}
	return true
}

// FindSlot scans free positions row-major (x ascending within y ascending)
// and returns the first position where the item fits, trying the unrotated
// orientation before the rotated one at each position. Returns ok=false when
// neither orientation fits anywhere.
func (g *Grid) FindSlot(width, height int) (Slot, bool) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.fits(x, y, width, height) {
				return Slot{X: x, Y: y}, true
			}
			if width != height && g.fits(x, y, height, width) {
				return Slot{X: x, Y: y, Rotated: true}, true
			}
		}
	}
	return Slot{}, false
}

// Fill marks the placed rectangle occupied. The caller passes the item's
// declared width and height; a rotated slot claims the swapped footprint.
func (g *Grid) Fill(slot Slot, width, height int) {
	w, h := width, height
	if slot.Rotated {
		w, h = h, w
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			g.cells[(slot.Y+dy)*g.width+slot.X+dx] = true
		}
	}
}

// FreeCells returns the number of unoccupied cells, for diagnostics.
func (g *Grid) FreeCells() int {
	free := 0
	for _, c := range g.cells {
		if !c {
			free++
		}
	}
	return free
}
