// Package layout computes the dashboard grid for feedtui. It is a pure
// function from widget placements and terminal dimensions to
// non-overlapping rectangles: no caching, no terminal I/O, recomputed on
// every resize.
//
// The grid extent is (max row+1) x (max col+1) over all placements. The
// terminal area is partitioned evenly across that grid; division
// remainders are given to the last row and last column. Two placements
// declaring the same cell are resolved deterministically: the
// later-declared placement wins and the earlier is dropped with a
// warning.
package layout

// Rect represents a rectangular area in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Area returns the number of cells in this rectangle.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty returns true if this rectangle has zero area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Inner returns a new Rect shrunk by margin on all sides. Margins that
// would produce negative dimensions yield a zero-size rect.
func (r Rect) Inner(margin int) Rect {
	if margin < 0 {
		margin = 0
	}
	w := r.Width - 2*margin
	h := r.Height - 2*margin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + margin, Y: r.Y + margin, Width: w, Height: h}
}

// Contains returns true if the point (px, py) lies within this rectangle.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.Right() && py >= r.Y && py < r.Bottom()
}

// Overlaps returns true if the two rectangles share at least one cell.
func (r Rect) Overlaps(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Placement ties a widget ID to its declared grid cell.
type Placement struct {
	ID  string
	Row int
	Col int
}

// Cell is one resolved entry of a computed grid: the widget that owns it
// and the screen rectangle it was assigned.
type Cell struct {
	ID   string
	Row  int
	Col  int
	Rect Rect
}

// Grid is the result of Compute: resolved cells in declaration order plus
// warnings for placements that were dropped.
type Grid struct {
	Rows  int
	Cols  int
	Cells []Cell

	// Dropped lists the IDs of placements that lost a duplicate-cell
	// tie-break, in declaration order.
	Dropped []string
}

// Lookup returns the rectangle assigned to id, or a zero Rect and false
// if the id was dropped or never placed.
func (g Grid) Lookup(id string) (Rect, bool) {
	for _, c := range g.Cells {
		if c.ID == id {
			return c.Rect, true
		}
	}
	return Rect{}, false
}

// Compute resolves placements against a terminal area.
//
// Steps:
//  1. Resolve duplicate cells: for each (row, col) the later-declared
//     placement wins; earlier ones are recorded in Dropped.
//  2. Extent: rows = max row+1, cols = max col+1 over surviving
//     placements.
//  3. Partition area.Width into cols columns and area.Height into rows
//     rows, evenly, remainder cells going to the last column and last
//     row respectively.
//  4. Assign each surviving placement its cell's rectangle.
//
// Negative rows or cols are clamped to 0. An empty placement list or an
// empty area produces an empty grid.
func Compute(placements []Placement, area Rect) Grid {
	if len(placements) == 0 {
		return Grid{}
	}

	// Pass 1: duplicate resolution, later declaration wins.
	type slot struct{ row, col int }
	winners := make(map[slot]int, len(placements)) // slot -> placement index
	var dropped []string
	for i, p := range placements {
		row := clampNonNeg(p.Row)
		col := clampNonNeg(p.Col)
		s := slot{row, col}
		if prev, ok := winners[s]; ok {
			dropped = append(dropped, placements[prev].ID)
		}
		winners[s] = i
	}

	// Pass 2: extent over surviving placements.
	rows, cols := 0, 0
	for s := range winners {
		if s.row+1 > rows {
			rows = s.row + 1
		}
		if s.col+1 > cols {
			cols = s.col + 1
		}
	}

	g := Grid{Rows: rows, Cols: cols, Dropped: dropped}
	if area.Empty() {
		return g
	}

	// Pass 3: even partition with remainder to the last row/column.
	colX, colW := splitAxis(area.X, area.Width, cols)
	rowY, rowH := splitAxis(area.Y, area.Height, rows)

	// Pass 4: assign rects in declaration order.
	surviving := make(map[int]slot, len(winners))
	for s, i := range winners {
		surviving[i] = s
	}
	for i := range placements {
		s, ok := surviving[i]
		if !ok {
			continue
		}
		g.Cells = append(g.Cells, Cell{
			ID:  placements[i].ID,
			Row: s.row,
			Col: s.col,
			Rect: Rect{
				X:      colX[s.col],
				Y:      rowY[s.row],
				Width:  colW[s.col],
				Height: rowH[s.row],
			},
		})
	}
	return g
}

// splitAxis divides size cells starting at origin into n segments. Each
// segment gets size/n cells; the last segment also absorbs the
// remainder. Returns parallel slices of start positions and sizes.
func splitAxis(origin, size, n int) (starts, sizes []int) {
	if n <= 0 {
		return nil, nil
	}
	starts = make([]int, n)
	sizes = make([]int, n)

	base := size / n
	rem := size - base*n

	pos := origin
	for i := 0; i < n; i++ {
		starts[i] = pos
		sizes[i] = base
		if i == n-1 {
			sizes[i] += rem
		}
		pos += sizes[i]
	}
	return starts, sizes
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
