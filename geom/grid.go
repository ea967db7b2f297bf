package geom

// A regular grid of cell centers laid over a (axis aligned) region of
// data coordinates; row 0 is the southern (MinY) edge, column 0 the
// western (MinX) edge.
type Grid struct {
	Bounds     Rect
	Cols, Rows int
	cellWidth  float64
	cellHeight float64
}

func NewGrid(bounds Rect, cols, rows int) *Grid {
	return &Grid{
		Bounds:     bounds,
		Cols:       cols,
		Rows:       rows,
		cellWidth:  bounds.Width() / float64(cols),
		cellHeight: bounds.Height() / float64(rows),
	}
}

func (g *Grid) CellCenter(row, col int) Point {
	return Point{
		X: g.Bounds.MinX + (float64(col)+0.5)*g.cellWidth,
		Y: g.Bounds.MinY + (float64(row)+0.5)*g.cellHeight,
	}
}

func (g *Grid) CellWidth() float64 {
	return g.cellWidth
}

func (g *Grid) CellHeight() float64 {
	return g.cellHeight
}

// Row and column of the cell containing pt; callers must check the
// point is inside Bounds first, edges snap inward.
func (g *Grid) PointToCell(pt Point) (row, col int) {
	col = int((pt.X - g.Bounds.MinX) / g.cellWidth)
	row = int((pt.Y - g.Bounds.MinY) / g.cellHeight)
	if col >= g.Cols {
		col = g.Cols - 1
	}
	if row >= g.Rows {
		row = g.Rows - 1
	}
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	return
}

// Meshgrid of cell center coordinates, indexed [row][col].
func (g *Grid) CenterCoordinates() (xs, ys [][]float64) {
	xs = make([][]float64, g.Rows)
	ys = make([][]float64, g.Rows)
	for row := 0; row < g.Rows; row++ {
		xs[row] = make([]float64, g.Cols)
		ys[row] = make([]float64, g.Cols)
		for col := 0; col < g.Cols; col++ {
			pt := g.CellCenter(row, col)
			xs[row][col] = pt.X
			ys[row][col] = pt.Y
		}
	}
	return
}
