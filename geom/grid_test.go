package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridCellCenters(t *testing.T) {
	g := NewGrid(NewRect(0, 10, 0, 4), 5, 2)
	assert.Equal(t, 2.0, g.CellWidth())
	assert.Equal(t, 2.0, g.CellHeight())
	assert.Equal(t, Point{X: 1, Y: 1}, g.CellCenter(0, 0))
	assert.Equal(t, Point{X: 9, Y: 3}, g.CellCenter(1, 4))
}

func TestGridPointToCell(t *testing.T) {
	g := NewGrid(NewRect(0, 10, 0, 4), 5, 2)

	row, col := g.PointToCell(Point{X: 1, Y: 1})
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	row, col = g.PointToCell(Point{X: 9.9, Y: 3.9})
	assert.Equal(t, 1, row)
	assert.Equal(t, 4, col)

	// Edges snap inward.
	row, col = g.PointToCell(Point{X: 10, Y: 4})
	assert.Equal(t, 1, row)
	assert.Equal(t, 4, col)
	row, col = g.PointToCell(Point{X: 0, Y: 0})
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}

func TestGridCenterCoordinates(t *testing.T) {
	g := NewGrid(NewRect(0, 10, 0, 4), 5, 2)
	xs, ys := g.CenterCoordinates()
	require.Len(t, xs, 2)
	require.Len(t, ys, 2)
	for row := 0; row < g.Rows; row++ {
		require.Len(t, xs[row], 5)
		for col := 0; col < g.Cols; col++ {
			pt := g.CellCenter(row, col)
			assert.Equal(t, pt.X, xs[row][col])
			assert.Equal(t, pt.Y, ys[row][col])
		}
	}
}

func TestRectBasics(t *testing.T) {
	r := NewRect(0, 10, 2, 6)
	assert.Equal(t, 10.0, r.Width())
	assert.Equal(t, 4.0, r.Height())
	assert.Equal(t, Point{X: 5, Y: 4}, r.Center())
	assert.True(t, r.ContainsPoint(Point{X: 5, Y: 4}))
	assert.False(t, r.ContainsPoint(Point{X: 11, Y: 4}))
}

func TestPointDistance(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 4, Y: 6}
	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, 5.0, b.Distance(a))
	assert.Equal(t, 0.0, a.Distance(a))
}

func TestRectAddBorder(t *testing.T) {
	r := NewRect(2, 4, 1, 3).AddBorder(1, 2)
	assert.Equal(t, NewRect(1, 5, -1, 5), r)
	assert.Equal(t, Point{X: 3, Y: 2}, r.Center())
}

func TestPointsBounds(t *testing.T) {
	points := []Point{
		{X: 3, Y: -1},
		{X: -2, Y: 5},
		{X: 0, Y: 0},
	}
	b := PointsBounds(points)
	assert.Equal(t, -2.0, b.MinX)
	assert.Equal(t, 3.0, b.MaxX)
	assert.Equal(t, -1.0, b.MinY)
	assert.Equal(t, 5.0, b.MaxY)
}
