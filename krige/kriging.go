package krige

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/geom"
	"gonum.org/v1/gonum/mat"
)

// One scattered observation on the interpolation plane.
type Sample struct {
	X, Y  float64
	Value float64
}

func (s Sample) point() geom.Point {
	return geom.Point{X: s.X, Y: s.Y}
}

func distance(a, b Sample) float64 {
	return a.point().Distance(b.point())
}

// The gridded estimate and its kriging standard error, with meshgrid
// cell center coordinates, indexed [row][col]. Read-only output; the
// core does not persist it.
type Field struct {
	GridX    [][]float64
	GridY    [][]float64
	Estimate [][]float64
	StdDev   [][]float64
}

func countDistinctLocations(samples []Sample) int {
	seen := make(map[geom.Point]bool, len(samples))
	for _, s := range samples {
		seen[s.point()] = true
	}
	return len(seen)
}

// Ordinary kriging of the samples over every cell of the grid, using
// the fitted variogram's covariance structure. The returned field is
// the best linear unbiased estimate per cell plus its standard error.
// Exact at sample locations: a cell whose center coincides with a
// sample gets that sample's value with zero standard error.
//
// Fails explicitly (rather than returning a degenerate field) when
// fewer than 2 distinct sample locations exist or when the covariance
// system is singular or too ill-conditioned to solve.
func Krige(samples []Sample, grid *geom.Grid, v *Variogram) (*Field, error) {
	if n := countDistinctLocations(samples); n < 2 {
		return nil, fmt.Errorf(
			"kriging needs at least 2 distinct sample locations, got %d", n)
	}
	n := len(samples)

	// The ordinary kriging system in semivariance form, bordered with
	// the unbiasedness constraint row and column.
	a := mat.NewDense(n+1, n+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, v.At(distance(samples[i], samples[j])))
		}
		a.Set(i, n, 1)
		a.Set(n, i, 1)
	}
	a.Set(n, n, 0)

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, fmt.Errorf(
			"singular or ill-conditioned kriging system "+
				"(coincident sample locations?): %w", err)
	}

	field := &Field{
		Estimate: make([][]float64, grid.Rows),
		StdDev:   make([][]float64, grid.Rows),
	}
	field.GridX, field.GridY = grid.CenterCoordinates()
	for row := 0; row < grid.Rows; row++ {
		field.Estimate[row] = make([]float64, grid.Cols)
		field.StdDev[row] = make([]float64, grid.Cols)
	}

	// Cells are independent, so rows fan out to workers; each writes
	// only its own disjoint grid positions.
	rows := make(chan int, grid.Rows)
	for row := 0; row < grid.Rows; row++ {
		rows <- row
	}
	close(rows)

	numWorkers := runtime.NumCPU()
	if numWorkers > grid.Rows {
		numWorkers = grid.Rows
	}
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := mat.NewVecDense(n+1, nil)
			w := mat.NewVecDense(n+1, nil)
			for row := range rows {
				for col := 0; col < grid.Cols; col++ {
					pt := grid.CellCenter(row, col)
					for i := 0; i < n; i++ {
						b.SetVec(i, v.At(pt.Distance(samples[i].point())))
					}
					b.SetVec(n, 1)
					w.MulVec(&inv, b)

					estimate := 0.0
					for i := 0; i < n; i++ {
						estimate += w.AtVec(i) * samples[i].Value
					}
					// The kriging variance is w·b; the last term is the
					// Lagrange multiplier times the constraint.
					variance := mat.Dot(w, b)
					field.Estimate[row][col] = estimate
					field.StdDev[row][col] = math.Sqrt(math.Max(variance, 0))
				}
			}
		}()
	}
	wg.Wait()

	glog.V(1).Infof("Kriged %d samples onto a %dx%d grid",
		n, grid.Cols, grid.Rows)
	return field, nil
}
