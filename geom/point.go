package geom

import (
	"math"
)

type Point struct {
	X, Y float64
}

func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

func PointsBounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{
		MinX: points[0].X, MaxX: points[0].X,
		MinY: points[0].Y, MaxY: points[0].Y,
	}
	for _, pt := range points[1:] {
		r.MinX = math.Min(r.MinX, pt.X)
		r.MaxX = math.Max(r.MaxX, pt.X)
		r.MinY = math.Min(r.MinY, pt.Y)
		r.MaxY = math.Max(r.MaxY, pt.Y)
	}
	return r
}
