package geom

import (
	"fmt"
)

type Rect struct {
	MinX, MaxX, MinY, MaxY float64
}

func NewRect(xa, xb, ya, yb float64) Rect {
	if xa > xb {
		xa, xb = xb, xa
	}
	if ya > yb {
		ya, yb = yb, ya
	}
	return Rect{xa, xb, ya, yb}
}

func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

func (r Rect) Center() Point {
	x := (r.MaxX-r.MinX)/2 + r.MinX
	y := (r.MaxY-r.MinY)/2 + r.MinY
	return Point{x, y}
}

func (r Rect) ContainsPoint(p Point) bool {
	return r.MinX <= p.X && p.X <= r.MaxX &&
		r.MinY <= p.Y && p.Y <= r.MaxY
}

func (r Rect) AddBorder(xBorder, yBorder float64) Rect {
	r.MinX -= xBorder
	r.MaxX += xBorder
	r.MinY -= yBorder
	r.MaxY += yBorder
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("[%.1f, %.1f] x [%.1f, %.1f]",
		r.MinX, r.MaxX, r.MinY, r.MaxY)
}
