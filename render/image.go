package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/fusion"
	"github.com/jamessynge/wifi_survey/geom"
	"github.com/jamessynge/wifi_survey/krige"
)

// Conventional bounds of the latency color scale (milliseconds).
const (
	LatencyScaleMinMs = 10
	LatencyScaleMaxMs = 4000
)

type Scale interface {
	Normalize(v float64) float64
}

func dataToPixel(viewport geom.Rect, sizePx int, pt geom.Point) (x, y int) {
	x = int((pt.X - viewport.MinX) / viewport.Width() * float64(sizePx))
	// Pixel row 0 is the top of the image, the viewport's MaxY edge.
	y = int((viewport.MaxY - pt.Y) / viewport.Height() * float64(sizePx))
	return
}

func pixelToData(viewport geom.Rect, sizePx, x, y int) geom.Point {
	return geom.Point{
		X: viewport.MinX + (float64(x)+0.5)/float64(sizePx)*viewport.Width(),
		Y: viewport.MaxY - (float64(y)+0.5)/float64(sizePx)*viewport.Height(),
	}
}

// Renders a kriged value grid over the viewport as a square image,
// coloring each pixel by the grid cell its center falls in.
func RenderField(values [][]float64, grid *geom.Grid, viewport geom.Rect,
	scale Scale, ramp Ramp, sizePx int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, sizePx, sizePx))
	for y := 0; y < sizePx; y++ {
		for x := 0; x < sizePx; x++ {
			pt := pixelToData(viewport, sizePx, x, y)
			row, col := grid.PointToCell(pt)
			c := ramp(scale.Normalize(values[row][col]))
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Draws the matched sample points colored by average latency, with a
// dark edge so they read against the field behind them.
func DrawPoints(img *image.NRGBA, viewport geom.Rect, sizePx int,
	points []fusion.ProjectedPoint, scale Scale, ramp Ramp, radius int) {
	edge := color.NRGBA{0, 0, 0, 255}
	for _, p := range points {
		cx, cy := dataToPixel(viewport, sizePx, p.Point)
		c := ramp(scale.Normalize(p.AvgMs))
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				d2 := dx*dx + dy*dy
				if d2 > radius*radius {
					continue
				}
				if d2 >= (radius-1)*(radius-1) {
					img.SetNRGBA(cx+dx, cy+dy, edge)
				} else {
					img.SetNRGBA(cx+dx, cy+dy, c)
				}
			}
		}
	}
}

// Renders the interpolated latency field with the sample scatter on
// top, matching the conventional log color scale.
func FieldImage(field *krige.Field, grid *geom.Grid, viewport geom.Rect,
	points []fusion.ProjectedPoint, sizePx int) *image.NRGBA {
	scale := LogScale{Min: LatencyScaleMinMs, Max: LatencyScaleMaxMs}
	ramp := LatencyRamp()
	img := RenderField(field.Estimate, grid, viewport, scale, ramp, sizePx)
	DrawPoints(img, viewport, sizePx, points, scale, ramp, 4)
	return img
}

// Renders the kriging standard deviation grid, linearly scaled over
// its own extent.
func SigmaImage(field *krige.Field, grid *geom.Grid, viewport geom.Rect,
	sizePx int) *image.NRGBA {
	lo, hi := field.StdDev[0][0], field.StdDev[0][0]
	for _, row := range field.StdDev {
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	scale := LinearScale{Min: lo, Max: hi}
	return RenderField(field.StdDev, grid, viewport, scale, SigmaRamp(), sizePx)
}

// Renders only the matched sample scatter over the viewport.
func PointsImage(viewport geom.Rect, points []fusion.ProjectedPoint,
	sizePx int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, sizePx, sizePx))
	bg := color.NRGBA{250, 250, 250, 255}
	for y := 0; y < sizePx; y++ {
		for x := 0; x < sizePx; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}
	scale := LogScale{Min: LatencyScaleMinMs, Max: LatencyScaleMaxMs}
	DrawPoints(img, viewport, sizePx, points, scale, LatencyRamp(), 5)
	return img
}

func SaveImageToPng(img image.Image, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if err2 := f.Close(); err == nil {
		err = err2
	}
	if err == nil {
		glog.Infof("Wrote image to %s", filePath)
	}
	return err
}
