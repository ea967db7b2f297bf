package fit

import (
	"fmt"

	"github.com/jamessynge/wifi_survey/stats"
)

// Weighted linear least squares fit of y = m*x + b, with x as the
// independent variable. Points with zero weight are ignored.
func FitLineToPoints(data stats.Data2DSource) (m, b float64, err error) {
	var n, sum_x, sum_y, sum_xx, sum_xy float64
	for i, limit := 0, data.Len(); i < limit; i++ {
		w := data.Weight(i)
		if w <= 0 {
			continue
		}
		x, y := data.X(i), data.Y(i)
		n += w
		sum_x += w * x
		sum_y += w * y
		sum_xx += w * (x * x)
		sum_xy += w * (x * y)
	}

	if n <= 0 {
		err = fmt.Errorf("not enough weighted points: %d", data.Len())
		return
	}

	numerator := n*sum_xy - sum_x*sum_y
	denominator := n*sum_xx - sum_x*sum_x
	if denominator == 0 {
		err = fmt.Errorf(
			"denominator is zero; n=%v sum_x=%v sum_y=%v sum_xx=%v sum_xy=%v",
			n, sum_x, sum_y, sum_xx, sum_xy)
		return
	}

	m = numerator / denominator
	b = (sum_y - m*sum_x) / n
	return
}
