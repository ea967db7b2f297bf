package render

import (
	"image/color"
	"math"
)

// A color ramp over [0, 1].
type Ramp func(t float64) color.NRGBA

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

func threeStopRamp(lo, mid, hi color.NRGBA) Ramp {
	return func(t float64) color.NRGBA {
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		if t < 0.5 {
			u := t * 2
			return color.NRGBA{
				lerp(lo.R, mid.R, u), lerp(lo.G, mid.G, u),
				lerp(lo.B, mid.B, u), 255}
		}
		u := (t - 0.5) * 2
		return color.NRGBA{
			lerp(mid.R, hi.R, u), lerp(mid.G, hi.G, u),
			lerp(mid.B, hi.B, u), 255}
	}
}

// Green through yellow to red, for latency: low is good.
func LatencyRamp() Ramp {
	return threeStopRamp(
		color.NRGBA{26, 152, 80, 255},
		color.NRGBA{255, 255, 191, 255},
		color.NRGBA{215, 48, 39, 255})
}

// Dark violet through teal to yellow, for the uncertainty map.
func SigmaRamp() Ramp {
	return threeStopRamp(
		color.NRGBA{68, 1, 84, 255},
		color.NRGBA{33, 145, 140, 255},
		color.NRGBA{253, 231, 37, 255})
}

// Maps a value onto [0, 1] logarithmically between min and max;
// latency spans 10ms to 4000ms, so a linear scale would wash out
// everything below the outage sentinel.
type LogScale struct {
	Min, Max float64
}

func (s LogScale) Normalize(v float64) float64 {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	return math.Log(v/s.Min) / math.Log(s.Max/s.Min)
}

// Linear normalization onto [0, 1].
type LinearScale struct {
	Min, Max float64
}

func (s LinearScale) Normalize(v float64) float64 {
	if s.Max <= s.Min {
		return 0
	}
	t := (v - s.Min) / (s.Max - s.Min)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t
}
