package krige

import (
	"fmt"
	"math"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/fit"
	"github.com/jamessynge/wifi_survey/stats"
)

type Model string

const (
	Spherical   Model = "spherical"
	Exponential Model = "exponential"
	Gaussian    Model = "gaussian"
)

func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case Spherical, Exponential, Gaussian:
		return Model(s), nil
	}
	return "", fmt.Errorf("unknown variogram model %q", s)
}

// A fitted isotropic variogram: semivariance as a function of lag
// distance. At(0) is zero by definition (the nugget is a discontinuity
// at the origin, not a value at it), which is what makes kriging an
// exact interpolator at sample locations.
type Variogram struct {
	Model  Model
	Nugget float64
	Sill   float64
	Range  float64
}

func (v *Variogram) At(h float64) float64 {
	if h <= 0 {
		return 0
	}
	partial := v.Sill - v.Nugget
	switch v.Model {
	case Exponential:
		return v.Nugget + partial*(1-math.Exp(-3*h/v.Range))
	case Gaussian:
		return v.Nugget + partial*(1-math.Exp(-3*h*h/(v.Range*v.Range)))
	default: // Spherical
		if h >= v.Range {
			return v.Sill
		}
		r := h / v.Range
		return v.Nugget + partial*(1.5*r-0.5*r*r*r)
	}
}

func (v *Variogram) String() string {
	return fmt.Sprintf("{%s nugget=%.3g sill=%.3g range=%.1f}",
		v.Model, v.Nugget, v.Sill, v.Range)
}

// One bin of the experimental semivariogram.
type lagBin struct {
	center float64
	gamma  stats.Running1DStats
}

const defaultNumLagBins = 15

// Estimates the experimental semivariogram: pairwise half squared
// value differences, binned by lag distance up to half the maximum
// pairwise separation (beyond that there are too few pairs per bin for
// a stable estimate).
func experimentalVariogram(samples []Sample, numBins int) []*lagBin {
	maxDist := 0.0
	for i := range samples {
		for j := i + 1; j < len(samples); j++ {
			maxDist = math.Max(maxDist, distance(samples[i], samples[j]))
		}
	}
	maxLag := maxDist / 2
	if maxLag <= 0 || numBins <= 0 {
		return nil
	}
	binWidth := maxLag / float64(numBins)
	bins := make([]*lagBin, numBins)
	for b := range bins {
		bins[b] = &lagBin{center: (float64(b) + 0.5) * binWidth}
	}
	for i := range samples {
		for j := i + 1; j < len(samples); j++ {
			h := distance(samples[i], samples[j])
			b := int(h / binWidth)
			if b >= numBins {
				continue
			}
			d := samples[i].Value - samples[j].Value
			bins[b].gamma.Add(0.5 * d * d)
		}
	}
	return bins
}

// Fits a variogram model to the samples. The sill is seeded from the
// sample variance, the range is the lag at which the experimental
// semivariogram reaches the sill, and the nugget is the intercept of a
// pair-count weighted linear fit through the lag bins.
func FitVariogram(samples []Sample, model Model) (*Variogram, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf(
			"need at least 2 samples to fit a variogram, got %d", len(samples))
	}
	var values stats.Running1DStats
	for _, s := range samples {
		values.Add(s.Value)
	}
	// A zero-variance sample set still kriges (to a flat surface); the
	// sill just sets the scale of the weights, so any positive value
	// works.
	sill := values.Variance()
	if sill <= 0 {
		sill = 1
	}

	bins := experimentalVariogram(samples, defaultNumLagBins)
	occupied := make([]*lagBin, 0, len(bins))
	for _, b := range bins {
		if b.gamma.Count() > 0 {
			occupied = append(occupied, b)
		}
	}
	if len(occupied) == 0 {
		return nil, fmt.Errorf("no distinct sample separations to bin")
	}

	rng := occupied[len(occupied)-1].center
	for _, b := range occupied {
		if b.gamma.Mean() >= 0.95*sill {
			rng = b.center
			break
		}
	}
	if rng <= 0 {
		rng = occupied[len(occupied)-1].center
	}

	nugget := 0.0
	if len(occupied) >= 2 {
		d2s := &stats.Data2DSourceDelegate{
			Lf: func() int { return len(occupied) },
			Xf: func(n int) float64 { return occupied[n].center },
			Yf: func(n int) float64 { return occupied[n].gamma.Mean() },
			Wf: func(n int) float64 { return float64(occupied[n].gamma.Count()) },
		}
		_, b, err := fit.FitLineToPoints(d2s)
		if err == nil {
			nugget = math.Max(0, math.Min(b, 0.5*sill))
		} else {
			glog.Warningf("Variogram nugget fit failed, using 0: %v", err)
		}
	}

	v := &Variogram{Model: model, Nugget: nugget, Sill: sill, Range: rng}
	glog.V(1).Infof("Fitted variogram %v from %d samples", v, len(samples))
	return v, nil
}
