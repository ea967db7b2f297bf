package stats

import (
	"fmt"
	"math"
)

// Based on https://en.wikipedia.org/wiki/Compensated_summation
type KahanSum struct {
	Sum float64
	// A running compensation for lost low-order bits.
	c float64
}

func (p *KahanSum) Add(v float64) {
	y := v - p.c
	t := p.Sum + y
	p.c = (t - p.Sum) - y
	p.Sum = t
}

type Running1DStats struct {
	count            int64
	min, max         float64
	sum, sum_squares KahanSum
}

func (p *Running1DStats) String() string {
	return fmt.Sprintf(
		"{Mean: %v; StdDev: %v; Range: %v to %v; Count: %d}",
		p.Mean(), p.StandardDeviation(), p.min, p.max, p.count)
}
func (p *Running1DStats) Add(v float64) {
	if p.count == 0 {
		p.min = v
		p.max = v
	} else {
		p.min = math.Min(p.min, v)
		p.max = math.Max(p.max, v)
	}
	p.sum.Add(v)
	p.sum_squares.Add(v * v)
	p.count++
}
func (p *Running1DStats) Count() int64 {
	return p.count
}
func (p *Running1DStats) Min() float64 {
	return p.min
}
func (p *Running1DStats) Max() float64 {
	return p.max
}
func (p *Running1DStats) Mean() float64 {
	return p.sum.Sum / float64(p.count)
}
func (p *Running1DStats) Variance() float64 {
	mean := p.Mean()
	return p.sum_squares.Sum/float64(p.count) - mean*mean
}
func (p *Running1DStats) StandardDeviation() float64 {
	return math.Sqrt(p.Variance())
}
