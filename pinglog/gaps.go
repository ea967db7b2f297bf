package pinglog

import (
	"time"

	"github.com/golang/glog"
)

// Sentinel values carried by synthetic samples: the logger's ping
// timeout and total loss, representing an unmeasured outage interval.
const (
	SyntheticRttMs         = 4000.0
	SyntheticPacketLossPct = 100.0
)

// Fills measurement gaps with explicit loss samples so that spatial
// aggregation doesn't silently skip outage periods. For each adjacent
// pair of samples further apart than threshold, synthesizes samples at
// the nominal cadence: floor(delta/interval)-1 of them, at
// t[i] + j*interval. The input must be time sorted; the result is
// re-sorted after insertion.
//
// Not re-entrant: running it again over a sequence that already holds
// synthetic samples can under- or over-fill later gaps, so the pipeline
// invokes it exactly once per raw per-session sequence.
func FillGaps(samples []Sample, threshold, interval time.Duration) []Sample {
	var synthetic []Sample
	for i := 0; i+1 < len(samples); i++ {
		delta := samples[i+1].Time.Sub(samples[i].Time)
		if delta <= threshold {
			continue
		}
		missing := int(delta/interval) - 1
		for j := 1; j <= missing; j++ {
			synthetic = append(synthetic, Sample{
				Time:          samples[i].Time.Add(time.Duration(j) * interval),
				MinMs:         SyntheticRttMs,
				AvgMs:         SyntheticRttMs,
				MaxMs:         SyntheticRttMs,
				PacketLossPct: SyntheticPacketLossPct,
				Synthetic:     true,
			})
		}
	}
	if len(synthetic) == 0 {
		return samples
	}
	glog.V(1).Infof("Synthesized %d loss samples for %d measurement gaps",
		len(synthetic), countGaps(samples, threshold))
	filled := make([]Sample, 0, len(samples)+len(synthetic))
	filled = append(filled, samples...)
	filled = append(filled, synthetic...)
	SortByTime(filled)
	return filled
}

func countGaps(samples []Sample, threshold time.Duration) (n int) {
	for i := 0; i+1 < len(samples); i++ {
		if samples[i+1].Time.Sub(samples[i].Time) > threshold {
			n++
		}
	}
	return
}
