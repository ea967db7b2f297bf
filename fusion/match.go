package fusion

import (
	"fmt"
	"sort"
	"time"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/geo"
	"github.com/jamessynge/wifi_survey/pinglog"
	"github.com/jamessynge/wifi_survey/track"
)

// A ping sample (observed or synthetic) associated with the position
// sample nearest to it in time. TimeDiffSeconds is the minimal absolute
// timestamp delta over the whole position sequence, never negative.
type MatchedSample struct {
	Time time.Time
	geo.Location
	MinMs           float64
	AvgMs           float64
	MaxMs           float64
	PacketLossPct   float64
	TimeDiffSeconds float64
	Synthetic       bool
}

// Associates each ping sample with the single closest-in-time position
// sample. Both sequences must be sorted ascending by timestamp; the
// positions are binary searched for the insertion point and the two
// neighbors compared, so matching is O(m log n). When two positions are
// equidistant the earlier one wins, which is deterministic regardless
// of input file order.
func MatchNearest(positions []track.PositionSample,
	samples []pinglog.Sample) ([]MatchedSample, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("no position samples to match against")
	}
	matched := make([]MatchedSample, 0, len(samples))
	for _, s := range samples {
		ndx := sort.Search(len(positions), func(i int) bool {
			return !positions[i].Time.Before(s.Time)
		})
		// Candidates are the first position at-or-after s.Time and the
		// one just before it; the earlier wins ties.
		best := ndx
		if ndx == len(positions) {
			best = ndx - 1
		} else if ndx > 0 {
			after := positions[ndx].Time.Sub(s.Time)
			before := s.Time.Sub(positions[ndx-1].Time)
			if before <= after {
				best = ndx - 1
			}
		}
		pos := positions[best]
		diff := s.Time.Sub(pos.Time).Seconds()
		if diff < 0 {
			diff = -diff
		}
		matched = append(matched, MatchedSample{
			Time:            s.Time,
			Location:        pos.Location,
			MinMs:           s.MinMs,
			AvgMs:           s.AvgMs,
			MaxMs:           s.MaxMs,
			PacketLossPct:   s.PacketLossPct,
			TimeDiffSeconds: diff,
			Synthetic:       s.Synthetic,
		})
	}
	return matched, nil
}

// Drops matches whose time offset exceeds the tolerance (inclusive
// boundary: exactly the tolerance is kept). Not an error, a data
// quality filter: a large offset means no trustworthy position was
// recorded near that measurement.
func FilterByTimeDiff(matched []MatchedSample,
	toleranceSeconds float64) []MatchedSample {
	kept := make([]MatchedSample, 0, len(matched))
	for _, m := range matched {
		if m.TimeDiffSeconds <= toleranceSeconds {
			kept = append(kept, m)
		}
	}
	if len(kept) < len(matched) {
		glog.V(1).Infof("Dropped %d of %d matches beyond %.0fs tolerance",
			len(matched)-len(kept), len(matched), toleranceSeconds)
	}
	return kept
}
