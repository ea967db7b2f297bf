package fusion

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/geo"
	"github.com/jamessynge/wifi_survey/geom"
	"github.com/jamessynge/wifi_survey/pinglog"
	"github.com/jamessynge/wifi_survey/track"
)

// All knobs for one batch run. Track and ping files are paired
// positionally: TrackFiles[i] and PingFiles[i] come from the same
// recording session. There is no package level pipeline state; build a
// Config, call Run.
type Config struct {
	TrackFiles []string
	PingFiles  []string

	// Applied to the GPX track's UTC timestamps to make them naive
	// local, comparable with the ping log.
	UTCOffsetHours int

	// Gap synthesis: gaps beyond the threshold are filled at the
	// nominal sampling cadence.
	GapThreshold   time.Duration
	SampleInterval time.Duration

	// Matches with a larger time offset (seconds) are dropped.
	MatchTolerance float64

	// Square viewport scale factor around the projected data extent.
	PaddingFactor float64
}

func DefaultConfig() Config {
	return Config{
		UTCOffsetHours: -7,
		GapThreshold:   7 * time.Second,
		SampleInterval: 5 * time.Second,
		MatchTolerance: 10,
		PaddingFactor:  1.2,
	}
}

// A filtered match reprojected onto the Web Mercator plane, the unit of
// input to interpolation and rendering.
type ProjectedPoint struct {
	geom.Point
	Time            time.Time
	MinMs           float64
	AvgMs           float64
	MaxMs           float64
	PacketLossPct   float64
	TimeDiffSeconds float64
	Synthetic       bool
}

// The fused dataset of one batch run.
type Result struct {
	Positions []track.PositionSample
	Pings     []pinglog.Sample
	Matched   []MatchedSample
	Points    []ProjectedPoint
	Extent    geo.Extent
	Viewport  geom.Rect
}

// Runs loaders, gap synthesis, matching, the tolerance filter and
// projection as one batch. Any missing or malformed input file aborts
// the run; no partial fused output is produced.
func Run(cfg Config) (*Result, error) {
	if len(cfg.TrackFiles) == 0 || len(cfg.TrackFiles) != len(cfg.PingFiles) {
		return nil, fmt.Errorf(
			"track and ping files must be non-empty and paired, got %d and %d",
			len(cfg.TrackFiles), len(cfg.PingFiles))
	}

	positions, err := track.LoadAndMergePositions(
		cfg.TrackFiles, cfg.UTCOffsetHours)
	if err != nil {
		return nil, err
	}
	glog.Infof("Loaded %d position samples covering %.1f km of track",
		len(positions), track.TrackLengthMeters(positions)/1000)

	// Gap synthesis runs once per raw per-session sequence, before the
	// sessions are concatenated; it is not re-entrant (see FillGaps).
	var pings []pinglog.Sample
	for _, filePath := range cfg.PingFiles {
		raw, err := pinglog.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		pinglog.SortByTime(raw)
		pings = append(pings, pinglog.FillGaps(
			raw, cfg.GapThreshold, cfg.SampleInterval)...)
	}
	pinglog.SortByTime(pings)
	glog.Infof("Loaded %d ping samples (incl. synthetic) from %d files",
		len(pings), len(cfg.PingFiles))

	matched, err := MatchNearest(positions, pings)
	if err != nil {
		return nil, err
	}
	kept := FilterByTimeDiff(matched, cfg.MatchTolerance)
	if len(kept) == 0 {
		return nil, fmt.Errorf(
			"no matches within %.0fs tolerance; track and ping log don't overlap",
			cfg.MatchTolerance)
	}

	points, extent, err := Project(kept, cfg.PaddingFactor)
	if err != nil {
		return nil, err
	}
	glog.Infof("Fused dataset: %d points over a %.0f m extent",
		len(points), extent.Span)

	return &Result{
		Positions: positions,
		Pings:     pings,
		Matched:   kept,
		Points:    points,
		Extent:    extent,
		Viewport:  extent.SquareViewport(cfg.PaddingFactor),
	}, nil
}

// Reprojects matched samples onto the Web Mercator plane and measures
// their extent.
func Project(matched []MatchedSample, paddingFactor float64) (
	[]ProjectedPoint, geo.Extent, error) {
	transform := geo.MakeMercatorTransform()
	locations := make([]geo.Location, len(matched))
	for i, m := range matched {
		locations[i] = m.Location
	}
	planar, err := geo.ProjectLocations(locations, transform)
	if err != nil {
		return nil, geo.Extent{}, err
	}
	points := make([]ProjectedPoint, len(matched))
	for i, m := range matched {
		points[i] = ProjectedPoint{
			Point:           planar[i],
			Time:            m.Time,
			MinMs:           m.MinMs,
			AvgMs:           m.AvgMs,
			MaxMs:           m.MaxMs,
			PacketLossPct:   m.PacketLossPct,
			TimeDiffSeconds: m.TimeDiffSeconds,
			Synthetic:       m.Synthetic,
		}
	}
	extent, err := geo.MeasureExtent(planar)
	if err != nil {
		return nil, geo.Extent{}, err
	}
	return points, extent, nil
}
