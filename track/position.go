package track

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/geo"
	"github.com/jamessynge/wifi_survey/util"
)

// One recorded track point, with the timestamp already shifted to naive
// local time (zone annotation dropped) so it compares directly against
// the ping log's naive local timestamps. Immutable once loaded.
type PositionSample struct {
	Time time.Time
	geo.Location
}

// Loads the track points of one GPX file, shifting each UTC timestamp
// by utcOffsetHours (e.g. -7) and dropping the zone. Any missing file,
// malformed document or out-of-range coordinate fails the whole load.
func LoadPositions(filePath string, utcOffsetHours int) (
	[]PositionSample, error) {
	doc, err := readGpxFile(filePath)
	if err != nil {
		return nil, err
	}
	offset := time.Duration(utcOffsetHours) * time.Hour
	var samples []PositionSample
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				t, err := time.Parse(time.RFC3339, pt.Time)
				if err != nil {
					return nil, fmt.Errorf(
						"invalid timestamp %q in %s: %w", pt.Time, filePath, err)
				}
				loc, err := geo.LocationFromFloat64s(pt.Lat, pt.Lon)
				if err != nil {
					return nil, fmt.Errorf("invalid track point in %s: %w",
						filePath, err)
				}
				// Shift to local, then re-tag as naive (UTC is the
				// resident zone for all naive times in this pipeline).
				naive := t.UTC().Add(offset)
				naive = time.Date(naive.Year(), naive.Month(), naive.Day(),
					naive.Hour(), naive.Minute(), naive.Second(),
					naive.Nanosecond(), time.UTC)
				samples = append(samples, PositionSample{
					Time:     naive,
					Location: loc,
				})
			}
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no track points in %s", filePath)
	}
	return samples, nil
}

// Loads and concatenates several session files, then re-sorts the full
// sequence ascending by timestamp (sessions may overlap or arrive in
// any order).
func LoadAndMergePositions(filePaths []string, utcOffsetHours int) (
	[]PositionSample, error) {
	var merged []PositionSample
	for _, filePath := range filePaths {
		samples, err := LoadPositions(filePath, utcOffsetHours)
		if err != nil {
			return nil, err
		}
		merged = append(merged, samples...)
	}
	SortByTime(merged)
	glog.V(1).Infof("Merged %d position samples from %d files",
		len(merged), len(filePaths))
	return merged, nil
}

func SortByTime(samples []PositionSample) {
	less := func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	}
	swap := func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	}
	util.Sort3(len(samples), less, swap)
}

// Total along-track distance, for logging a loaded session's scale.
func TrackLengthMeters(samples []PositionSample) (meters float64) {
	for i := 1; i < len(samples); i++ {
		meters += geo.Distance(samples[i-1].Location, samples[i].Location)
	}
	return
}
