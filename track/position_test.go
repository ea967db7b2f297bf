package track

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamessynge/wifi_survey/geo"
)

const gpxHeader = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="GPSLogger" xmlns="http://www.topografix.com/GPX/1/1">`

const gpxBodyOne = gpxHeader + `
<trk><name>walk</name><trkseg>
<trkpt lat="37.7749" lon="-122.4194"><time>2024-11-03T21:00:00Z</time></trkpt>
<trkpt lat="37.7750" lon="-122.4195"><time>2024-11-03T21:00:10Z</time></trkpt>
</trkseg></trk>
</gpx>`

const gpxBodyTwo = gpxHeader + `
<trk><trkseg>
<trkpt lat="37.7751" lon="-122.4196"><time>2024-11-03T21:00:05Z</time></trkpt>
</trkseg></trk>
</gpx>`

func writeTempGpx(t *testing.T, name, body string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filePath, []byte(body), 0644))
	return filePath
}

func TestParseGpx(t *testing.T) {
	doc, err := parseGpx([]byte(gpxBodyOne))
	require.NoError(t, err)
	require.Len(t, doc.Tracks, 1)
	require.Len(t, doc.Tracks[0].Segments, 1)
	pts := doc.Tracks[0].Segments[0].Points
	require.Len(t, pts, 2)
	assert.Equal(t, 37.7749, pts[0].Lat)
	assert.Equal(t, -122.4194, pts[0].Lon)
	assert.Equal(t, "2024-11-03T21:00:00Z", pts[0].Time)
	assert.Equal(t, "GPSLogger", doc.Creator)
}

func TestParseGpxNoTracks(t *testing.T) {
	_, err := parseGpx([]byte(gpxHeader + `</gpx>`))
	assert.Error(t, err)
}

func TestLoadPositionsShiftsToNaiveLocalTime(t *testing.T) {
	filePath := writeTempGpx(t, "walk.gpx", gpxBodyOne)
	samples, err := LoadPositions(filePath, -7)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	// 21:00 UTC minus 7 hours is 14:00, re-tagged as naive.
	want := time.Date(2024, 11, 3, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, want, samples[0].Time)
	assert.Equal(t, want.Add(10*time.Second), samples[1].Time)
	assert.Equal(t, geo.Latitude(37.7749), samples[0].Lat)
	assert.Equal(t, geo.Longitude(-122.4194), samples[0].Lon)
}

func TestLoadPositionsBadTimestamp(t *testing.T) {
	body := gpxHeader + `
<trk><trkseg>
<trkpt lat="37.0" lon="-122.0"><time>yesterday</time></trkpt>
</trkseg></trk>
</gpx>`
	filePath := writeTempGpx(t, "bad.gpx", body)
	_, err := LoadPositions(filePath, -7)
	assert.Error(t, err)
}

func TestLoadPositionsBadLatitude(t *testing.T) {
	body := gpxHeader + `
<trk><trkseg>
<trkpt lat="97.0" lon="-122.0"><time>2024-11-03T21:00:00Z</time></trkpt>
</trkseg></trk>
</gpx>`
	filePath := writeTempGpx(t, "bad.gpx", body)
	_, err := LoadPositions(filePath, -7)
	assert.Error(t, err)
}

func TestLoadAndMergePositionsSortsAcrossFiles(t *testing.T) {
	fileOne := writeTempGpx(t, "one.gpx", gpxBodyOne)
	fileTwo := writeTempGpx(t, "two.gpx", gpxBodyTwo)

	forward, err := LoadAndMergePositions([]string{fileOne, fileTwo}, -7)
	require.NoError(t, err)
	reversed, err := LoadAndMergePositions([]string{fileTwo, fileOne}, -7)
	require.NoError(t, err)

	require.Len(t, forward, 3)
	for i := 1; i < len(forward); i++ {
		assert.True(t, forward[i-1].Time.Before(forward[i].Time))
	}
	assert.Equal(t, forward, reversed)
}

func TestTrackLengthMeters(t *testing.T) {
	samples := []PositionSample{
		{Location: geo.Location{Lat: 37.0, Lon: -122.0}},
		{Location: geo.Location{Lat: 37.0, Lon: -122.0}},
	}
	assert.Equal(t, 0.0, TrackLengthMeters(samples))

	samples[1].Lat = 37.01
	// Roughly 0.01 degrees of latitude, a bit over a kilometer.
	length := TrackLengthMeters(samples)
	assert.InDelta(t, 1110, length, 10)
}
