package track

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/util"
)

// Element structs for the GPX track interchange format: a gpx document
// holds tracks, tracks hold segments, segments hold points with lat and
// lon attributes and a UTC timestamp child element.
type trkptElement struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Time string  `xml:"time"`
}
type trksegElement struct {
	Points []*trkptElement `xml:"trkpt"`
}
type trkElement struct {
	Name     string           `xml:"name"`
	Segments []*trksegElement `xml:"trkseg"`
}
type gpxElement struct {
	XMLName xml.Name      `xml:"gpx"`
	Creator string        `xml:"creator,attr"`
	Tracks  []*trkElement `xml:"trk"`
}

func parseGpx(body []byte) (*gpxElement, error) {
	doc := &gpxElement{}
	if err := xml.Unmarshal(body, doc); err != nil {
		return nil, err
	}
	if len(doc.Tracks) == 0 {
		return nil, fmt.Errorf("gpx document contains no tracks")
	}
	return doc, nil
}

func readGpxFile(filePath string) (*gpxElement, error) {
	rc, err := util.OpenReadFile(filePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	doc, err := parseGpx(body)
	if err != nil {
		return nil, fmt.Errorf("malformed gpx file %s: %w", filePath, err)
	}
	numPoints := 0
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			numPoints += len(seg.Points)
		}
	}
	glog.V(1).Infof("Read %d tracks (%d points) from %s",
		len(doc.Tracks), numPoints, filePath)
	return doc, nil
}
