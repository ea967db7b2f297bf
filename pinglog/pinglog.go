package pinglog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/util"
)

// Timestamp layout used by the measurement logger (naive local time).
const TimeLayout = "2006-01-02 15:04:05"

// One ping measurement: round-trip statistics over a few probes.
// Synthetic samples are fabricated by FillGaps to stand in for outage
// intervals; they share the shape of observed samples so downstream
// stages treat them uniformly, but stay distinguishable for analysis.
type Sample struct {
	Time          time.Time
	MinMs         float64
	AvgMs         float64
	MaxMs         float64
	PacketLossPct float64
	Synthetic     bool
}

func sampleCSVFieldNames() []string {
	return []string{"timestamp", "min_ms", "avg_ms", "max_ms", "packet_loss"}
}

func parseSampleRecord(record []string) (s Sample, err error) {
	if len(record) != 5 {
		err = fmt.Errorf("expected 5 fields, got %d", len(record))
		return
	}
	s.Time, err = time.Parse(TimeLayout, record[0])
	if err != nil {
		return
	}
	fields := []*float64{&s.MinMs, &s.AvgMs, &s.MaxMs, &s.PacketLossPct}
	for i, dst := range fields {
		*dst, err = strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return
		}
	}
	return
}

// Reads one ping log csv file, in file order (sorting happens later, in
// the fusion stage). A leading header row is recognized and skipped.
// Any malformed record fails the whole file; the batch must not build
// fused output from a corrupt source.
func ReadFile(filePath string) (samples []Sample, err error) {
	numRecords, err := util.ReadCsvFileToFn(filePath,
		func(source string, record []string, recordNum int, err error) error {
			if err != nil {
				return err
			}
			if recordNum == 0 && len(record) > 0 && record[0] == "timestamp" {
				return nil
			}
			s, err := parseSampleRecord(record)
			if err != nil {
				return fmt.Errorf("%s record %d: %w", source, recordNum+1, err)
			}
			samples = append(samples, s)
			return nil
		})
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("Read %d ping samples (%d records) from %s",
		len(samples), numRecords, filePath)
	return samples, nil
}

func SortByTime(samples []Sample) {
	less := func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	}
	swap := func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	}
	util.Sort3(len(samples), less, swap)
}
