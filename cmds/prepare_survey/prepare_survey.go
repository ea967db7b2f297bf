package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jamessynge/wifi_survey/fusion"
	"github.com/jamessynge/wifi_survey/geom"
	"github.com/jamessynge/wifi_survey/krige"
	"github.com/jamessynge/wifi_survey/pinglog"
	"github.com/jamessynge/wifi_survey/render"
	"github.com/jamessynge/wifi_survey/util"
)

var (
	tracksFlag = flag.String(
		"tracks", "",
		"Comma-separated gpx track files, paired positionally with --pings")
	pingsFlag = flag.String(
		"pings", "",
		"Comma-separated ping log csv files, paired positionally with --tracks")
	utcOffsetFlag = flag.Int(
		"utc-offset", -7,
		"Hours added to the track's UTC timestamps to get naive local time")
	gapThresholdFlag = flag.Float64(
		"gap-threshold", 7,
		"Ping gaps longer than this many seconds are filled with loss samples")
	sampleIntervalFlag = flag.Float64(
		"sample-interval", 5,
		"Nominal ping sampling interval in seconds")
	toleranceFlag = flag.Float64(
		"tolerance", 10,
		"Matches with a larger time offset (seconds) are dropped")
	gridSizeFlag = flag.Int(
		"grid-size", 100,
		"Interpolation grid resolution (cells per axis)")
	paddingFlag = flag.Float64(
		"padding", 1.2,
		"Viewport scale factor around the projected data extent")
	modelFlag = flag.String(
		"model", string(krige.Spherical),
		"Variogram model: spherical, exponential or gaussian")
	outCsvFlag = flag.String(
		"out-csv", "",
		"Path of fused dataset csv to write (.gz to compress); optional")
	fieldImageFlag = flag.String(
		"field-image", "",
		"Path of interpolated latency png to write; optional")
	sigmaImageFlag = flag.String(
		"sigma-image", "",
		"Path of kriging uncertainty png to write; optional")
	pointsImageFlag = flag.String(
		"points-image", "",
		"Path of matched-samples scatter png to write; optional")
	imageSizeFlag = flag.Int(
		"image-size", 1200,
		"Output image side length in pixels")
)

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func writeFusedCsv(filePath string, points []fusion.ProjectedPoint) error {
	cwc, _, err := util.OpenCsvWriteCloser(filePath, true, 0644)
	if err != nil {
		return err
	}
	defer cwc.Close()
	header := []string{
		"timestamp", "x", "y", "min_ms", "avg_ms", "max_ms",
		"packet_loss", "time_diff_seconds", "synthetic"}
	if err := cwc.Write(header); err != nil {
		return err
	}
	for _, p := range points {
		record := []string{
			p.Time.Format(pinglog.TimeLayout),
			fmt.Sprintf("%.2f", p.X),
			fmt.Sprintf("%.2f", p.Y),
			fmt.Sprintf("%.2f", p.MinMs),
			fmt.Sprintf("%.2f", p.AvgMs),
			fmt.Sprintf("%.2f", p.MaxMs),
			fmt.Sprintf("%.2f", p.PacketLossPct),
			fmt.Sprintf("%.2f", p.TimeDiffSeconds),
			fmt.Sprintf("%t", p.Synthetic),
		}
		if err := cwc.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()
	ok := true

	trackFiles := splitPaths(*tracksFlag)
	pingFiles := splitPaths(*pingsFlag)
	if len(trackFiles) == 0 {
		ok = false
		log.Print("--tracks not set")
	}
	if len(pingFiles) == 0 {
		ok = false
		log.Print("--pings not set")
	}
	if len(trackFiles) != len(pingFiles) {
		ok = false
		log.Printf("--tracks and --pings must pair up (%d vs %d)",
			len(trackFiles), len(pingFiles))
	}
	for _, filePath := range append(trackFiles, pingFiles...) {
		if filePath != "" && !util.IsFile(filePath) {
			ok = false
			log.Printf("Not a file: %v", filePath)
		}
	}
	model, err := krige.ParseModel(*modelFlag)
	if err != nil {
		ok = false
		log.Print(err)
	}
	if *gridSizeFlag < 2 {
		ok = false
		log.Printf("--grid-size %d is too small", *gridSizeFlag)
	}
	if !ok {
		flag.PrintDefaults()
		return
	}

	cfg := fusion.DefaultConfig()
	cfg.TrackFiles = trackFiles
	cfg.PingFiles = pingFiles
	cfg.UTCOffsetHours = *utcOffsetFlag
	cfg.GapThreshold = time.Duration(*gapThresholdFlag * float64(time.Second))
	cfg.SampleInterval = time.Duration(
		*sampleIntervalFlag * float64(time.Second))
	cfg.MatchTolerance = *toleranceFlag
	cfg.PaddingFactor = *paddingFlag

	result, err := fusion.Run(cfg)
	if err != nil {
		log.Fatalf("Fusion failed: %v", err)
	}

	if *outCsvFlag != "" {
		if err := writeFusedCsv(*outCsvFlag, result.Points); err != nil {
			log.Fatalf("Unable to write %s: %v", *outCsvFlag, err)
		}
		log.Printf("Wrote %d fused samples to %s",
			len(result.Points), *outCsvFlag)
	}
	if *pointsImageFlag != "" {
		img := render.PointsImage(
			result.Viewport, result.Points, *imageSizeFlag)
		if err := render.SaveImageToPng(img, *pointsImageFlag); err != nil {
			log.Fatalf("Unable to write %s: %v", *pointsImageFlag, err)
		}
	}

	if *fieldImageFlag == "" && *sigmaImageFlag == "" {
		return
	}

	samples := make([]krige.Sample, len(result.Points))
	for i, p := range result.Points {
		samples[i] = krige.Sample{X: p.X, Y: p.Y, Value: p.AvgMs}
	}
	variogram, err := krige.FitVariogram(samples, model)
	if err != nil {
		log.Fatalf("Variogram fit failed: %v", err)
	}
	grid := geom.NewGrid(result.Viewport, *gridSizeFlag, *gridSizeFlag)
	field, err := krige.Krige(samples, grid, variogram)
	if err != nil {
		log.Fatalf("Interpolation failed: %v", err)
	}

	if *fieldImageFlag != "" {
		img := render.FieldImage(
			field, grid, result.Viewport, result.Points, *imageSizeFlag)
		if err := render.SaveImageToPng(img, *fieldImageFlag); err != nil {
			log.Fatalf("Unable to write %s: %v", *fieldImageFlag, err)
		}
	}
	if *sigmaImageFlag != "" {
		img := render.SigmaImage(field, grid, result.Viewport, *imageSizeFlag)
		if err := render.SaveImageToPng(img, *sigmaImageFlag); err != nil {
			log.Fatalf("Unable to write %s: %v", *sigmaImageFlag, err)
		}
	}
}
