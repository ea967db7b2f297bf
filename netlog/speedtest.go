package netlog

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// One bandwidth measurement from the speedtest CLI.
type SpeedResult struct {
	DownloadMbps float64
	UploadMbps   float64
	PingMs       float64
}

// Output of `speedtest-cli --simple`:
//   Ping: 23.4 ms
//   Download: 87.65 Mbit/s
//   Upload: 12.34 Mbit/s
var (
	speedPingRe     = regexp.MustCompile(`Ping:\s+([\d.]+)\s+ms`)
	speedDownloadRe = regexp.MustCompile(`Download:\s+([\d.]+)\s+Mbit/s`)
	speedUploadRe   = regexp.MustCompile(`Upload:\s+([\d.]+)\s+Mbit/s`)
)

func parseSpeedTestOutput(output string) (*SpeedResult, error) {
	ping := speedPingRe.FindStringSubmatch(output)
	down := speedDownloadRe.FindStringSubmatch(output)
	up := speedUploadRe.FindStringSubmatch(output)
	if ping == nil || down == nil || up == nil {
		return nil, fmt.Errorf("unrecognized speedtest output")
	}
	r := &SpeedResult{}
	r.PingMs, _ = strconv.ParseFloat(ping[1], 64)
	r.DownloadMbps, _ = strconv.ParseFloat(down[1], 64)
	r.UploadMbps, _ = strconv.ParseFloat(up[1], 64)
	return r, nil
}

// Runs the speedtest CLI and parses its simple-format output. Slow by
// nature (tens of seconds); bounded by ctx.
func MeasureSpeed(ctx context.Context, command string) (*SpeedResult, error) {
	cmd := exec.CommandContext(ctx, command, "--simple")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", command, err)
	}
	return parseSpeedTestOutput(string(output))
}
