package netlog

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// Round-trip statistics of one ping measurement.
type PingStats struct {
	MinMs         float64
	AvgMs         float64
	MaxMs         float64
	PacketLossPct float64
}

var (
	// Linux prints "rtt min/avg/max/mdev = ...", BSD and macOS print
	// "round-trip min/avg/max/stddev = ...".
	rttStatsRe = regexp.MustCompile(
		`(?:rtt|round-trip) min/avg/max/(?:mdev|stddev) = ` +
			`([\d.]+)/([\d.]+)/([\d.]+)/[\d.]+ ms`)
	packetLossRe = regexp.MustCompile(`([\d.]+)% packet loss`)
)

func parsePingOutput(output string) (*PingStats, error) {
	stats := &PingStats{}
	loss := packetLossRe.FindStringSubmatch(output)
	if loss == nil {
		return nil, fmt.Errorf("no packet loss line in ping output")
	}
	stats.PacketLossPct, _ = strconv.ParseFloat(loss[1], 64)

	m := rttStatsRe.FindStringSubmatch(output)
	if m == nil {
		if stats.PacketLossPct >= 100 {
			// All probes lost; no rtt line is expected.
			return nil, fmt.Errorf("all probes lost")
		}
		return nil, fmt.Errorf("no rtt statistics line in ping output")
	}
	stats.MinMs, _ = strconv.ParseFloat(m[1], 64)
	stats.AvgMs, _ = strconv.ParseFloat(m[2], 64)
	stats.MaxMs, _ = strconv.ParseFloat(m[3], 64)
	return stats, nil
}

// Pings host count times and parses the summary statistics. The
// command is bounded by ctx; a measurement that outlives its tick is
// abandoned, not waited for.
func MeasurePing(ctx context.Context, host string, count int) (
	*PingStats, error) {
	cmd := exec.CommandContext(
		ctx, "ping", "-c", strconv.Itoa(count), host)
	// ping exits non-zero on total loss but still prints the loss
	// line, which is a valid observation; keep the output either way.
	output, _ := cmd.Output()
	if len(output) == 0 {
		return nil, fmt.Errorf("ping produced no output")
	}
	return parsePingOutput(string(output))
}
