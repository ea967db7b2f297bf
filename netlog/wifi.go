package netlog

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// Signal strength of the connected wifi network. StrengthPct is the
// RSSI rescaled onto 0..100, treating -100 dBm as unusable and -50 dBm
// or better as full strength.
type WifiSignal struct {
	RssiDbm     float64
	StrengthPct float64
}

// `wdutil info` reports the connected network's RSSI as e.g.
//   RSSI                 : -58 dBm
var rssiRe = regexp.MustCompile(`RSSI\s+:\s+([-+]?\d+)\s+dBm`)

func strengthFromRssi(rssiDbm float64) float64 {
	strength := (rssiDbm + 100) * 2
	if strength < 0 {
		return 0
	}
	if strength > 100 {
		return 100
	}
	return strength
}

func parseWifiInfo(output string) (*WifiSignal, error) {
	m := rssiRe.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no RSSI line in wifi info output")
	}
	rssiDbm, _ := strconv.ParseFloat(m[1], 64)
	return &WifiSignal{
		RssiDbm:     rssiDbm,
		StrengthPct: strengthFromRssi(rssiDbm),
	}, nil
}

// Reads the connected network's signal strength via the wifi info
// command. Fails when no network is connected (no RSSI line) or the
// command is unavailable on this platform; callers treat that as a
// skipped measurement, not a fatal condition.
func MeasureWifi(ctx context.Context, command string) (*WifiSignal, error) {
	cmd := exec.CommandContext(ctx, command, "info")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", command, err)
	}
	return parseWifiInfo(string(output))
}
