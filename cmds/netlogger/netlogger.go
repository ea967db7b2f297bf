package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jamessynge/wifi_survey/netlog"
)

var (
	pingLogFlag = flag.String(
		"ping-log", "ping_log.csv",
		"Path of the ping log csv to append to")
	speedLogFlag = flag.String(
		"speed-log", "speed_log.csv",
		"Path of the speed test log csv to append to")
	pingHostFlag = flag.String(
		"ping-host", "8.8.8.8",
		"Host to ping")
	pingCountFlag = flag.Int(
		"ping-count", 3,
		"Probes per ping measurement")
	pingIntervalFlag = flag.Duration(
		"ping-interval", 5*time.Second,
		"Interval between ping measurements")
	speedIntervalFlag = flag.Duration(
		"speed-interval", 2*time.Minute,
		"Interval between speed tests")
	speedCommandFlag = flag.String(
		"speed-command", "speedtest-cli",
		"Speed test command to run (must support --simple)")
	wifiLogFlag = flag.String(
		"wifi-log", "",
		"Path of the wifi signal log csv to append to; empty disables")
	wifiIntervalFlag = flag.Duration(
		"wifi-interval", 5*time.Second,
		"Interval between wifi signal measurements")
	wifiCommandFlag = flag.String(
		"wifi-command", "wdutil",
		"Wifi info command reporting the connected network's RSSI")
)

func main() {
	flag.Parse()

	cfg := netlog.DefaultConfig()
	cfg.PingLogPath = *pingLogFlag
	cfg.SpeedLogPath = *speedLogFlag
	cfg.PingHost = *pingHostFlag
	cfg.PingCount = *pingCountFlag
	cfg.PingInterval = *pingIntervalFlag
	cfg.SpeedInterval = *speedIntervalFlag
	cfg.SpeedCommand = *speedCommandFlag
	cfg.WifiLogPath = *wifiLogFlag
	cfg.WifiInterval = *wifiIntervalFlag
	cfg.WifiCommand = *wifiCommandFlag

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Print("Starting network performance logging; interrupt to stop.")
	if err := netlog.Run(ctx, cfg); err != nil {
		log.Fatalf("Logger failed: %v", err)
	}
}
