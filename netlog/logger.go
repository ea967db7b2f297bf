package netlog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/jamessynge/wifi_survey/pinglog"
	"github.com/jamessynge/wifi_survey/util"
)

// Configuration for the measurement daemon: independent polling loops,
// each owning its own append-only csv file. An empty WifiLogPath
// disables the wifi signal loop (the wifi info command is not available
// on every platform).
type Config struct {
	PingLogPath   string
	SpeedLogPath  string
	WifiLogPath   string
	PingHost      string
	PingCount     int
	PingInterval  time.Duration
	SpeedInterval time.Duration
	WifiInterval  time.Duration
	SpeedCommand  string
	WifiCommand   string
}

func DefaultConfig() Config {
	return Config{
		PingLogPath:   "ping_log.csv",
		SpeedLogPath:  "speed_log.csv",
		PingHost:      "8.8.8.8",
		PingCount:     3,
		PingInterval:  5 * time.Second,
		SpeedInterval: 2 * time.Minute,
		WifiInterval:  5 * time.Second,
		SpeedCommand:  "speedtest-cli",
		WifiCommand:   "wdutil",
	}
}

type csvAppender struct {
	cwc *util.CsvWriteCloser
}

func openCsvAppender(filePath string, header []string) (*csvAppender, error) {
	cwc, isNew, err := util.OpenCsvWriteCloser(filePath, false, 0644)
	if err != nil {
		return nil, err
	}
	if isNew {
		if err := cwc.Write(header); err != nil {
			cwc.Close()
			return nil, err
		}
	}
	return &csvAppender{cwc: cwc}, nil
}

func (a *csvAppender) append(record []string) error {
	if err := a.cwc.Write(record); err != nil {
		return err
	}
	// Flush per record; the daemon may be killed at any tick and the
	// log must stay resumable.
	return a.cwc.Flush()
}

func (a *csvAppender) close() error {
	return a.cwc.Close()
}

// Runs both polling loops until ctx is cancelled. Each tick is a
// self-contained fallible operation: a failed measurement is logged
// and the loop continues at the next scheduled tick. In-flight
// measurements are abandoned on cancellation; the logs are resumable,
// not transactional.
func Run(ctx context.Context, cfg Config) error {
	pingLog, err := openCsvAppender(cfg.PingLogPath,
		[]string{"timestamp", "min_ms", "avg_ms", "max_ms", "packet_loss"})
	if err != nil {
		return err
	}
	defer pingLog.close()
	speedLog, err := openCsvAppender(cfg.SpeedLogPath,
		[]string{"timestamp", "download_mbps", "upload_mbps", "ping_ms"})
	if err != nil {
		return err
	}
	defer speedLog.close()

	var wifiLog *csvAppender
	if cfg.WifiLogPath != "" {
		wifiLog, err = openCsvAppender(cfg.WifiLogPath,
			[]string{"timestamp", "rssi_dbm", "strength_pct"})
		if err != nil {
			return err
		}
		defer wifiLog.close()
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		pollLoop(ctx, cfg.PingInterval, func() {
			pingTick(ctx, cfg, pingLog)
		})
	}()
	go func() {
		defer wg.Done()
		pollLoop(ctx, cfg.SpeedInterval, func() {
			speedTick(ctx, cfg, speedLog)
		})
	}()
	if wifiLog != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pollLoop(ctx, cfg.WifiInterval, func() {
				wifiTick(ctx, cfg, wifiLog)
			})
		}()
	}
	wg.Wait()
	glog.Info("Measurement loops stopped")
	return nil
}

func pollLoop(ctx context.Context, interval time.Duration, tick func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

func pingTick(ctx context.Context, cfg Config, log *csvAppender) {
	timestamp := time.Now().Format(pinglog.TimeLayout)
	stats, err := MeasurePing(ctx, cfg.PingHost, cfg.PingCount)
	if err != nil {
		glog.Warningf("Ping measurement failed: %v", err)
		return
	}
	record := []string{
		timestamp,
		fmt.Sprintf("%.2f", stats.MinMs),
		fmt.Sprintf("%.2f", stats.AvgMs),
		fmt.Sprintf("%.2f", stats.MaxMs),
		fmt.Sprintf("%.2f", stats.PacketLossPct),
	}
	if err := log.append(record); err != nil {
		glog.Warningf("Unable to append to %s: %v", cfg.PingLogPath, err)
		return
	}
	glog.V(1).Infof("Ping: %.1fms, %.0f%% loss", stats.AvgMs,
		stats.PacketLossPct)
}

func speedTick(ctx context.Context, cfg Config, log *csvAppender) {
	timestamp := time.Now().Format(pinglog.TimeLayout)
	result, err := MeasureSpeed(ctx, cfg.SpeedCommand)
	if err != nil {
		glog.Warningf("Speed test failed: %v", err)
		return
	}
	record := []string{
		timestamp,
		fmt.Sprintf("%.2f", result.DownloadMbps),
		fmt.Sprintf("%.2f", result.UploadMbps),
		fmt.Sprintf("%.2f", result.PingMs),
	}
	if err := log.append(record); err != nil {
		glog.Warningf("Unable to append to %s: %v", cfg.SpeedLogPath, err)
		return
	}
	glog.Infof("Speed test: %.1f down / %.1f up Mbps, ping %.1fms",
		result.DownloadMbps, result.UploadMbps, result.PingMs)
}

func wifiTick(ctx context.Context, cfg Config, log *csvAppender) {
	timestamp := time.Now().Format(pinglog.TimeLayout)
	signal, err := MeasureWifi(ctx, cfg.WifiCommand)
	if err != nil {
		glog.Warningf("Wifi signal measurement failed: %v", err)
		return
	}
	record := []string{
		timestamp,
		fmt.Sprintf("%.0f", signal.RssiDbm),
		fmt.Sprintf("%.0f", signal.StrengthPct),
	}
	if err := log.append(record); err != nil {
		glog.Warningf("Unable to append to %s: %v", cfg.WifiLogPath, err)
		return
	}
	glog.V(1).Infof("Wifi: %.0f dBm (%.0f%%)",
		signal.RssiDbm, signal.StrengthPct)
}
