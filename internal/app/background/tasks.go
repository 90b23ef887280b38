package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/radyab-gps/tracking-service/internal/infrastructure/metrics"
	"github.com/radyab-gps/tracking-service/internal/usecase"
)

type BackgroundTasks struct {
	DeviceUsecase usecase.DeviceUsecase
	Metrics       *metrics.TrackingMetrics
	SweepInterval time.Duration
}

func NewBackgroundTasks(deviceUC usecase.DeviceUsecase, trackingMetrics *metrics.TrackingMetrics, sweepInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		DeviceUsecase: deviceUC,
		Metrics:       trackingMetrics,
		SweepInterval: sweepInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startConnectivitySweep(ctx)
}

func (bt *BackgroundTasks) startConnectivitySweep(ctx context.Context) {
	// Initial sweep at process start, then on the configured interval.
	bt.runSweep()

	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.runSweep()
		}
	}
}

// runSweep executes one connectivity sweep. Failures end up in the log and
// the sweep metrics, never in any request path.
func (bt *BackgroundTasks) runSweep() {
	started := time.Now()
	report, err := bt.DeviceUsecase.CheckDevicesConnection()
	if err != nil {
		bt.Metrics.RecordSweepFailure()
		slog.Error("connectivity sweep failed", "error", err)
		return
	}

	bt.Metrics.RecordSweep(report.FlippedOnline, report.FlippedOffline, report.PerDeviceErrors, time.Since(started).Seconds())
	if report.FlippedOnline > 0 || report.FlippedOffline > 0 || report.PerDeviceErrors > 0 {
		slog.Info("connectivity sweep finished",
			"checked", report.Checked,
			"flipped_online", report.FlippedOnline,
			"flipped_offline", report.FlippedOffline,
			"errors", report.PerDeviceErrors)
	}
}
