package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TrackingMetrics covers telemetry ingestion, broadcast fan-out, the
// connectivity sweep and wallet operations.
type TrackingMetrics struct {
	SamplesIngestedTotal prometheus.CounterVec
	SamplesRejectedTotal prometheus.CounterVec
	IngestDuration       prometheus.HistogramVec

	BroadcastDeliveredTotal prometheus.CounterVec
	BroadcastDroppedTotal   prometheus.CounterVec
	StreamSubscribersGauge  prometheus.GaugeVec

	SweepRunsTotal           prometheus.Counter
	SweepFailuresTotal       prometheus.Counter
	SweepDeviceErrorsTotal   prometheus.Counter
	SweepDevicesFlippedTotal prometheus.CounterVec
	SweepDuration            prometheus.Histogram

	WalletOperationsTotal prometheus.CounterVec
	WalletErrorsTotal     prometheus.CounterVec
}

func NewTrackingMetrics() *TrackingMetrics {
	return &TrackingMetrics{
		SamplesIngestedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gps_samples_ingested_total",
				Help: "Accepted GPS samples",
			},
			[]string{"device_id"},
		),

		SamplesRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gps_samples_rejected_total",
				Help: "Rejected GPS samples by reason",
			},
			[]string{"reason"},
		),

		IngestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gps_ingest_duration_seconds",
				Help:    "Telemetry ingestion latency",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"derived"},
		),

		BroadcastDeliveredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_events_delivered_total",
				Help: "Stream events delivered to subscribers",
			},
			[]string{"device_id"},
		),

		BroadcastDroppedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_events_dropped_total",
				Help: "Stream events dropped on slow subscribers",
			},
			[]string{"device_id"},
		),

		StreamSubscribersGauge: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stream_subscribers",
				Help: "Currently connected stream subscribers",
			},
			[]string{"device_id"},
		),

		SweepRunsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "connectivity_sweep_runs_total",
				Help: "Completed connectivity sweeps",
			},
		),

		SweepFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "connectivity_sweep_failures_total",
				Help: "Sweeps that could not read the device projection",
			},
		),

		SweepDeviceErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "connectivity_sweep_device_errors_total",
				Help: "Per-device write failures during sweeps",
			},
		),

		SweepDevicesFlippedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connectivity_sweep_devices_flipped_total",
				Help: "Devices whose connected flag changed during sweeps",
			},
			[]string{"to"},
		),

		SweepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "connectivity_sweep_duration_seconds",
				Help:    "Full sweep duration",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),

		WalletOperationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_operations_total",
				Help: "Wallet operations by type",
			},
			[]string{"operation"},
		),

		WalletErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_errors_total",
				Help: "Failed wallet operations by type and error",
			},
			[]string{"operation", "error_type"},
		),
	}
}

func (m *TrackingMetrics) RecordSampleIngested(deviceID string, derived bool, durationSeconds float64) {
	m.SamplesIngestedTotal.WithLabelValues(deviceID).Inc()
	derivedStr := "false"
	if derived {
		derivedStr = "true"
	}
	m.IngestDuration.WithLabelValues(derivedStr).Observe(durationSeconds)
}

func (m *TrackingMetrics) RecordSampleRejected(reason string) {
	m.SamplesRejectedTotal.WithLabelValues(reason).Inc()
}

func (m *TrackingMetrics) RecordBroadcast(deviceID string, delivered, dropped int) {
	if delivered > 0 {
		m.BroadcastDeliveredTotal.WithLabelValues(deviceID).Add(float64(delivered))
	}
	if dropped > 0 {
		m.BroadcastDroppedTotal.WithLabelValues(deviceID).Add(float64(dropped))
	}
}

func (m *TrackingMetrics) RecordSweep(flippedOnline, flippedOffline, deviceErrors int, durationSeconds float64) {
	m.SweepRunsTotal.Inc()
	m.SweepDevicesFlippedTotal.WithLabelValues("connected").Add(float64(flippedOnline))
	m.SweepDevicesFlippedTotal.WithLabelValues("disconnected").Add(float64(flippedOffline))
	m.SweepDeviceErrorsTotal.Add(float64(deviceErrors))
	m.SweepDuration.Observe(durationSeconds)
}

func (m *TrackingMetrics) RecordSweepFailure() {
	m.SweepFailuresTotal.Inc()
}

func (m *TrackingMetrics) RecordWalletOperation(operation string) {
	m.WalletOperationsTotal.WithLabelValues(operation).Inc()
}

func (m *TrackingMetrics) RecordWalletError(operation, errorType string) {
	m.WalletErrorsTotal.WithLabelValues(operation, errorType).Inc()
}
