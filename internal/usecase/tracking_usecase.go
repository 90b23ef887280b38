package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/geo"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/kafka"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/metrics"
	trackingdto "github.com/radyab-gps/tracking-service/internal/usecase/dto/tracking"
)

type TrackingUsecase interface {
	IngestSample(input *trackingdto.IngestSampleInput) (*trackingdto.IngestSampleOutput, error)
	// AuthorizeStream checks the caller may watch the device: owner or on
	// the visibility list. Checked once, at subscribe time.
	AuthorizeStream(deviceID, userID string) (*domain.Device, error)
	// Snapshot builds the first stream event for a new subscriber from the
	// last stored record, or nil when the device has no history yet.
	Snapshot(deviceID string) (*domain.StreamEvent, error)
}

type DefaultTrackingUsecase struct {
	deviceRepo  domain.DeviceRepository
	gpsRepo     domain.GpsRecordRepository
	userRepo    domain.UserRepository
	accessRepo  domain.DeviceAccessRepository
	broadcaster domain.Broadcaster
	publisher   *kafka.EventPublisher
	metrics     *metrics.TrackingMetrics
}

func NewDefaultTrackingUsecase(
	deviceRepo domain.DeviceRepository,
	gpsRepo domain.GpsRecordRepository,
	userRepo domain.UserRepository,
	accessRepo domain.DeviceAccessRepository,
	broadcaster domain.Broadcaster,
	publisher *kafka.EventPublisher,
	trackingMetrics *metrics.TrackingMetrics,
) *DefaultTrackingUsecase {
	return &DefaultTrackingUsecase{
		deviceRepo:  deviceRepo,
		gpsRepo:     gpsRepo,
		userRepo:    userRepo,
		accessRepo:  accessRepo,
		broadcaster: broadcaster,
		publisher:   publisher,
		metrics:     trackingMetrics,
	}
}

func (uc *DefaultTrackingUsecase) IngestSample(input *trackingdto.IngestSampleInput) (*trackingdto.IngestSampleOutput, error) {
	started := time.Now()

	if input.DeviceID == "" {
		uc.metrics.RecordSampleRejected("missing_device_id")
		return nil, fmt.Errorf("%w: deviceId is required", domain.ErrValidation)
	}
	if input.Latitude == nil || input.Longitude == nil {
		uc.metrics.RecordSampleRejected("missing_coordinates")
		return nil, fmt.Errorf("%w: latitude and longitude are required", domain.ErrValidation)
	}
	if input.Status == nil {
		uc.metrics.RecordSampleRejected("missing_status")
		return nil, fmt.Errorf("%w: status is required", domain.ErrValidation)
	}

	device, err := uc.deviceRepo.GetDeviceByID(input.DeviceID)
	if err != nil {
		uc.metrics.RecordSampleRejected("device_not_found")
		return nil, err
	}

	now := time.Now()
	ts := now
	if input.Timestamp != nil {
		ts = *input.Timestamp
	}

	record := &domain.GpsRecord{
		DeviceID:  device.DeviceID,
		Ts:        ts,
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		Accuracy:  input.Accuracy,
		Altitude:  input.Altitude,
		Speed:     input.Speed,
		Heading:   input.Heading,
		Battery:   input.Battery,
	}

	derived := false
	if record.Speed == nil || record.Heading == nil {
		derived = uc.fillMissingKinematics(record)
	}

	if err := uc.gpsRepo.AppendRecord(record, *input.Status, now); err != nil {
		return nil, fmt.Errorf("persisting sample: %w", err)
	}

	event := domain.StreamEvent{
		DeviceID:  device.DeviceID,
		DevName:   device.DeviceName,
		Status:    *input.Status,
		Connected: true,
		GpsRecord: toStreamRecord(record),
	}
	delivered, dropped := uc.broadcaster.Publish(device.DeviceID, event)
	uc.metrics.RecordBroadcast(device.DeviceID, delivered, dropped)

	// The durable record is already committed; the event stream is
	// best-effort and must not fail the ingestion request.
	if uc.publisher != nil {
		if err := uc.publisher.PublishTelemetry(kafka.TelemetryEvent{
			DeviceID:  record.DeviceID,
			RecordID:  kafka.FormatRecordID(record.ID),
			Ts:        record.Ts.UTC().Format(time.RFC3339Nano),
			Latitude:  record.Latitude,
			Longitude: record.Longitude,
			Speed:     record.Speed,
			Heading:   record.Heading,
			Status:    *input.Status,
		}); err != nil {
			slog.Error("failed to publish telemetry event", "device_id", record.DeviceID, "error", err)
		}
	}

	uc.metrics.RecordSampleIngested(device.DeviceID, derived, time.Since(started).Seconds())

	return &trackingdto.IngestSampleOutput{
		Record:  record,
		Derived: derived,
	}, nil
}

// fillMissingKinematics derives absent speed/heading from the device's two
// most recent stored records. With fewer than two, the fields stay nil:
// insufficient history is not an error. Caller-supplied values are trusted
// as-is and never overwritten.
func (uc *DefaultTrackingUsecase) fillMissingKinematics(record *domain.GpsRecord) bool {
	recent, err := uc.gpsRepo.GetLastNRecords(record.DeviceID, 2)
	if err != nil {
		slog.Error("failed to load record history", "device_id", record.DeviceID, "error", err)
		return false
	}
	if len(recent) < 2 {
		return false
	}

	last, secondLast := recent[0], recent[1]
	derived := false

	if record.Speed == nil {
		distance, err := geo.Distance(secondLast.Latitude, secondLast.Longitude, last.Latitude, last.Longitude)
		if err == nil {
			// Non-positive elapsed time means out-of-order or duplicate
			// timestamps: speed is defined as 0, never a division by zero.
			speed := 0.0
			if hours := last.Ts.Sub(secondLast.Ts).Hours(); hours > 0 {
				speed = distance / hours
			}
			record.Speed = &speed
			derived = true
		}
	}

	if record.Heading == nil {
		heading, err := geo.Bearing(secondLast.Latitude, secondLast.Longitude, last.Latitude, last.Longitude)
		if err == nil {
			record.Heading = &heading
			derived = true
		}
	}

	return derived
}

func (uc *DefaultTrackingUsecase) AuthorizeStream(deviceID, userID string) (*domain.Device, error) {
	device, err := uc.deviceRepo.GetDeviceByID(deviceID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetUserByID(userID); err != nil {
		return nil, err
	}

	if device.UserID == userID {
		return device, nil
	}

	granted, err := uc.accessRepo.HasAccess(deviceID, userID)
	if err != nil {
		return nil, err
	}
	if !granted {
		return nil, domain.ErrAccessDenied
	}
	return device, nil
}

func (uc *DefaultTrackingUsecase) Snapshot(deviceID string) (*domain.StreamEvent, error) {
	device, err := uc.deviceRepo.GetDeviceByID(deviceID)
	if err != nil {
		return nil, err
	}

	lastRecord, err := uc.gpsRepo.GetLastRecord(deviceID)
	if err != nil {
		return nil, err
	}
	if lastRecord == nil {
		return nil, nil
	}

	return &domain.StreamEvent{
		DeviceID:  device.DeviceID,
		DevName:   device.DeviceName,
		Status:    device.Status,
		Connected: device.Connected,
		GpsRecord: toStreamRecord(lastRecord),
	}, nil
}

func toStreamRecord(record *domain.GpsRecord) domain.StreamRecord {
	return domain.StreamRecord{
		ID:        record.ID,
		DeviceID:  record.DeviceID,
		Ts:        record.Ts.UTC().Format(time.RFC3339Nano),
		Latitude:  record.Latitude,
		Longitude: record.Longitude,
		Accuracy:  record.Accuracy,
		Altitude:  record.Altitude,
		Speed:     record.Speed,
		Heading:   record.Heading,
		Battery:   record.Battery,
	}
}
