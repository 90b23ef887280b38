package domain

import "time"

// GpsRecord is one telemetry sample. Records are append-only and keyed by
// (device, timestamp); they are never updated or deleted after insert.
type GpsRecord struct {
	ID        int64
	DeviceID  string
	Ts        time.Time
	Latitude  float64
	Longitude float64
	Accuracy  *float64
	Altitude  *float64
	Speed     *float64
	Heading   *float64
	Battery   *float64
}

type GpsRecordRepository interface {
	// AppendRecord persists the record and updates the owning device's
	// status, connected flag and lastReceived as one transaction.
	AppendRecord(record *GpsRecord, deviceStatus string, receivedAt time.Time) error
	GetLastRecord(deviceID string) (*GpsRecord, error)
	// GetLastNRecords returns up to n records ordered by ts descending.
	GetLastNRecords(deviceID string, n int) ([]*GpsRecord, error)
}
