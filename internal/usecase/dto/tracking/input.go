package trackingdto

import "time"

// IngestSampleInput carries one raw telemetry sample. Required fields are
// pointers so a missing value can be told apart from a zero one.
type IngestSampleInput struct {
	DeviceID  string
	Latitude  *float64
	Longitude *float64
	Status    *string
	Timestamp *time.Time
	Accuracy  *float64
	Altitude  *float64
	Speed     *float64
	Heading   *float64
	Battery   *float64
}
