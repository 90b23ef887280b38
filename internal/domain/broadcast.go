package domain

// StreamRecord is the wire shape of a GPS record inside a stream event.
// Record ids are serialized as strings so they survive any transport that
// cannot carry 64-bit integers.
type StreamRecord struct {
	ID        int64    `json:"id,string"`
	DeviceID  string   `json:"deviceId"`
	Ts        string   `json:"ts"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	Altitude  *float64 `json:"altitude"`
	Speed     *float64 `json:"speed"`
	Heading   *float64 `json:"heading"`
	Battery   *float64 `json:"battery"`
}

// StreamEvent is the versioned payload pushed to live subscribers: one event
// per ingested sample, plus one snapshot event on subscribe.
type StreamEvent struct {
	DeviceID  string       `json:"deviceId"`
	DevName   string       `json:"devName"`
	Status    string       `json:"status"`
	Connected bool         `json:"connected"`
	GpsRecord StreamRecord `json:"gpsRecord"`
}

// Broadcaster routes stream events to live subscribers of a device.
// Delivery is best-effort and at-most-once; the durable record log is the
// source of truth.
type Broadcaster interface {
	Publish(deviceID string, event StreamEvent) (delivered, dropped int)
}
