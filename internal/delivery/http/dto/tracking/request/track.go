package request

// UpdateTrackRequest is one raw telemetry sample as posted by a device.
// Optional fields are pointers so absent and zero can be told apart.
type UpdateTrackRequest struct {
	DeviceID  string   `json:"deviceId"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Status    *string  `json:"status"`
	Ts        *string  `json:"ts"`
	Accuracy  *float64 `json:"accuracy"`
	Altitude  *float64 `json:"altitude"`
	Speed     *float64 `json:"speed"`
	Heading   *float64 `json:"heading"`
	Battery   *float64 `json:"battery"`
}

type StreamRequest struct {
	DeviceID string `json:"deviceId"`
}

type GiveAccessRequest struct {
	TargetEmail string `json:"targetEmail"`
	Password    string `json:"password"`
}

type RevokeAccessRequest struct {
	TargetEmail string `json:"targetEmail"`
}
