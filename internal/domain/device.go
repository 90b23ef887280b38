package domain

import "time"

type Device struct {
	DeviceID   string
	DeviceName string
	Model      string
	UserID     string
	ServiceID  *string

	// Lifecycle status reported by the device (free-form, e.g. inactive/active)
	Status string

	// Liveness derived from telemetry freshness
	Connected    bool
	LastReceived *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeviceConnectionState is the lightweight projection the connectivity sweep
// reads for every device.
type DeviceConnectionState struct {
	DeviceID     string
	Connected    bool
	LastReceived *time.Time
}

type DeviceRepository interface {
	CreateDevice(device *Device) error
	GetDeviceByID(deviceID string) (*Device, error)
	DeleteDevice(deviceID string) error
	GetUserDevices(userID string) ([]*Device, error)
	GetConnectionStates() ([]*DeviceConnectionState, error)
	UpdateConnectionStatus(deviceID string, connected bool) error
	WithTx(tx Tx) DeviceRepository
}

// DeviceAccess links a device to a user it was shared with.
type DeviceAccess struct {
	DeviceID     string
	GranteeID    string
	GranteeEmail string
	ServiceID    *string
	CreatedAt    time.Time
}

type DeviceAccessRepository interface {
	GrantAccess(access *DeviceAccess) error
	RevokeAccess(deviceID, granteeID string) error
	HasAccess(deviceID, userID string) (bool, error)
	GetVisibleDevices(userID string) ([]*Device, error)
	GetGrantsByOwner(ownerID string) ([]*DeviceAccess, error)
}
