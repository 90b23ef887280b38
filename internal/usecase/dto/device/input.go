package devicedto

type CreateDeviceInput struct {
	DeviceName string
	Model      string
	UserID     string
	ServiceID  *string
	Status     string
}

type GiveAccessInput struct {
	OwnerID     string
	Password    string
	DeviceID    string
	TargetEmail string
}

type RevokeAccessInput struct {
	OwnerID     string
	DeviceID    string
	TargetEmail string
}
