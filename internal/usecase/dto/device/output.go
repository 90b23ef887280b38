package devicedto

// DeviceSummary is the visible-devices projection: id, name, status.
type DeviceSummary struct {
	DeviceID   string
	DeviceName string
	Status     string
}

// SweepReport summarizes one connectivity sweep.
type SweepReport struct {
	Checked         int
	FlippedOnline   int
	FlippedOffline  int
	PerDeviceErrors int
}
