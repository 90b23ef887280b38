package response

import "github.com/radyab-gps/tracking-service/internal/domain"

type UpdateTrackResponse struct {
	Success bool                `json:"success"`
	Derived bool                `json:"derived"`
	Record  domain.StreamRecord `json:"record"`
}

type DeviceSummaryResponse struct {
	DeviceID string `json:"deviceId"`
	DevName  string `json:"devName"`
	Status   string `json:"status"`
}

type DevicesResponse struct {
	Success bool                    `json:"success"`
	Count   int                     `json:"count"`
	Devices []DeviceSummaryResponse `json:"devices"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
