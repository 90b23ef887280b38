package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/radyab-gps/tracking-service/internal/broadcast"
	trackingRequest "github.com/radyab-gps/tracking-service/internal/delivery/http/dto/tracking/request"
	trackingResponse "github.com/radyab-gps/tracking-service/internal/delivery/http/dto/tracking/response"
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/metrics"
	"github.com/radyab-gps/tracking-service/internal/usecase"
	devicedto "github.com/radyab-gps/tracking-service/internal/usecase/dto/device"
	trackingdto "github.com/radyab-gps/tracking-service/internal/usecase/dto/tracking"
)

type TrackingHandler struct {
	trackingUc usecase.TrackingUsecase
	deviceUc   usecase.DeviceUsecase
	hub        *broadcast.Hub
	metrics    *metrics.TrackingMetrics
}

func NewTrackingHandler(
	trackingUc usecase.TrackingUsecase,
	deviceUc usecase.DeviceUsecase,
	hub *broadcast.Hub,
	trackingMetrics *metrics.TrackingMetrics,
) *TrackingHandler {
	return &TrackingHandler{
		trackingUc: trackingUc,
		deviceUc:   deviceUc,
		hub:        hub,
		metrics:    trackingMetrics,
	}
}

func (h *TrackingHandler) UpdateTrack(c echo.Context) error {
	var req trackingRequest.UpdateTrackRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}

	input := &trackingdto.IngestSampleInput{
		DeviceID:  req.DeviceID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    req.Status,
		Accuracy:  req.Accuracy,
		Altitude:  req.Altitude,
		Speed:     req.Speed,
		Heading:   req.Heading,
		Battery:   req.Battery,
	}
	if req.Ts != nil {
		ts, err := time.Parse(time.RFC3339, *req.Ts)
		if err != nil {
			return writeError(c, fmt.Errorf("%w: ts must be RFC 3339", domain.ErrValidation))
		}
		input.Timestamp = &ts
	}

	output, err := h.trackingUc.IngestSample(input)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, trackingResponse.UpdateTrackResponse{
		Success: true,
		Derived: output.Derived,
		Record:  toStreamRecordResponse(output.Record),
	})
}

// Stream upgrades the request into a server-sent event stream for one device.
// Authorization happens once, at subscribe time; the last stored record is
// replayed as the first event so a new watcher never starts blind.
func (h *TrackingHandler) Stream(c echo.Context) error {
	var req trackingRequest.StreamRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}
	if req.DeviceID == "" {
		return writeError(c, fmt.Errorf("%w: deviceId is required", domain.ErrValidation))
	}

	device, err := h.trackingUc.AuthorizeStream(req.DeviceID, currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	sub, snapshot, err := h.openStream(device.DeviceID)
	if err != nil {
		return writeError(c, err)
	}
	defer h.hub.Unsubscribe(sub)

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	h.metrics.StreamSubscribersGauge.WithLabelValues(device.DeviceID).Inc()
	defer h.metrics.StreamSubscribersGauge.WithLabelValues(device.DeviceID).Dec()

	if snapshot != nil {
		if err := writeStreamEvent(w, *snapshot); err != nil {
			return nil
		}
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := writeStreamEvent(w, event); err != nil {
				return nil
			}
		}
	}
}

// openStream registers the watcher first and reads the snapshot after. A
// sample ingested between the two arrives on the channel, at worst
// duplicating the snapshot, instead of being lost to this watcher.
func (h *TrackingHandler) openStream(deviceID string) (*broadcast.Subscriber, *domain.StreamEvent, error) {
	sub := h.hub.Subscribe(deviceID)
	snapshot, err := h.trackingUc.Snapshot(deviceID)
	if err != nil {
		h.hub.Unsubscribe(sub)
		return nil, nil, err
	}
	return sub, snapshot, nil
}

func (h *TrackingHandler) VisibleDevices(c echo.Context) error {
	devices, err := h.deviceUc.GetVisibleDevices(currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	summaries := make([]trackingResponse.DeviceSummaryResponse, 0, len(devices))
	for _, device := range devices {
		summaries = append(summaries, trackingResponse.DeviceSummaryResponse{
			DeviceID: device.DeviceID,
			DevName:  device.DeviceName,
			Status:   device.Status,
		})
	}

	return c.JSON(http.StatusOK, trackingResponse.DevicesResponse{
		Success: true,
		Count:   len(summaries),
		Devices: summaries,
	})
}

func (h *TrackingHandler) GiveAccess(c echo.Context) error {
	var req trackingRequest.GiveAccessRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}

	err := h.deviceUc.GiveAccess(&devicedto.GiveAccessInput{
		OwnerID:     currentUserID(c),
		Password:    req.Password,
		DeviceID:    c.Param("id"),
		TargetEmail: req.TargetEmail,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *TrackingHandler) RevokeAccess(c echo.Context) error {
	var req trackingRequest.RevokeAccessRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}

	err := h.deviceUc.RevokeAccess(&devicedto.RevokeAccessInput{
		OwnerID:     currentUserID(c),
		DeviceID:    c.Param("id"),
		TargetEmail: req.TargetEmail,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func writeStreamEvent(w *echo.Response, event domain.StreamEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	w.Flush()
	return nil
}

func toStreamRecordResponse(record *domain.GpsRecord) domain.StreamRecord {
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
