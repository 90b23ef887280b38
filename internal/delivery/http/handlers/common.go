package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	trackingResponse "github.com/radyab-gps/tracking-service/internal/delivery/http/dto/tracking/response"
	authmw "github.com/radyab-gps/tracking-service/internal/delivery/http/middleware"
	"github.com/radyab-gps/tracking-service/internal/domain"
)

func currentUserID(c echo.Context) string {
	userID, _ := c.Get(authmw.UserIDKey).(string)
	return userID
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognized is
// a 500 with a generic body so internals never leak to clients.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientBalance):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrDeviceNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrServiceNotFound),
		errors.Is(err, domain.ErrSubPlanNotFound),
		errors.Is(err, domain.ErrRecipientNotFound),
		errors.Is(err, domain.ErrAccessNotGranted):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrAccessExists):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "error", err)
		message = "internal error"
	}

	return c.JSON(status, trackingResponse.ErrorResponse{
		Success: false,
		Error:   message,
	})
}
