package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	adminRequest "github.com/radyab-gps/tracking-service/internal/delivery/http/dto/admin/request"
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/usecase"
)

type AdminHandler struct {
	requestUc usecase.RequestUsecase
	serviceUc usecase.ServiceUsecase
}

func NewAdminHandler(requestUc usecase.RequestUsecase, serviceUc usecase.ServiceUsecase) *AdminHandler {
	return &AdminHandler{
		requestUc: requestUc,
		serviceUc: serviceUc,
	}
}

func (h *AdminHandler) GetPendingRequests(c echo.Context) error {
	requests, err := h.requestUc.GetPendingRequests()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toRequestsResponse(requests))
}

// ResolveRequest confirms or rejects one pending request. The request's type
// picks the side effect: recharges credit the wallet, purchases provision
// the bought plan's devices.
func (h *AdminHandler) ResolveRequest(c echo.Context) error {
	var req adminRequest.ResolveRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}
	if req.Confirmed == nil {
		return writeError(c, fmt.Errorf("%w: confirmed is required", domain.ErrValidation))
	}

	requestID := c.Param("id")
	request, err := h.requestUc.GetRequest(requestID)
	if err != nil {
		return writeError(c, err)
	}

	switch request.Type {
	case domain.RequestTypeRecharge:
		err = h.requestUc.ConfirmRecharge(requestID, *req.Confirmed)
	case domain.RequestTypePurchase:
		err = h.serviceUc.ConfirmPurchase(requestID, *req.Confirmed)
	default:
		err = fmt.Errorf("%w: unknown request type %q", domain.ErrValidation, request.Type)
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
