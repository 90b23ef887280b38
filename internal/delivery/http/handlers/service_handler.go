package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	serviceRequest "github.com/radyab-gps/tracking-service/internal/delivery/http/dto/service/request"
	serviceResponse "github.com/radyab-gps/tracking-service/internal/delivery/http/dto/service/response"
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/usecase"
	servicedto "github.com/radyab-gps/tracking-service/internal/usecase/dto/service"
)

type ServiceHandler struct {
	serviceUc usecase.ServiceUsecase
}

func NewServiceHandler(serviceUc usecase.ServiceUsecase) *ServiceHandler {
	return &ServiceHandler{serviceUc: serviceUc}
}

func (h *ServiceHandler) GetSubPlans(c echo.Context) error {
	plans, err := h.serviceUc.GetAllSubPlans()
	if err != nil {
		return writeError(c, err)
	}

	items := make([]serviceResponse.SubPlanResponse, 0, len(plans))
	for _, plan := range plans {
		items = append(items, serviceResponse.SubPlanResponse{
			Name:         plan.Name,
			Price:        plan.Price.StringFixed(2),
			SubPrice:     plan.SubPrice.StringFixed(2),
			Duration:     plan.Duration,
			DevicesCount: plan.DevicesCount,
		})
	}

	return c.JSON(http.StatusOK, serviceResponse.SubPlansResponse{
		Success: true,
		Plans:   items,
	})
}

func (h *ServiceHandler) GetUserServices(c echo.Context) error {
	services, err := h.serviceUc.GetUserServices(currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}

	items := make([]serviceResponse.ServiceResponse, 0, len(services))
	for _, service := range services {
		items = append(items, toServiceResponse(service))
	}

	return c.JSON(http.StatusOK, serviceResponse.ServicesResponse{
		Success:  true,
		Count:    len(items),
		Services: items,
	})
}

func (h *ServiceHandler) BuyService(c echo.Context) error {
	var req serviceRequest.BuyServiceRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}

	service, err := h.serviceUc.BuyService(&servicedto.BuyServiceInput{
		UserID:     currentUserID(c),
		PlanName:   req.PlanName,
		AddressRef: req.AddressRef,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toServiceResponse(service))
}

func (h *ServiceHandler) RenewService(c echo.Context) error {
	var req serviceRequest.RenewServiceRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}

	expiresAt, err := h.serviceUc.RenewSubscription(&servicedto.RenewSubscriptionInput{
		UserID:    currentUserID(c),
		ServiceID: c.Param("id"),
		Months:    req.Months,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, serviceResponse.RenewResponse{
		Success:        true,
		ExpirationDate: expiresAt.UTC().Format(time.RFC3339),
	})
}

func toServiceResponse(service *domain.Service) serviceResponse.ServiceResponse {
	return serviceResponse.ServiceResponse{
		ID:             service.ID,
		SubPlanName:    service.SubPlanName,
		Status:         string(service.Status),
		ExpirationDate: service.ExpirationDate.UTC().Format(time.RFC3339),
	}
}
