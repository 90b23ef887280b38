package mappers

import (
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
)

func ToGORMService(service *domain.Service) *models.ServiceModel {
	return &models.ServiceModel{
		ID:             service.ID,
		UserID:         service.UserID,
		SubPlanName:    service.SubPlanName,
		ExpirationDate: service.ExpirationDate,
		Status:         string(service.Status),
		CreatedAt:      service.CreatedAt,
	}
}

func ToDomainService(model *models.ServiceModel) *domain.Service {
	return &domain.Service{
		ID:             model.ID,
		UserID:         model.UserID,
		SubPlanName:    model.SubPlanName,
		ExpirationDate: model.ExpirationDate,
		Status:         domain.ServiceStatus(model.Status),
		CreatedAt:      model.CreatedAt,
	}
}

func ToDomainSubPlan(model *models.SubPlanModel) *domain.SubPlan {
	return &domain.SubPlan{
		Name:         model.Name,
		Price:        model.Price,
		SubPrice:     model.SubPrice,
		Duration:     model.Duration,
		DevicesCount: model.DevicesCount,
	}
}
