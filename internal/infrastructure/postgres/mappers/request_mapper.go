package mappers

import (
	"encoding/json"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
)

func ToGORMRequest(request *domain.Request) (*models.RequestModel, error) {
	details, err := json.Marshal(request.Details)
	if err != nil {
		return nil, err
	}
	return &models.RequestModel{
		ID:      request.ID,
		Type:    string(request.Type),
		Status:  string(request.Status),
		Date:    request.Date,
		Details: details,
		UserID:  request.UserID,
	}, nil
}

func ToDomainRequest(model *models.RequestModel) (*domain.Request, error) {
	var details domain.RequestDetails
	if len(model.Details) > 0 {
		if err := json.Unmarshal(model.Details, &details); err != nil {
			return nil, err
		}
	}
	return &domain.Request{
		ID:      model.ID,
		Type:    domain.RequestType(model.Type),
		Status:  domain.RequestStatus(model.Status),
		Date:    model.Date,
		Details: details,
		UserID:  model.UserID,
	}, nil
}
