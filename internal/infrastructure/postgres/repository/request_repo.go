package repository

import (
	"errors"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/mappers"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRequestRepository struct {
	DB *gorm.DB
}

func NewDefaultRequestRepository(db *gorm.DB) *DefaultRequestRepository {
	return &DefaultRequestRepository{
		DB: db,
	}
}

func (r *DefaultRequestRepository) WithTx(tx domain.Tx) domain.RequestRepository {
	return &DefaultRequestRepository{DB: txDB(tx)}
}

func (r *DefaultRequestRepository) CreateRequest(request *domain.Request) error {
	requestModel, err := mappers.ToGORMRequest(request)
	if err != nil {
		return err
	}
	return r.DB.Create(requestModel).Error
}

func (r *DefaultRequestRepository) GetRequestByID(requestID string) (*domain.Request, error) {
	var requestModel models.RequestModel
	if err := r.DB.First(&requestModel, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return mappers.ToDomainRequest(&requestModel)
}

func (r *DefaultRequestRepository) GetUserRequests(userID string) ([]*domain.Request, error) {
	return r.findRequests("user_id = ?", userID)
}

func (r *DefaultRequestRepository) GetPendingRequests() ([]*domain.Request, error) {
	return r.findRequests("status = ?", string(domain.RequestStatusPending))
}

func (r *DefaultRequestRepository) findRequests(cond string, arg interface{}) ([]*domain.Request, error) {
	var requestModels []*models.RequestModel
	if err := r.DB.Where(cond, arg).Order("date DESC").Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*domain.Request, len(requestModels))
	for i, requestModel := range requestModels {
		request, err := mappers.ToDomainRequest(requestModel)
		if err != nil {
			return nil, err
		}
		requests[i] = request
	}

	return requests, nil
}

// ResolvePending transitions pending -> status with a conditional update.
// The status guard makes the transition first-writer-wins: a request that was
// already resolved yields zero affected rows and ErrConflict, which keeps a
// recharge confirmation tied to exactly one credit.
func (r *DefaultRequestRepository) ResolvePending(requestID string, status domain.RequestStatus) error {
	result := r.DB.Model(&models.RequestModel{}).
		Where("id = ? AND status = ?", requestID, string(domain.RequestStatusPending)).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.DB.Model(&models.RequestModel{}).Where("id = ?", requestID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrRequestNotFound
		}
		return domain.ErrConflict
	}
	return nil
}
