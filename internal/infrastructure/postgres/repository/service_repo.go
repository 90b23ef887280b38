package repository

import (
	"errors"
	"time"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/mappers"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultServiceRepository struct {
	DB *gorm.DB
}

func NewDefaultServiceRepository(db *gorm.DB) *DefaultServiceRepository {
	return &DefaultServiceRepository{
		DB: db,
	}
}

func (r *DefaultServiceRepository) WithTx(tx domain.Tx) domain.ServiceRepository {
	return &DefaultServiceRepository{DB: txDB(tx)}
}

func (r *DefaultServiceRepository) CreateService(service *domain.Service) error {
	return r.DB.Create(mappers.ToGORMService(service)).Error
}

func (r *DefaultServiceRepository) GetServiceByID(serviceID string) (*domain.Service, error) {
	var serviceModel models.ServiceModel
	if err := r.DB.First(&serviceModel, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return mappers.ToDomainService(&serviceModel), nil
}

func (r *DefaultServiceRepository) GetUserServices(userID string) ([]*domain.Service, error) {
	var serviceModels []*models.ServiceModel
	if err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&serviceModels).Error; err != nil {
		return nil, err
	}

	services := make([]*domain.Service, len(serviceModels))
	for i, serviceModel := range serviceModels {
		services[i] = mappers.ToDomainService(serviceModel)
	}

	return services, nil
}

func (r *DefaultServiceRepository) UpdateServiceStatus(serviceID string, status domain.ServiceStatus) error {
	result := r.DB.Model(&models.ServiceModel{}).Where("id = ?", serviceID).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *DefaultServiceRepository) UpdateServiceExpiration(serviceID string, expiresAt time.Time) error {
	result := r.DB.Model(&models.ServiceModel{}).Where("id = ?", serviceID).Update("expiration_date", expiresAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

type DefaultSubPlanRepository struct {
	DB *gorm.DB
}

func NewDefaultSubPlanRepository(db *gorm.DB) *DefaultSubPlanRepository {
	return &DefaultSubPlanRepository{
		DB: db,
	}
}

func (r *DefaultSubPlanRepository) GetSubPlanByName(name string) (*domain.SubPlan, error) {
	var subPlanModel models.SubPlanModel
	if err := r.DB.First(&subPlanModel, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubPlanNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSubPlan(&subPlanModel), nil
}

func (r *DefaultSubPlanRepository) GetAllSubPlans() ([]*domain.SubPlan, error) {
	var subPlanModels []*models.SubPlanModel
	if err := r.DB.Find(&subPlanModels).Error; err != nil {
		return nil, err
	}

	subPlans := make([]*domain.SubPlan, len(subPlanModels))
	for i, subPlanModel := range subPlanModels {
		subPlans[i] = mappers.ToDomainSubPlan(subPlanModel)
	}

	return subPlans, nil
}
