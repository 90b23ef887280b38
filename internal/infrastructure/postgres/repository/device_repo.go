package repository

import (
	"errors"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/mappers"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDeviceRepository struct {
	DB *gorm.DB
}

func NewDefaultDeviceRepository(db *gorm.DB) *DefaultDeviceRepository {
	return &DefaultDeviceRepository{
		DB: db,
	}
}

func (r *DefaultDeviceRepository) WithTx(tx domain.Tx) domain.DeviceRepository {
	return &DefaultDeviceRepository{DB: txDB(tx)}
}

func (r *DefaultDeviceRepository) CreateDevice(device *domain.Device) error {
	deviceModel := mappers.ToGORMDevice(device)
	return r.DB.Create(deviceModel).Error
}

func (r *DefaultDeviceRepository) GetDeviceByID(deviceID string) (*domain.Device, error) {
	var deviceModel models.DeviceModel
	if err := r.DB.First(&deviceModel, "id = ?", deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDevice(&deviceModel), nil
}

func (r *DefaultDeviceRepository) DeleteDevice(deviceID string) error {
	return r.DB.Delete(&models.DeviceModel{ID: deviceID}).Error
}

func (r *DefaultDeviceRepository) GetUserDevices(userID string) ([]*domain.Device, error) {
	var deviceModels []*models.DeviceModel
	if err := r.DB.Model(&models.DeviceModel{}).Where("user_id = ?", userID).Find(&deviceModels).Error; err != nil {
		return nil, err
	}

	devices := make([]*domain.Device, len(deviceModels))
	for i, deviceModel := range deviceModels {
		devices[i] = mappers.ToDomainDevice(deviceModel)
	}

	return devices, nil
}

func (r *DefaultDeviceRepository) GetConnectionStates() ([]*domain.DeviceConnectionState, error) {
	var deviceModels []*models.DeviceModel
	if err := r.DB.Model(&models.DeviceModel{}).
		Select("id", "connected", "last_received").
		Find(&deviceModels).Error; err != nil {
		return nil, err
	}

	states := make([]*domain.DeviceConnectionState, len(deviceModels))
	for i, deviceModel := range deviceModels {
		states[i] = &domain.DeviceConnectionState{
			DeviceID:     deviceModel.ID,
			Connected:    deviceModel.Connected,
			LastReceived: deviceModel.LastReceived,
		}
	}

	return states, nil
}

func (r *DefaultDeviceRepository) UpdateConnectionStatus(deviceID string, connected bool) error {
	result := r.DB.Model(&models.DeviceModel{}).Where("id = ?", deviceID).Update("connected", connected)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}
