package repository

import (
	"errors"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/mappers"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDeviceAccessRepository struct {
	DB *gorm.DB
}

func NewDefaultDeviceAccessRepository(db *gorm.DB) *DefaultDeviceAccessRepository {
	return &DefaultDeviceAccessRepository{
		DB: db,
	}
}

func (r *DefaultDeviceAccessRepository) GrantAccess(access *domain.DeviceAccess) error {
	var count int64
	err := r.DB.Model(&models.DeviceAccessModel{}).
		Where("device_id = ? AND grantee_id = ?", access.DeviceID, access.GranteeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrAccessExists
	}
	return r.DB.Create(mappers.ToGORMDeviceAccess(access)).Error
}

func (r *DefaultDeviceAccessRepository) RevokeAccess(deviceID, granteeID string) error {
	result := r.DB.Where("device_id = ? AND grantee_id = ?", deviceID, granteeID).
		Delete(&models.DeviceAccessModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccessNotGranted
	}
	return nil
}

func (r *DefaultDeviceAccessRepository) HasAccess(deviceID, userID string) (bool, error) {
	var accessModel models.DeviceAccessModel
	err := r.DB.First(&accessModel, "device_id = ? AND grantee_id = ?", deviceID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetVisibleDevices returns the user's own devices plus devices shared with
// them through access grants.
func (r *DefaultDeviceAccessRepository) GetVisibleDevices(userID string) ([]*domain.Device, error) {
	var deviceModels []*models.DeviceModel
	err := r.DB.Model(&models.DeviceModel{}).
		Joins("LEFT JOIN device_accesses ON device_accesses.device_id = devices.id AND device_accesses.grantee_id = ?", userID).
		Where("devices.user_id = ? OR device_accesses.grantee_id = ?", userID, userID).
		Distinct("devices.*").
		Find(&deviceModels).Error
	if err != nil {
		return nil, err
	}

	devices := make([]*domain.Device, len(deviceModels))
	for i, deviceModel := range deviceModels {
		devices[i] = mappers.ToDomainDevice(deviceModel)
	}

	return devices, nil
}

func (r *DefaultDeviceAccessRepository) GetGrantsByOwner(ownerID string) ([]*domain.DeviceAccess, error) {
	var accessModels []*models.DeviceAccessModel
	err := r.DB.Model(&models.DeviceAccessModel{}).
		Joins("JOIN devices ON devices.id = device_accesses.device_id").
		Where("devices.user_id = ?", ownerID).
		Find(&accessModels).Error
	if err != nil {
		return nil, err
	}

	grants := make([]*domain.DeviceAccess, len(accessModels))
	for i, accessModel := range accessModels {
		grants[i] = mappers.ToDomainDeviceAccess(accessModel)
	}

	return grants, nil
}
