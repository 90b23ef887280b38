package mappers

import (
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
)

func ToGORMDevice(device *domain.Device) *models.DeviceModel {
	return &models.DeviceModel{
		ID:           device.DeviceID,
		Name:         device.DeviceName,
		Model:        device.Model,
		UserID:       device.UserID,
		ServiceID:    device.ServiceID,
		Status:       device.Status,
		Connected:    device.Connected,
		LastReceived: device.LastReceived,
		CreatedAt:    device.CreatedAt,
		UpdatedAt:    device.UpdatedAt,
	}
}

func ToDomainDevice(model *models.DeviceModel) *domain.Device {
	return &domain.Device{
		DeviceID:     model.ID,
		DeviceName:   model.Name,
		Model:        model.Model,
		UserID:       model.UserID,
		ServiceID:    model.ServiceID,
		Status:       model.Status,
		Connected:    model.Connected,
		LastReceived: model.LastReceived,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMDeviceAccess(access *domain.DeviceAccess) *models.DeviceAccessModel {
	return &models.DeviceAccessModel{
		DeviceID:     access.DeviceID,
		GranteeID:    access.GranteeID,
		GranteeEmail: access.GranteeEmail,
		ServiceID:    access.ServiceID,
		CreatedAt:    access.CreatedAt,
	}
}

func ToDomainDeviceAccess(model *models.DeviceAccessModel) *domain.DeviceAccess {
	return &domain.DeviceAccess{
		DeviceID:     model.DeviceID,
		GranteeID:    model.GranteeID,
		GranteeEmail: model.GranteeEmail,
		ServiceID:    model.ServiceID,
		CreatedAt:    model.CreatedAt,
	}
}
