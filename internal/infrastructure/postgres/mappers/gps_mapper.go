package mappers

import (
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
)

func ToGORMGpsRecord(record *domain.GpsRecord) *models.GpsRecordModel {
	return &models.GpsRecordModel{
		ID:        record.ID,
		DeviceID:  record.DeviceID,
		Ts:        record.Ts,
		Latitude:  record.Latitude,
		Longitude: record.Longitude,
		Accuracy:  record.Accuracy,
		Altitude:  record.Altitude,
		Speed:     record.Speed,
		Heading:   record.Heading,
		Battery:   record.Battery,
	}
}

func ToDomainGpsRecord(model *models.GpsRecordModel) *domain.GpsRecord {
	return &domain.GpsRecord{
		ID:        model.ID,
		DeviceID:  model.DeviceID,
		Ts:        model.Ts,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		Accuracy:  model.Accuracy,
		Altitude:  model.Altitude,
		Speed:     model.Speed,
		Heading:   model.Heading,
		Battery:   model.Battery,
	}
}
