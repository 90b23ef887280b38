package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/mappers"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultGpsRecordRepository struct {
	DB *gorm.DB
}

func NewDefaultGpsRecordRepository(db *gorm.DB) *DefaultGpsRecordRepository {
	return &DefaultGpsRecordRepository{
		DB: db,
	}
}

// AppendRecord inserts the GPS record and refreshes the owning device's
// status, connected flag and last_received inside one transaction, so a
// stored sample can never be orphaned from its device-state update.
func (r *DefaultGpsRecordRepository) AppendRecord(record *domain.GpsRecord, deviceStatus string, receivedAt time.Time) error {
	recordModel := mappers.ToGORMGpsRecord(record)

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recordModel).Error; err != nil {
			return fmt.Errorf("inserting gps record: %w", err)
		}

		result := tx.Model(&models.DeviceModel{}).Where("id = ?", record.DeviceID).Updates(map[string]interface{}{
			"status":        deviceStatus,
			"connected":     true,
			"last_received": receivedAt,
		})
		if result.Error != nil {
			return fmt.Errorf("updating device state: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrDeviceNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	record.ID = recordModel.ID
	return nil
}

func (r *DefaultGpsRecordRepository) GetLastRecord(deviceID string) (*domain.GpsRecord, error) {
	var recordModel models.GpsRecordModel
	err := r.DB.Where("device_id = ?", deviceID).Order("ts DESC").First(&recordModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainGpsRecord(&recordModel), nil
}

func (r *DefaultGpsRecordRepository) GetLastNRecords(deviceID string, n int) ([]*domain.GpsRecord, error) {
	var recordModels []*models.GpsRecordModel
	err := r.DB.Where("device_id = ?", deviceID).Order("ts DESC").Limit(n).Find(&recordModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.GpsRecord, len(recordModels))
	for i, recordModel := range recordModels {
		records[i] = mappers.ToDomainGpsRecord(recordModel)
	}

	return records, nil
}
