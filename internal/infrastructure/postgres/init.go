package postgres

import (
	"log"

	"github.com/radyab-gps/tracking-service/internal/config"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.TrackingConfig) *gorm.DB {
	dsn := cfg.TrackingDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.UserModel{},
		&models.DeviceModel{},
		&models.GpsRecordModel{},
		&models.DeviceAccessModel{},
		&models.WalletModel{},
		&models.WalletTransactionModel{},
		&models.RequestModel{},
		&models.ServiceModel{},
		&models.SubPlanModel{},
	)

	return db
}
