package repository

import (
	"github.com/radyab-gps/tracking-service/internal/domain"
	"gorm.io/gorm"
)

type gormTx struct {
	db *gorm.DB
}

func (tx *gormTx) Commit() error {
	return tx.db.Commit().Error
}

func (tx *gormTx) Rollback() error {
	return tx.db.Rollback().Error
}

type GormTxManager struct {
	DB *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{DB: db}
}

func (m *GormTxManager) Begin() (domain.Tx, error) {
	tx := m.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormTx{db: tx}, nil
}

// txDB unwraps the transaction handle for repositories in this package.
// Repository methods that open their own gorm transaction nest as savepoints.
func txDB(tx domain.Tx) *gorm.DB {
	return tx.(*gormTx).db
}
