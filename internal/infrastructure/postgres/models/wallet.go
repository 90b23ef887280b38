package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletModel struct {
	UserID    string          `gorm:"primaryKey"`
	Balance   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (WalletModel) TableName() string {
	return "wallets"
}
