package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletTransactionModel struct {
	ID             string          `gorm:"primaryKey"`
	WalletUserID   string          `gorm:"index;not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Direction      string          `gorm:"index;not null"`
	OtherSideEmail string
	Description    string
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}
