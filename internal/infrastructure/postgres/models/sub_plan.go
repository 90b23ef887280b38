package models

import "github.com/shopspring/decimal"

type SubPlanModel struct {
	Name         string          `gorm:"primaryKey"`
	Price        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	SubPrice     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Duration     int             `gorm:"not null"`
	DevicesCount int             `gorm:"not null"`
}

func (SubPlanModel) TableName() string {
	return "sub_plans"
}
