package models

import "time"

type ServiceModel struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"index;not null"`
	SubPlanName    string `gorm:"not null"`
	ExpirationDate time.Time
	Status         string    `gorm:"index;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ServiceModel) TableName() string {
	return "services"
}
