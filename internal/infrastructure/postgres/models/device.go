package models

import "time"

type DeviceModel struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Model        string
	UserID       string  `gorm:"index"`
	ServiceID    *string `gorm:"index"`
	Status       string
	Connected    bool
	LastReceived *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (DeviceModel) TableName() string {
	return "devices"
}
