package models

import "time"

type DeviceAccessModel struct {
	DeviceID     string `gorm:"primaryKey"`
	GranteeID    string `gorm:"primaryKey"`
	GranteeEmail string
	ServiceID    *string
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (DeviceAccessModel) TableName() string {
	return "device_accesses"
}
