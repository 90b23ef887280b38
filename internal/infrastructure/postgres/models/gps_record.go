package models

import "time"

type GpsRecordModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	DeviceID  string    `gorm:"index:idx_gps_device_ts,priority:1;not null"`
	Ts        time.Time `gorm:"index:idx_gps_device_ts,priority:2,sort:desc;not null"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	Accuracy  *float64
	Altitude  *float64
	Speed     *float64
	Heading   *float64
	Battery   *float64
}

func (GpsRecordModel) TableName() string {
	return "gps_records"
}
