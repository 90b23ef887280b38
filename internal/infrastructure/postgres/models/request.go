package models

import "time"

type RequestModel struct {
	ID      string `gorm:"primaryKey"`
	Type    string `gorm:"index;not null"`
	Status  string `gorm:"index;not null"`
	Date    time.Time
	Details []byte `gorm:"type:jsonb"`
	UserID  string `gorm:"index;not null"`
}

func (RequestModel) TableName() string {
	return "requests"
}
