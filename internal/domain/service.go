package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubPlan is a purchasable subscription plan.
type SubPlan struct {
	Name         string
	Price        decimal.Decimal
	SubPrice     decimal.Decimal // monthly renewal price
	Duration     int             // months
	DevicesCount int
}

type ServiceStatus string

const (
	ServiceStatusPending   ServiceStatus = "pending"
	ServiceStatusConfirmed ServiceStatus = "confirmed"
	ServiceStatusRejected  ServiceStatus = "rejected"
)

// Service is a purchased subscription that owns provisioned devices.
type Service struct {
	ID             string
	UserID         string
	SubPlanName    string
	ExpirationDate time.Time
	Status         ServiceStatus
	CreatedAt      time.Time
}

type SubPlanRepository interface {
	GetSubPlanByName(name string) (*SubPlan, error)
	GetAllSubPlans() ([]*SubPlan, error)
}

type ServiceRepository interface {
	CreateService(service *Service) error
	GetServiceByID(serviceID string) (*Service, error)
	GetUserServices(userID string) ([]*Service, error)
	UpdateServiceStatus(serviceID string, status ServiceStatus) error
	UpdateServiceExpiration(serviceID string, expiresAt time.Time) error
	WithTx(tx Tx) ServiceRepository
}
