package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/radyab-gps/tracking-service/internal/domain"
	devicedto "github.com/radyab-gps/tracking-service/internal/usecase/dto/device"
	servicedto "github.com/radyab-gps/tracking-service/internal/usecase/dto/service"
	"github.com/shopspring/decimal"
)

type ServiceUsecase interface {
	BuyService(input *servicedto.BuyServiceInput) (*domain.Service, error)
	RenewSubscription(input *servicedto.RenewSubscriptionInput) (time.Time, error)
	GetUserServices(userID string) ([]*domain.Service, error)
	GetAllSubPlans() ([]*domain.SubPlan, error)
	// ConfirmPurchase resolves a pending purchase-service request; a
	// confirmation provisions the plan's device count for the buyer.
	ConfirmPurchase(requestID string, confirmed bool) error
}

type DefaultServiceUsecase struct {
	serviceRepo domain.ServiceRepository
	subPlanRepo domain.SubPlanRepository
	requestRepo domain.RequestRepository
	walletUc    WalletUsecase
	deviceUc    DeviceUsecase
	txManager   domain.TxManager
}

func NewDefaultServiceUsecase(
	serviceRepo domain.ServiceRepository,
	subPlanRepo domain.SubPlanRepository,
	requestRepo domain.RequestRepository,
	walletUc WalletUsecase,
	deviceUc DeviceUsecase,
	txManager domain.TxManager,
) *DefaultServiceUsecase {
	return &DefaultServiceUsecase{
		serviceRepo: serviceRepo,
		subPlanRepo: subPlanRepo,
		requestRepo: requestRepo,
		walletUc:    walletUc,
		deviceUc:    deviceUc,
		txManager:   txManager,
	}
}

func (uc *DefaultServiceUsecase) BuyService(input *servicedto.BuyServiceInput) (*domain.Service, error) {
	if input.PlanName == "" {
		return nil, fmt.Errorf("%w: plan name is required", domain.ErrValidation)
	}

	subPlan, err := uc.subPlanRepo.GetSubPlanByName(input.PlanName)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin()
	if err != nil {
		return nil, err
	}
	var committed bool
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				slog.Error("rolling back service purchase", "user_id", input.UserID, "error", rollbackErr)
			}
		}
	}()

	// Debit, service row and approval request commit together so a failure
	// in any of them leaves the buyer's balance untouched.
	if err := uc.walletUc.WithTx(tx).Debit(input.UserID, subPlan.Price, domain.DirectionPurchase, "", fmt.Sprintf("purchase of plan %s", subPlan.Name)); err != nil {
		return nil, err
	}

	service := &domain.Service{
		ID:             uuid.New().String(),
		UserID:         input.UserID,
		SubPlanName:    subPlan.Name,
		ExpirationDate: time.Now().AddDate(0, subPlan.Duration, 0),
		Status:         domain.ServiceStatusPending,
		CreatedAt:      time.Now(),
	}
	if err := uc.serviceRepo.WithTx(tx).CreateService(service); err != nil {
		return nil, err
	}

	request := &domain.Request{
		ID:     uuid.New().String(),
		Type:   domain.RequestTypePurchase,
		Status: domain.RequestStatusPending,
		Date:   time.Now(),
		Details: domain.RequestDetails{
			ServiceID:  service.ID,
			AddressRef: input.AddressRef,
		},
		UserID: input.UserID,
	}
	if err := uc.requestRepo.WithTx(tx).CreateRequest(request); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return service, nil
}

func (uc *DefaultServiceUsecase) RenewSubscription(input *servicedto.RenewSubscriptionInput) (time.Time, error) {
	if input.Months <= 0 {
		return time.Time{}, fmt.Errorf("%w: months must be positive", domain.ErrValidation)
	}

	service, err := uc.serviceRepo.GetServiceByID(input.ServiceID)
	if err != nil {
		return time.Time{}, err
	}
	if service.UserID != input.UserID {
		return time.Time{}, domain.ErrAccessDenied
	}

	subPlan, err := uc.subPlanRepo.GetSubPlanByName(service.SubPlanName)
	if err != nil {
		return time.Time{}, err
	}

	tx, err := uc.txManager.Begin()
	if err != nil {
		return time.Time{}, err
	}
	var committed bool
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				slog.Error("rolling back renewal", "service_id", service.ID, "error", rollbackErr)
			}
		}
	}()

	total := subPlan.SubPrice.Mul(decimal.NewFromInt(int64(input.Months)))
	if err := uc.walletUc.WithTx(tx).Debit(input.UserID, total, domain.DirectionPurchase, "", fmt.Sprintf("renewal of service %s", service.ID)); err != nil {
		return time.Time{}, err
	}

	base := service.ExpirationDate
	if base.Before(time.Now()) {
		base = time.Now()
	}
	newExpiration := base.AddDate(0, input.Months, 0)
	if err := uc.serviceRepo.WithTx(tx).UpdateServiceExpiration(service.ID, newExpiration); err != nil {
		return time.Time{}, err
	}

	if err := tx.Commit(); err != nil {
		return time.Time{}, err
	}
	committed = true
	return newExpiration, nil
}

func (uc *DefaultServiceUsecase) GetUserServices(userID string) ([]*domain.Service, error) {
	return uc.serviceRepo.GetUserServices(userID)
}

func (uc *DefaultServiceUsecase) GetAllSubPlans() ([]*domain.SubPlan, error) {
	return uc.subPlanRepo.GetAllSubPlans()
}

func (uc *DefaultServiceUsecase) ConfirmPurchase(requestID string, confirmed bool) error {
	request, err := uc.requestRepo.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if request.Type != domain.RequestTypePurchase {
		return fmt.Errorf("%w: request %s is not a purchase request", domain.ErrValidation, requestID)
	}

	service, err := uc.serviceRepo.GetServiceByID(request.Details.ServiceID)
	if err != nil {
		return err
	}

	status := domain.RequestStatusRejected
	serviceStatus := domain.ServiceStatusRejected
	if confirmed {
		status = domain.RequestStatusConfirmed
		serviceStatus = domain.ServiceStatusConfirmed
	}

	tx, err := uc.txManager.Begin()
	if err != nil {
		return err
	}
	var committed bool
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				slog.Error("rolling back purchase resolution", "request_id", requestID, "error", rollbackErr)
			}
		}
	}()

	// The pending guard keeps the resolution first-writer-wins; resolution,
	// service status and provisioned devices commit together, so a failure
	// anywhere leaves the request pending and retriable.
	if err := uc.requestRepo.WithTx(tx).ResolvePending(requestID, status); err != nil {
		return err
	}
	if err := uc.serviceRepo.WithTx(tx).UpdateServiceStatus(service.ID, serviceStatus); err != nil {
		return err
	}

	if confirmed {
		subPlan, err := uc.subPlanRepo.GetSubPlanByName(service.SubPlanName)
		if err != nil {
			return err
		}

		deviceUc := uc.deviceUc.WithTx(tx)
		for i := 0; i < subPlan.DevicesCount; i++ {
			_, err := deviceUc.CreateDevice(&devicedto.CreateDeviceInput{
				DeviceName: fmt.Sprintf("device_%s_%d", shortID(service.ID), i),
				Model:      "basic",
				UserID:     service.UserID,
				ServiceID:  &service.ID,
				Status:     "inactive",
			})
			if err != nil {
				return fmt.Errorf("provisioning device %d for service %s: %w", i, service.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func shortID(id string) string {
	if len(id) <= 3 {
		return id
	}
	return id[:3]
}
