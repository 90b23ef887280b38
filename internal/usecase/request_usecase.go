package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/radyab-gps/tracking-service/internal/domain"
	walletdto "github.com/radyab-gps/tracking-service/internal/usecase/dto/wallet"
	"github.com/shopspring/decimal"
)

type RequestUsecase interface {
	SubmitRecharge(input *walletdto.SubmitRechargeInput) (*domain.Request, error)
	GetRequest(requestID string) (*domain.Request, error)
	GetUserRequests(userID string) ([]*domain.Request, error)
	GetPendingRequests() ([]*domain.Request, error)
	// ConfirmRecharge resolves a pending recharge request. A confirmation
	// credits the wallet exactly once; a rejection touches no balance.
	ConfirmRecharge(requestID string, confirmed bool) error
}

type DefaultRequestUsecase struct {
	requestRepo domain.RequestRepository
	walletUc    WalletUsecase
	txManager   domain.TxManager
}

func NewDefaultRequestUsecase(requestRepo domain.RequestRepository, walletUc WalletUsecase, txManager domain.TxManager) *DefaultRequestUsecase {
	return &DefaultRequestUsecase{
		requestRepo: requestRepo,
		walletUc:    walletUc,
		txManager:   txManager,
	}
}

func (uc *DefaultRequestUsecase) SubmitRecharge(input *walletdto.SubmitRechargeInput) (*domain.Request, error) {
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be a positive number", domain.ErrValidation)
	}
	if input.TransactionNumber == "" {
		return nil, fmt.Errorf("%w: transaction number is required", domain.ErrValidation)
	}

	request := &domain.Request{
		ID:     uuid.New().String(),
		Type:   domain.RequestTypeRecharge,
		Status: domain.RequestStatusPending,
		Date:   time.Now(),
		Details: domain.RequestDetails{
			Amount:            input.Amount.String(),
			TransactionNumber: input.TransactionNumber,
			ReceiptRef:        input.ReceiptRef,
		},
		UserID: input.UserID,
	}
	if err := uc.requestRepo.CreateRequest(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (uc *DefaultRequestUsecase) GetRequest(requestID string) (*domain.Request, error) {
	return uc.requestRepo.GetRequestByID(requestID)
}

func (uc *DefaultRequestUsecase) GetUserRequests(userID string) ([]*domain.Request, error) {
	return uc.requestRepo.GetUserRequests(userID)
}

func (uc *DefaultRequestUsecase) GetPendingRequests() ([]*domain.Request, error) {
	return uc.requestRepo.GetPendingRequests()
}

func (uc *DefaultRequestUsecase) ConfirmRecharge(requestID string, confirmed bool) error {
	request, err := uc.requestRepo.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if request.Type != domain.RequestTypeRecharge {
		return fmt.Errorf("%w: request %s is not a recharge request", domain.ErrValidation, requestID)
	}

	amount, err := decimal.NewFromString(request.Details.Amount)
	if err != nil || !amount.IsPositive() {
		return fmt.Errorf("%w: invalid recharge amount", domain.ErrValidation)
	}

	status := domain.RequestStatusRejected
	if confirmed {
		status = domain.RequestStatusConfirmed
	}

	tx, err := uc.txManager.Begin()
	if err != nil {
		return err
	}
	var committed bool
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				slog.Error("rolling back recharge resolution", "request_id", requestID, "error", rollbackErr)
			}
		}
	}()

	// The pending guard makes the transition first-writer-wins, so two
	// concurrent confirmations cannot both reach the credit below. Resolution
	// and credit commit together; a failed credit leaves the request pending
	// and the confirmation retriable.
	if err := uc.requestRepo.WithTx(tx).ResolvePending(requestID, status); err != nil {
		return err
	}

	if confirmed {
		if err := uc.walletUc.WithTx(tx).Credit(request.UserID, amount, domain.DirectionRecharge, "", fmt.Sprintf("recharge %s", request.Details.TransactionNumber)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
