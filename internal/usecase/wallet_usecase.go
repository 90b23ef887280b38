package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/kafka"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/metrics"
	walletdto "github.com/radyab-gps/tracking-service/internal/usecase/dto/wallet"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type WalletUsecase interface {
	GetBalance(userID string) (decimal.Decimal, error)
	// Credit adds funds and appends a ledger entry atomically. Used by the
	// recharge confirmation flow.
	Credit(userID string, amount decimal.Decimal, direction domain.TransactionDirection, otherSide, description string) error
	// Debit removes funds with the insufficient-balance guard. Used by the
	// purchase flows.
	Debit(userID string, amount decimal.Decimal, direction domain.TransactionDirection, otherSide, description string) error
	Transfer(input *walletdto.TransferInput) (*walletdto.TransferOutput, error)
	GetTransactions(input *walletdto.GetTransactionsInput) ([]*domain.WalletTransaction, error)
	// WithTx returns a usecase view whose wallet mutations run inside the
	// given transaction. Used by flows that must commit a balance change
	// together with writes to other repositories.
	WithTx(tx domain.Tx) WalletUsecase
}

type DefaultWalletUsecase struct {
	walletRepo domain.WalletRepository
	userRepo   domain.UserRepository
	publisher  *kafka.EventPublisher
	metrics    *metrics.TrackingMetrics
}

func NewDefaultWalletUsecase(
	walletRepo domain.WalletRepository,
	userRepo domain.UserRepository,
	publisher *kafka.EventPublisher,
	trackingMetrics *metrics.TrackingMetrics,
) *DefaultWalletUsecase {
	return &DefaultWalletUsecase{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		metrics:    trackingMetrics,
	}
}

func (uc *DefaultWalletUsecase) WithTx(tx domain.Tx) WalletUsecase {
	scoped := *uc
	scoped.walletRepo = uc.walletRepo.WithTx(tx)
	return &scoped
}

func (uc *DefaultWalletUsecase) GetBalance(userID string) (decimal.Decimal, error) {
	wallet, err := uc.walletRepo.GetWallet(userID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

func newLedgerEntry(userID string, amount decimal.Decimal, direction domain.TransactionDirection, otherSide, description string) *domain.WalletTransaction {
	return &domain.WalletTransaction{
		ID:             uuid.New().String(),
		WalletUserID:   userID,
		Amount:         amount,
		Direction:      direction,
		OtherSideEmail: otherSide,
		Description:    description,
		CreatedAt:      time.Now(),
	}
}

func (uc *DefaultWalletUsecase) Credit(userID string, amount decimal.Decimal, direction domain.TransactionDirection, otherSide, description string) error {
	if !amount.IsPositive() {
		uc.metrics.RecordWalletError("credit", "validation")
		return fmt.Errorf("%w: amount must be a positive number", domain.ErrValidation)
	}

	entry := newLedgerEntry(userID, amount, direction, otherSide, description)
	if err := uc.walletRepo.Credit(userID, amount, entry); err != nil {
		uc.metrics.RecordWalletError("credit", walletErrorType(err))
		return err
	}

	uc.metrics.RecordWalletOperation("credit")
	uc.publishWalletEvent(entry)
	return nil
}

func (uc *DefaultWalletUsecase) Debit(userID string, amount decimal.Decimal, direction domain.TransactionDirection, otherSide, description string) error {
	if !amount.IsPositive() {
		uc.metrics.RecordWalletError("debit", "validation")
		return fmt.Errorf("%w: amount must be a positive number", domain.ErrValidation)
	}

	entry := newLedgerEntry(userID, amount, direction, otherSide, description)
	if err := uc.walletRepo.Debit(userID, amount, entry); err != nil {
		uc.metrics.RecordWalletError("debit", walletErrorType(err))
		return err
	}

	uc.metrics.RecordWalletOperation("debit")
	uc.publishWalletEvent(entry)
	return nil
}

func (uc *DefaultWalletUsecase) Transfer(input *walletdto.TransferInput) (*walletdto.TransferOutput, error) {
	if !input.Amount.IsPositive() {
		uc.metrics.RecordWalletError("transfer", "validation")
		return nil, fmt.Errorf("%w: amount must be a positive number", domain.ErrValidation)
	}

	sender, err := uc.userRepo.GetUserByID(input.SenderID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(sender.PasswordHash), []byte(input.Password)); err != nil {
		uc.metrics.RecordWalletError("transfer", "unauthorized")
		return nil, domain.ErrUnauthorized
	}

	recipient, err := uc.userRepo.GetUserByEmail(input.RecipientEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.metrics.RecordWalletError("transfer", "recipient_not_found")
			return nil, domain.ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.ID == sender.ID {
		uc.metrics.RecordWalletError("transfer", "validation")
		return nil, fmt.Errorf("%w: cannot transfer to yourself", domain.ErrValidation)
	}

	sendEntry := newLedgerEntry(sender.ID, input.Amount, domain.DirectionSend, recipient.Email, "success")
	receiveEntry := newLedgerEntry(recipient.ID, input.Amount, domain.DirectionReceive, sender.Email, "success")

	if err := uc.walletRepo.Transfer(sender.ID, recipient.ID, input.Amount, sendEntry, receiveEntry); err != nil {
		uc.metrics.RecordWalletError("transfer", walletErrorType(err))
		return nil, err
	}

	uc.metrics.RecordWalletOperation("transfer")
	uc.publishWalletEvent(sendEntry)
	uc.publishWalletEvent(receiveEntry)

	wallet, err := uc.walletRepo.GetWallet(sender.ID)
	if err != nil {
		return nil, err
	}
	return &walletdto.TransferOutput{NewBalance: wallet.Balance}, nil
}

func (uc *DefaultWalletUsecase) GetTransactions(input *walletdto.GetTransactionsInput) ([]*domain.WalletTransaction, error) {
	return uc.walletRepo.GetTransactions(input.UserID, domain.TransactionFilters{
		Direction: input.Direction,
		Offset:    input.Offset,
		Limit:     input.Limit,
	})
}

// publishWalletEvent mirrors a committed ledger entry onto the event stream,
// best-effort.
func (uc *DefaultWalletUsecase) publishWalletEvent(entry *domain.WalletTransaction) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishWallet(kafka.WalletEvent{
		WalletUserID: entry.WalletUserID,
		Direction:    string(entry.Direction),
		Amount:       entry.Amount.String(),
		EntryID:      entry.ID,
	}); err != nil {
		slog.Error("failed to publish wallet event", "entry_id", entry.ID, "error", err)
	}
}

func walletErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrWalletNotFound), errors.Is(err, domain.ErrRecipientNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
