package mappers

import (
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
)

func ToDomainWallet(model *models.WalletModel) *domain.Wallet {
	return &domain.Wallet{
		UserID:    model.UserID,
		Balance:   model.Balance,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMWalletTransaction(entry *domain.WalletTransaction) *models.WalletTransactionModel {
	return &models.WalletTransactionModel{
		ID:             entry.ID,
		WalletUserID:   entry.WalletUserID,
		Amount:         entry.Amount,
		Direction:      string(entry.Direction),
		OtherSideEmail: entry.OtherSideEmail,
		Description:    entry.Description,
		CreatedAt:      entry.CreatedAt,
	}
}

func ToDomainWalletTransaction(model *models.WalletTransactionModel) *domain.WalletTransaction {
	return &domain.WalletTransaction{
		ID:             model.ID,
		WalletUserID:   model.WalletUserID,
		Amount:         model.Amount,
		Direction:      domain.TransactionDirection(model.Direction),
		OtherSideEmail: model.OtherSideEmail,
		Description:    model.Description,
		CreatedAt:      model.CreatedAt,
	}
}
