package repository

import (
	"errors"
	"sort"

	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/mappers"
	"github.com/radyab-gps/tracking-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultWalletRepository struct {
	DB *gorm.DB
}

func NewDefaultWalletRepository(db *gorm.DB) *DefaultWalletRepository {
	return &DefaultWalletRepository{
		DB: db,
	}
}

func (r *DefaultWalletRepository) WithTx(tx domain.Tx) domain.WalletRepository {
	return &DefaultWalletRepository{DB: txDB(tx)}
}

func (r *DefaultWalletRepository) GetWallet(userID string) (*domain.Wallet, error) {
	var walletModel models.WalletModel
	if err := r.DB.First(&walletModel, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWallet(&walletModel), nil
}

// lockWallet reads the wallet row FOR UPDATE so concurrent mutations of the
// same wallet serialize on the row lock.
func lockWallet(tx *gorm.DB, userID string) (*models.WalletModel, error) {
	var walletModel models.WalletModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&walletModel, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &walletModel, nil
}

func setBalance(tx *gorm.DB, userID string, balance decimal.Decimal) error {
	return tx.Model(&models.WalletModel{}).Where("user_id = ?", userID).
		Update("balance", balance).Error
}

func (r *DefaultWalletRepository) Credit(userID string, amount decimal.Decimal, entry *domain.WalletTransaction) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		walletModel, err := lockWallet(tx, userID)
		if err != nil {
			return err
		}
		if err := setBalance(tx, userID, walletModel.Balance.Add(amount)); err != nil {
			return err
		}
		return tx.Create(mappers.ToGORMWalletTransaction(entry)).Error
	})
}

func (r *DefaultWalletRepository) Debit(userID string, amount decimal.Decimal, entry *domain.WalletTransaction) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		walletModel, err := lockWallet(tx, userID)
		if err != nil {
			return err
		}
		if walletModel.Balance.LessThan(amount) {
			return domain.ErrInsufficientBalance
		}
		if err := setBalance(tx, userID, walletModel.Balance.Sub(amount)); err != nil {
			return err
		}
		return tx.Create(mappers.ToGORMWalletTransaction(entry)).Error
	})
}

func (r *DefaultWalletRepository) Transfer(fromUserID, toUserID string, amount decimal.Decimal, sendEntry, receiveEntry *domain.WalletTransaction) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		// Lock both rows in a deterministic order so two opposite transfers
		// cannot deadlock each other.
		order := []string{fromUserID, toUserID}
		sort.Strings(order)

		locked := make(map[string]*models.WalletModel, 2)
		for _, userID := range order {
			walletModel, err := lockWallet(tx, userID)
			if err != nil {
				if userID == toUserID && errors.Is(err, domain.ErrWalletNotFound) {
					return domain.ErrRecipientNotFound
				}
				return err
			}
			locked[userID] = walletModel
		}

		sender := locked[fromUserID]
		if sender.Balance.LessThan(amount) {
			return domain.ErrInsufficientBalance
		}

		if err := setBalance(tx, fromUserID, sender.Balance.Sub(amount)); err != nil {
			return err
		}
		if err := setBalance(tx, toUserID, locked[toUserID].Balance.Add(amount)); err != nil {
			return err
		}

		if err := tx.Create(mappers.ToGORMWalletTransaction(sendEntry)).Error; err != nil {
			return err
		}
		return tx.Create(mappers.ToGORMWalletTransaction(receiveEntry)).Error
	})
}

func (r *DefaultWalletRepository) GetTransactions(userID string, filters domain.TransactionFilters) ([]*domain.WalletTransaction, error) {
	query := r.DB.Model(&models.WalletTransactionModel{}).Where("wallet_user_id = ?", userID)
	if filters.Direction != "" {
		query = query.Where("direction = ?", filters.Direction)
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	var entryModels []*models.WalletTransactionModel
	err := query.Order("created_at DESC").Offset(filters.Offset).Limit(limit).Find(&entryModels).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.WalletTransaction, len(entryModels))
	for i, entryModel := range entryModels {
		entries[i] = mappers.ToDomainWalletTransaction(entryModel)
	}

	return entries, nil
}
