package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds one user's funds. Balance is the canonical source of truth;
// ledger entries are an audit trail written in the same transaction as every
// balance mutation.
type Wallet struct {
	UserID    string
	Balance   decimal.Decimal
	UpdatedAt time.Time
}

type TransactionDirection string

const (
	DirectionSend     TransactionDirection = "send"
	DirectionReceive  TransactionDirection = "receive"
	DirectionRecharge TransactionDirection = "recharge"
	DirectionPurchase TransactionDirection = "purchase"
)

// WalletTransaction is an append-only ledger entry.
type WalletTransaction struct {
	ID             string
	WalletUserID   string
	Amount         decimal.Decimal
	Direction      TransactionDirection
	OtherSideEmail string
	Description    string
	CreatedAt      time.Time
}

type TransactionFilters struct {
	Direction string
	Offset    int
	Limit     int
}

type WalletRepository interface {
	GetWallet(userID string) (*Wallet, error)
	// Credit atomically increments the balance and appends the given ledger
	// entry in one transaction.
	Credit(userID string, amount decimal.Decimal, entry *WalletTransaction) error
	// Debit locks the wallet row, fails with ErrInsufficientBalance if the
	// balance is short, otherwise decrements and appends the entry.
	Debit(userID string, amount decimal.Decimal, entry *WalletTransaction) error
	// Transfer moves amount between two wallets all-or-nothing, appending a
	// send entry for the sender and a receive entry for the recipient.
	Transfer(fromUserID, toUserID string, amount decimal.Decimal, sendEntry, receiveEntry *WalletTransaction) error
	GetTransactions(userID string, filters TransactionFilters) ([]*WalletTransaction, error)
	// WithTx returns a repository view scoped to the given transaction.
	WithTx(tx Tx) WalletRepository
}
