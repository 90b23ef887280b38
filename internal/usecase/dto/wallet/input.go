package walletdto

import "github.com/shopspring/decimal"

type TransferInput struct {
	SenderID       string
	RecipientEmail string
	Amount         decimal.Decimal
	Password       string
}

type GetTransactionsInput struct {
	UserID    string
	Direction string
	Offset    int
	Limit     int
}

type SubmitRechargeInput struct {
	UserID            string
	Amount            decimal.Decimal
	TransactionNumber string
	ReceiptRef        string
}
