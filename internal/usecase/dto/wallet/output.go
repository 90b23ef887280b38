package walletdto

import "github.com/shopspring/decimal"

type TransferOutput struct {
	NewBalance decimal.Decimal
}
