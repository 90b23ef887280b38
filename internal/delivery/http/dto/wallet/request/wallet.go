package request

// Monetary amounts travel as strings and are parsed with shopspring/decimal
// so no float rounding ever touches a balance.
type RechargeRequest struct {
	Amount            string `json:"amount"`
	TransactionNumber string `json:"transactionNumber"`
	ReceiptRef        string `json:"receiptRef"`
}

type TransferRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	Amount         string `json:"amount"`
	Password       string `json:"password"`
}
