package response

type BalanceResponse struct {
	UserID  string `json:"userId"`
	Balance string `json:"balance"`
}

type TransferResponse struct {
	Success    bool   `json:"success"`
	NewBalance string `json:"newBalance"`
}

type TransactionResponse struct {
	ID             string `json:"id"`
	Amount         string `json:"amount"`
	Direction      string `json:"direction"`
	OtherSideEmail string `json:"otherSideEmail,omitempty"`
	Description    string `json:"description,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

type TransactionsResponse struct {
	Success      bool                  `json:"success"`
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions"`
}

type RequestResponse struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Status  string            `json:"status"`
	Date    string            `json:"date"`
	Details map[string]string `json:"details"`
}

type RequestsResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Requests []RequestResponse `json:"requests"`
}
