package domain

import "time"

type RequestType string

const (
	RequestTypeRecharge RequestType = "recharge"
	RequestTypePurchase RequestType = "purchase-service"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusConfirmed RequestStatus = "confirmed"
	RequestStatusRejected  RequestStatus = "rejected"
)

// Request is a pending admin decision (recharge or service purchase).
// Status transitions pending -> confirmed|rejected exactly once.
type Request struct {
	ID      string
	Type    RequestType
	Status  RequestStatus
	Date    time.Time
	Details RequestDetails
	UserID  string
}

// RequestDetails is the opaque payload carried by a request. Only the fields
// relevant to the request's type are set.
type RequestDetails struct {
	Amount            string `json:"amount,omitempty"`
	TransactionNumber string `json:"transactionNumber,omitempty"`
	ReceiptRef        string `json:"receiptRef,omitempty"`
	ServiceID         string `json:"serviceId,omitempty"`
	AddressRef        string `json:"addressRef,omitempty"`
}

type RequestRepository interface {
	CreateRequest(request *Request) error
	GetRequestByID(requestID string) (*Request, error)
	GetUserRequests(userID string) ([]*Request, error)
	GetPendingRequests() ([]*Request, error)
	// ResolvePending moves the request out of pending. It returns ErrConflict
	// if the request was already resolved, so a resolution happens once.
	ResolvePending(requestID string, status RequestStatus) error
	WithTx(tx Tx) RequestRepository
}
