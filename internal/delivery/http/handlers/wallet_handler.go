package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	walletRequest "github.com/radyab-gps/tracking-service/internal/delivery/http/dto/wallet/request"
	walletResponse "github.com/radyab-gps/tracking-service/internal/delivery/http/dto/wallet/response"
	"github.com/radyab-gps/tracking-service/internal/domain"
	"github.com/radyab-gps/tracking-service/internal/usecase"
	walletdto "github.com/radyab-gps/tracking-service/internal/usecase/dto/wallet"
)

type WalletHandler struct {
	walletUc  usecase.WalletUsecase
	requestUc usecase.RequestUsecase
}

func NewWalletHandler(walletUc usecase.WalletUsecase, requestUc usecase.RequestUsecase) *WalletHandler {
	return &WalletHandler{
		walletUc:  walletUc,
		requestUc: requestUc,
	}
}

func (h *WalletHandler) GetBalance(c echo.Context) error {
	userID := currentUserID(c)

	balance, err := h.walletUc.GetBalance(userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, walletResponse.BalanceResponse{
		UserID:  userID,
		Balance: balance.StringFixed(2),
	})
}

func (h *WalletHandler) SubmitRecharge(c echo.Context) error {
	var req walletRequest.RechargeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: amount must be a decimal number", domain.ErrValidation))
	}

	request, err := h.requestUc.SubmitRecharge(&walletdto.SubmitRechargeInput{
		UserID:            currentUserID(c),
		Amount:            amount,
		TransactionNumber: req.TransactionNumber,
		ReceiptRef:        req.ReceiptRef,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toRequestResponse(request))
}

func (h *WalletHandler) GetRequests(c echo.Context) error {
	requests, err := h.requestUc.GetUserRequests(currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toRequestsResponse(requests))
}

func (h *WalletHandler) Transfer(c echo.Context) error {
	var req walletRequest.TransferRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrValidation))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: amount must be a decimal number", domain.ErrValidation))
	}

	output, err := h.walletUc.Transfer(&walletdto.TransferInput{
		SenderID:       currentUserID(c),
		RecipientEmail: req.RecipientEmail,
		Amount:         amount,
		Password:       req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, walletResponse.TransferResponse{
		Success:    true,
		NewBalance: output.NewBalance.StringFixed(2),
	})
}

func (h *WalletHandler) GetTransactions(c echo.Context) error {
	input := &walletdto.GetTransactionsInput{
		UserID:    currentUserID(c),
		Direction: c.QueryParam("direction"),
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			input.Offset = offset
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			input.Limit = limit
		}
	}

	transactions, err := h.walletUc.GetTransactions(input)
	if err != nil {
		return writeError(c, err)
	}

	items := make([]walletResponse.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		items = append(items, walletResponse.TransactionResponse{
			ID:             tx.ID,
			Amount:         tx.Amount.StringFixed(2),
			Direction:      string(tx.Direction),
			OtherSideEmail: tx.OtherSideEmail,
			Description:    tx.Description,
			CreatedAt:      tx.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, walletResponse.TransactionsResponse{
		Success:      true,
		Count:        len(items),
		Transactions: items,
	})
}

func toRequestResponse(request *domain.Request) walletResponse.RequestResponse {
	details := map[string]string{}
	if raw, err := json.Marshal(request.Details); err == nil {
		_ = json.Unmarshal(raw, &details)
	}
	return walletResponse.RequestResponse{
		ID:      request.ID,
		Type:    string(request.Type),
		Status:  string(request.Status),
		Date:    request.Date.UTC().Format(time.RFC3339),
		Details: details,
	}
}

func toRequestsResponse(requests []*domain.Request) walletResponse.RequestsResponse {
	items := make([]walletResponse.RequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, toRequestResponse(request))
	}
	return walletResponse.RequestsResponse{
		Success:  true,
		Count:    len(items),
		Requests: items,
	}
}
