package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radyab-gps/tracking-service/internal/domain"
	walletdto "github.com/radyab-gps/tracking-service/internal/usecase/dto/wallet"
)

func newRequestFixture() (*DefaultRequestUsecase, *fakeRequestRepo, *fakeWalletRepo) {
	walletRepo := newFakeWalletRepo()
	userRepo := &fakeUserRepo{users: []*domain.User{
		{ID: "user-1", Email: "one@example.com"},
	}}
	walletUc := NewDefaultWalletUsecase(walletRepo, userRepo, nil, testMetrics)

	requestRepo := newFakeRequestRepo()
	uc := NewDefaultRequestUsecase(requestRepo, walletUc, &fakeTxManager{})
	return uc, requestRepo, walletRepo
}

func submitRecharge(t *testing.T, uc *DefaultRequestUsecase, amount string) *domain.Request {
	t.Helper()
	request, err := uc.SubmitRecharge(&walletdto.SubmitRechargeInput{
		UserID:            "user-1",
		Amount:            dec(amount),
		TransactionNumber: "tx-9",
		ReceiptRef:        "receipt-1",
	})
	require.NoError(t, err)
	return request
}

func TestSubmitRecharge(t *testing.T) {
	uc, _, _ := newRequestFixture()

	request := submitRecharge(t, uc, "75.50")
	assert.Equal(t, domain.RequestTypeRecharge, request.Type)
	assert.Equal(t, domain.RequestStatusPending, request.Status)
	assert.True(t, dec(request.Details.Amount).Equal(dec("75.50")))

	pending, err := uc.GetPendingRequests()
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	mine, err := uc.GetUserRequests("user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestSubmitRechargeValidation(t *testing.T) {
	uc, _, _ := newRequestFixture()

	_, err := uc.SubmitRecharge(&walletdto.SubmitRechargeInput{
		UserID:            "user-1",
		Amount:            dec("-5"),
		TransactionNumber: "tx-9",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.SubmitRecharge(&walletdto.SubmitRechargeInput{
		UserID: "user-1",
		Amount: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConfirmRechargeCreditsExactlyOnce(t *testing.T) {
	uc, _, walletRepo := newRequestFixture()
	walletRepo.setBalance("user-1", dec("10.00"))

	request := submitRecharge(t, uc, "75.50")

	require.NoError(t, uc.ConfirmRecharge(request.ID, true))
	assert.True(t, walletRepo.balance("user-1").Equal(dec("85.50")))

	// A second confirmation loses the pending guard and credits nothing.
	err := uc.ConfirmRecharge(request.ID, true)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, walletRepo.balance("user-1").Equal(dec("85.50")))

	stored, err := uc.GetRequest(request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusConfirmed, stored.Status)
}

func TestRejectRechargeTouchesNoBalance(t *testing.T) {
	uc, _, walletRepo := newRequestFixture()
	walletRepo.setBalance("user-1", dec("10.00"))

	request := submitRecharge(t, uc, "75.50")

	require.NoError(t, uc.ConfirmRecharge(request.ID, false))
	assert.True(t, walletRepo.balance("user-1").Equal(dec("10.00")))

	stored, err := uc.GetRequest(request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, stored.Status)

	// A rejected request cannot later be confirmed.
	assert.ErrorIs(t, uc.ConfirmRecharge(request.ID, true), domain.ErrConflict)
}

func TestConfirmRechargeUnknownRequest(t *testing.T) {
	uc, _, _ := newRequestFixture()

	err := uc.ConfirmRecharge("missing", true)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestConfirmRechargeWrongType(t *testing.T) {
	uc, requestRepo, _ := newRequestFixture()

	require.NoError(t, requestRepo.CreateRequest(&domain.Request{
		ID:     "req-1",
		Type:   domain.RequestTypePurchase,
		Status: domain.RequestStatusPending,
		UserID: "user-1",
	}))

	err := uc.ConfirmRecharge("req-1", true)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConfirmRechargeFailedCreditLeavesRequestPending(t *testing.T) {
	uc, requestRepo, walletRepo := newRequestFixture()
	walletRepo.setBalance("user-1", dec("0.00"))
	request := submitRecharge(t, uc, "85.50")

	walletRepo.failCredits = true
	require.Error(t, uc.ConfirmRecharge(request.ID, true))

	// The resolution rolled back with the credit: still pending, no funds.
	stored, err := requestRepo.GetRequestByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, stored.Status)
	assert.True(t, walletRepo.balance("user-1").IsZero())

	// Once the wallet store recovers the same confirmation goes through.
	walletRepo.failCredits = false
	require.NoError(t, uc.ConfirmRecharge(request.ID, true))
	assert.True(t, walletRepo.balance("user-1").Equal(dec("85.50")))

	stored, err = requestRepo.GetRequestByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusConfirmed, stored.Status)
}
