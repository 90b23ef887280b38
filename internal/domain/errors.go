package domain

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrDeviceNotFound      = errors.New("device not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrRequestNotFound     = errors.New("request not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrSubPlanNotFound     = errors.New("subplan not found")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAccessDenied        = errors.New("access denied")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrConflict            = errors.New("concurrent modification")
	ErrAccessExists        = errors.New("device already visible to user")
	ErrAccessNotGranted    = errors.New("device not visible to user")
)
