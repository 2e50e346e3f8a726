package domain

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrDueNotFound         = errors.New("due not found")
	ErrCommissionNotFound  = errors.New("commission not found")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrForbidden           = errors.New("forbidden")
	ErrKYCRequired         = errors.New("kyc verification required")
	ErrKYCNotPending       = errors.New("kyc is not awaiting review")
	ErrKYCAlreadyVerified  = errors.New("kyc already verified")
	ErrEventClosed         = errors.New("event is closed")
	ErrAlreadyJoined       = errors.New("already joined this event")
	ErrCreatorCannotJoin   = errors.New("creator cannot join own event")
	ErrDueAlreadyCleared   = errors.New("due already cleared")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidBankDetails  = errors.New("invalid bank details")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrInvalidEvent        = errors.New("invalid event")
	ErrIdempotencyRequired = errors.New("idempotency key required")
	ErrIdempotencyConflict = errors.New("idempotency key reused with different request")
	ErrRequestInProgress   = errors.New("request with this idempotency key is in progress")
)
