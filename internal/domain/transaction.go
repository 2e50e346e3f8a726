package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxTypeDueAdded            TxType = "due_added"
	TxTypeDueCleared          TxType = "due_cleared"
	TxTypeCommissionEarned    TxType = "commission_earned"
	TxTypeCommissionAvailable TxType = "commission_available"
	TxTypeWithdrawalRequested TxType = "withdrawal_requested"
	TxTypeWithdrawalCompleted TxType = "withdrawal_completed"
	TxTypeWithdrawalFailed    TxType = "withdrawal_failed"
	TxTypeReferralReward      TxType = "referral_reward"
	TxTypePlatformRevenue     TxType = "platform_revenue"
)

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusCompleted TxStatus = "completed"
	TxStatusFailed    TxStatus = "failed"
)

// Transaction is an append-only record of money movement. Only Status and
// CompletedAt change after insert, and only out of pending.
type Transaction struct {
	ID            uuid.UUID        `json:"id"`
	UserID        *uuid.UUID       `json:"user_id,omitempty"`
	Type          TxType           `json:"type"`
	Status        TxStatus         `json:"status"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      string           `json:"currency"`
	EventID       *uuid.UUID       `json:"event_id,omitempty"`
	WithdrawalID  *uuid.UUID       `json:"withdrawal_id,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	GatewayFee    *decimal.Decimal `json:"gateway_fee,omitempty"`
	GST           *decimal.Decimal `json:"gst,omitempty"`
	NetAmount     *decimal.Decimal `json:"net_amount,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
}
