package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DueStatus string

const (
	DueStatusPending DueStatus = "pending"
	DueStatusCleared DueStatus = "cleared"
)

type ClearedVia string

const (
	ClearedViaPayment    ClearedVia = "payment"
	ClearedViaCommission ClearedVia = "commission"
)

func (v ClearedVia) Valid() bool {
	return v == ClearedViaPayment || v == ClearedViaCommission
}

// Due is the fixed charge a participant owes for joining an event.
type Due struct {
	ID            uuid.UUID       `json:"id"`
	EventID       uuid.UUID       `json:"event_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        DueStatus       `json:"status"`
	ClearedVia    ClearedVia      `json:"cleared_via,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	ClearedAt     *time.Time      `json:"cleared_at,omitempty"`
}
