package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceSummary is derived from itemized records on every read.
type FinanceSummary struct {
	UserID                uuid.UUID       `json:"user_id"`
	Currency              string          `json:"currency"`
	OutstandingDues       int             `json:"outstanding_dues"`
	OutstandingDuesAmount decimal.Decimal `json:"outstanding_dues_amount"`
	PendingCommission     decimal.Decimal `json:"pending_commission"`
	AvailableBalance      decimal.Decimal `json:"available_balance"`
	InFlightWithdrawals   decimal.Decimal `json:"in_flight_withdrawals"`
	WithdrawnTotal        decimal.Decimal `json:"withdrawn_total"`
	MinWithdrawal         decimal.Decimal `json:"min_withdrawal"`
	CanWithdraw           bool            `json:"can_withdraw"`
}
