package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CommissionStatus string

const (
	CommissionStatusPending   CommissionStatus = "pending"
	CommissionStatusAvailable CommissionStatus = "available"
	CommissionStatusWithdrawn CommissionStatus = "withdrawn"
)

// Commission is the creator's share of the dues collected for one event.
type Commission struct {
	ID                      uuid.UUID        `json:"id"`
	EventID                 uuid.UUID        `json:"event_id"`
	CreatorID               uuid.UUID        `json:"creator_id"`
	TotalParticipants       int              `json:"total_participants"`
	ParticipantsDuesCleared int              `json:"participants_dues_cleared"`
	GrossAmount             decimal.Decimal  `json:"gross_amount"`
	Rate                    decimal.Decimal  `json:"rate"`
	CommissionAmount        decimal.Decimal  `json:"commission_amount"`
	Currency                string           `json:"currency"`
	Status                  CommissionStatus `json:"status"`
	CreatedAt               time.Time        `json:"created_at"`
	AvailableAt             *time.Time       `json:"available_at,omitempty"`
	WithdrawnAt             *time.Time       `json:"withdrawn_at,omitempty"`
}
