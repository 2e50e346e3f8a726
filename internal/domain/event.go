package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusOpen   EventStatus = "open"
	EventStatusClosed EventStatus = "closed"
)

type Event struct {
	ID        uuid.UUID   `json:"id"`
	CreatorID uuid.UUID   `json:"creator_id"`
	Title     string      `json:"title"`
	City      string      `json:"city"`
	StartsAt  time.Time   `json:"starts_at"`
	Status    EventStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	ClosedAt  *time.Time  `json:"closed_at,omitempty"`
}

func (e *Event) IsOpen() bool {
	return e.Status == EventStatusOpen
}
