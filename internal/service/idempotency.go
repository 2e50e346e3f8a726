package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord remembers which withdrawal an Idempotency-Key produced.
// WithdrawalID is uuid.Nil while the first request is still running.
type IdempotencyRecord struct {
	RequestHash  string    `json:"request_hash"`
	WithdrawalID uuid.UUID `json:"withdrawal_id"`
}

func (r IdempotencyRecord) InProgress() bool {
	return r.WithdrawalID == uuid.Nil
}

type IdempotencyStore interface {
	// Get returns nil, nil when the key is unknown or expired.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Reserve claims key for a new request. It reports false when another
	// request already holds the key.
	Reserve(ctx context.Context, key, requestHash string, ttl time.Duration) (bool, error)
	Complete(ctx context.Context, key string, rec IdempotencyRecord, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

func idempotencyScope(userID uuid.UUID, key string) string {
	return userID.String() + ":" + key
}

func hashPayload(value any) string {
	blob, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])
}
