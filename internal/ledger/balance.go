package ledger

import (
	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/shopspring/decimal"
)

// AvailableBalance derives the spendable commission pool. earned is the sum
// of released commissions (available or withdrawn), committed is the gross of
// every withdrawal that has not failed, offsets is dues paid from commission.
func AvailableBalance(earned, committed, offsets decimal.Decimal) decimal.Decimal {
	return earned.Sub(committed).Sub(offsets)
}

// ConsumedCommissions returns the ids of available commissions that are fully
// covered by consumed, walking records oldest first. Records already marked
// withdrawn still count toward the running total.
func ConsumedCommissions(released []domain.Commission, consumed decimal.Decimal) []uuid.UUID {
	var ids []uuid.UUID
	running := decimal.Zero
	for _, c := range released {
		running = running.Add(c.CommissionAmount)
		if running.GreaterThan(consumed) {
			break
		}
		if c.Status == domain.CommissionStatusAvailable {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
