package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/ledger"
	"github.com/set-night/eventledger/internal/repository/sqlc"
	"github.com/shopspring/decimal"
)

var (
	releasedCommission  = []string{string(domain.CommissionStatusAvailable), string(domain.CommissionStatusWithdrawn)}
	committedWithdrawal = []string{string(domain.WithdrawalStatusPending), string(domain.WithdrawalStatusProcessing), string(domain.WithdrawalStatusCompleted)}
	inFlightWithdrawal  = []string{string(domain.WithdrawalStatusPending), string(domain.WithdrawalStatusProcessing)}
	completedWithdrawal = []string{string(domain.WithdrawalStatusCompleted)}
)

type txEntry struct {
	userID        *uuid.UUID
	typ           domain.TxType
	status        domain.TxStatus
	amount        decimal.Decimal
	currency      string
	eventID       *uuid.UUID
	withdrawalID  *uuid.UUID
	paymentMethod string
	breakdown     *ledger.Breakdown
}

func recordTx(ctx context.Context, q sqlc.Querier, e txEntry) (sqlc.Transaction, error) {
	arg := sqlc.CreateTransactionParams{
		ID:            uuid.New(),
		UserID:        e.userID,
		Type:          string(e.typ),
		Status:        string(e.status),
		Amount:        e.amount,
		Currency:      e.currency,
		EventID:       e.eventID,
		WithdrawalID:  e.withdrawalID,
		PaymentMethod: strPtr(e.paymentMethod),
	}
	if e.breakdown != nil {
		arg.GatewayFee = nullDecimal(e.breakdown.GatewayFee)
		arg.Gst = nullDecimal(e.breakdown.GST)
		arg.NetAmount = nullDecimal(e.breakdown.NetAmount)
	}
	if e.status != domain.TxStatusPending {
		arg.CompletedAt = timeToPgTimestamptz(time.Now())
	}

	t, err := q.CreateTransaction(ctx, arg)
	if err != nil {
		return sqlc.Transaction{}, fmt.Errorf("create %s transaction: %w", e.typ, err)
	}
	return t, nil
}

// availableBalance derives the spendable commission of userID from the
// itemized records. Callers that spend it must hold the account row lock.
func availableBalance(ctx context.Context, q sqlc.Querier, userID uuid.UUID) (decimal.Decimal, error) {
	earned, err := q.SumCommissionsByCreator(ctx, sqlc.SumCommissionsByCreatorParams{
		CreatorID: userID,
		Statuses:  releasedCommission,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum commissions: %w", err)
	}
	committed, err := q.SumWithdrawalsByUser(ctx, sqlc.SumWithdrawalsByUserParams{
		UserID:   userID,
		Statuses: committedWithdrawal,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum withdrawals: %w", err)
	}
	offsets, err := q.SumCommissionOffsetsByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum offsets: %w", err)
	}
	return ledger.AvailableBalance(earned, committed, offsets), nil
}

// refreshCommission recomputes the collected dues of a pending commission and
// releases it once every participant has cleared. The caller holds the event
// row lock. The bool is true only on the call that made it available.
func refreshCommission(ctx context.Context, q sqlc.Querier, c sqlc.Commission) (sqlc.Commission, bool, error) {
	if domain.CommissionStatus(c.Status) != domain.CommissionStatusPending {
		return c, false, nil
	}

	sum, err := q.SumClearedDuesByEvent(ctx, c.EventID)
	if err != nil {
		return c, false, fmt.Errorf("sum cleared dues: %w", err)
	}
	c, err = q.UpdateCommissionProgress(ctx, sqlc.UpdateCommissionProgressParams{
		ID:                      c.ID,
		ParticipantsDuesCleared: int32(sum.Cleared),
		GrossAmount:             sum.Total,
		CommissionAmount:        ledger.CommissionFor(sum.Total),
	})
	if err != nil {
		return c, false, fmt.Errorf("update commission progress: %w", err)
	}

	if !ledger.CommissionReady(int(c.ParticipantsDuesCleared), int(c.TotalParticipants)) {
		return c, false, nil
	}
	if err := ledger.CommissionTransition(domain.CommissionStatus(c.Status), domain.CommissionStatusAvailable); err != nil {
		return c, false, err
	}

	c, err = q.MarkCommissionAvailable(ctx, c.ID)
	if err != nil {
		return c, false, fmt.Errorf("mark commission available: %w", err)
	}
	eventID := c.EventID
	if _, err := q.SettleCommissionEarned(ctx, &eventID); err != nil {
		return c, false, fmt.Errorf("settle commission earned: %w", err)
	}

	creatorID := c.CreatorID
	if _, err := recordTx(ctx, q, txEntry{
		userID:   &creatorID,
		typ:      domain.TxTypeCommissionAvailable,
		status:   domain.TxStatusCompleted,
		amount:   c.CommissionAmount,
		currency: c.Currency,
		eventID:  &eventID,
	}); err != nil {
		return c, false, err
	}
	if _, err := recordTx(ctx, q, txEntry{
		typ:      domain.TxTypePlatformRevenue,
		status:   domain.TxStatusCompleted,
		amount:   ledger.PlatformShare(c.GrossAmount),
		currency: c.Currency,
		eventID:  &eventID,
	}); err != nil {
		return c, false, err
	}
	return c, true, nil
}
