package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/config"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/ledger"
	"github.com/set-night/eventledger/internal/repository"
	"github.com/set-night/eventledger/internal/repository/sqlc"
	"github.com/shopspring/decimal"
)

type RequestWithdrawalInput struct {
	Amount decimal.Decimal    `json:"amount"`
	Bank   domain.BankDetails `json:"bank"`
}

// Quote previews a withdrawal without reserving anything.
type Quote struct {
	ledger.Breakdown
	AvailableBalance decimal.Decimal `json:"available_balance"`
	MinWithdrawal    decimal.Decimal `json:"min_withdrawal"`
	Eligible         bool            `json:"eligible"`
	Reason           string          `json:"reason,omitempty"`
}

const (
	QuoteReasonBelowMinimum        = "below_minimum_withdrawal"
	QuoteReasonInsufficientBalance = "insufficient_balance"
)

type WithdrawalService struct {
	store          repository.Store
	idempotency    IdempotencyStore
	notifier       Notifier
	currency       string
	idempotencyTTL time.Duration
}

func NewWithdrawalService(store repository.Store, idem IdempotencyStore, notifier Notifier, currency string, idempotencyTTL time.Duration) *WithdrawalService {
	return &WithdrawalService{
		store:          store,
		idempotency:    idem,
		notifier:       orNop(notifier),
		currency:       currency,
		idempotencyTTL: idempotencyTTL,
	}
}

// validateAmount rejects negative amounts and sub-paisa precision.
func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() || !amount.Equal(amount.Truncate(2)) {
		return domain.ErrInvalidAmount
	}
	return nil
}

// Quote returns the breakdown for amount, or for the whole available balance
// when amount is nil.
func (s *WithdrawalService) Quote(ctx context.Context, userID uuid.UUID, amount *decimal.Decimal) (*Quote, error) {
	if amount != nil {
		if err := validateAmount(*amount); err != nil {
			return nil, err
		}
	}

	var balance decimal.Decimal
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		var err error
		balance, err = availableBalance(ctx, q, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	gross := balance
	if amount != nil {
		gross = *amount
	}
	bd, err := ledger.CalculateWithdrawalBreakdown(gross)
	if err != nil {
		return nil, domain.ErrInvalidAmount
	}

	out := &Quote{
		Breakdown:        bd,
		AvailableBalance: balance,
		MinWithdrawal:    ledger.MinWithdrawal,
		Eligible:         true,
	}
	switch {
	case ledger.ValidateWithdrawalAmount(gross) != nil:
		out.Eligible, out.Reason = false, QuoteReasonBelowMinimum
	case balance.LessThan(gross):
		out.Eligible, out.Reason = false, QuoteReasonInsufficientBalance
	}
	return out, nil
}

// Request creates a pending withdrawal against the available commission
// balance. Replaying the same idempotency key with the same payload returns
// the original withdrawal with replayed set.
func (s *WithdrawalService) Request(ctx context.Context, userID uuid.UUID, in RequestWithdrawalInput, idempotencyKey string) (*domain.Withdrawal, bool, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		return nil, false, domain.ErrIdempotencyRequired
	}
	in.Bank = in.Bank.Normalize()
	if err := in.Bank.Validate(); err != nil {
		return nil, false, err
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, false, err
	}
	if err := ledger.ValidateWithdrawalAmount(in.Amount); err != nil {
		return nil, false, err
	}
	bd, err := ledger.CalculateWithdrawalBreakdown(in.Amount)
	if err != nil {
		return nil, false, domain.ErrInvalidAmount
	}

	key := idempotencyScope(userID, idempotencyKey)
	requestHash := hashPayload(struct {
		UserID uuid.UUID
		Amount string
		Bank   domain.BankDetails
	}{userID, in.Amount.String(), in.Bank})

	existing, err := s.idempotency.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if existing != nil {
		return s.replay(ctx, existing, requestHash)
	}
	ok, err := s.idempotency.Reserve(ctx, key, requestHash, s.idempotencyTTL)
	if err != nil {
		return nil, false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if !ok {
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, false, fmt.Errorf("idempotency lookup: %w", err)
		}
		if existing == nil {
			return nil, false, domain.ErrRequestInProgress
		}
		return s.replay(ctx, existing, requestHash)
	}

	created, err := s.create(ctx, userID, in, bd)
	if err != nil {
		if relErr := s.idempotency.Release(ctx, key); relErr != nil {
			slog.Warn("failed to release idempotency key", "key", key, "error", relErr)
		}
		return nil, false, err
	}

	if err := s.idempotency.Complete(ctx, key, IdempotencyRecord{
		RequestHash:  requestHash,
		WithdrawalID: created.ID,
	}, s.idempotencyTTL); err != nil {
		slog.Error("failed to complete idempotency key", "key", key, "withdrawal_id", created.ID, "error", err)
	}

	slog.Info("withdrawal requested", "withdrawal_id", created.ID, "user_id", userID, "gross", created.GrossAmount.String())
	s.notifier.WithdrawalRequested(ctx, *created)
	return created, false, nil
}

func (s *WithdrawalService) replay(ctx context.Context, rec *IdempotencyRecord, requestHash string) (*domain.Withdrawal, bool, error) {
	if rec.RequestHash != requestHash {
		return nil, false, domain.ErrIdempotencyConflict
	}
	if rec.InProgress() {
		return nil, false, domain.ErrRequestInProgress
	}
	w, err := s.Get(ctx, rec.WithdrawalID)
	if err != nil {
		return nil, false, err
	}
	return w, true, nil
}

func (s *WithdrawalService) create(ctx context.Context, userID uuid.UUID, in RequestWithdrawalInput, bd ledger.Breakdown) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		if _, err := q.UpsertAccount(ctx, sqlc.UpsertAccountParams{UserID: userID}); err != nil {
			return fmt.Errorf("upsert account: %w", err)
		}
		if _, err := q.GetAccountForUpdate(ctx, userID); err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		balance, err := availableBalance(ctx, q, userID)
		if err != nil {
			return err
		}
		if balance.LessThan(bd.Gross) {
			return domain.ErrInsufficientBalance
		}

		row, err := q.CreateWithdrawal(ctx, sqlc.CreateWithdrawalParams{
			ID:                uuid.New(),
			UserID:            userID,
			GrossAmount:       bd.Gross,
			GatewayFee:        bd.GatewayFee,
			Gst:               bd.GST,
			NetAmount:         bd.NetAmount,
			Currency:          s.currency,
			AccountHolderName: in.Bank.AccountHolderName,
			AccountNumber:     in.Bank.AccountNumber,
			IfscCode:          in.Bank.IFSCCode,
			BankName:          in.Bank.BankName,
			UpiID:             strPtr(in.Bank.UPIID),
		})
		if err != nil {
			return fmt.Errorf("create withdrawal: %w", err)
		}

		withdrawalID := row.ID
		if _, err := recordTx(ctx, q, txEntry{
			userID:       &userID,
			typ:          domain.TxTypeWithdrawalRequested,
			status:       domain.TxStatusPending,
			amount:       bd.Gross,
			currency:     s.currency,
			withdrawalID: &withdrawalID,
			breakdown:    &bd,
		}); err != nil {
			return err
		}

		w = toWithdrawal(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// MarkProcessing hands a pending withdrawal to the payout gateway.
func (s *WithdrawalService) MarkProcessing(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	w, err := s.transition(ctx, id, domain.WithdrawalStatusProcessing, "")
	if err != nil {
		return nil, err
	}
	slog.Info("withdrawal processing", "withdrawal_id", id)
	return w, nil
}

// Complete settles a processing withdrawal and retires the commission
// records its payouts have fully consumed.
func (s *WithdrawalService) Complete(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	w, err := s.transition(ctx, id, domain.WithdrawalStatusCompleted, "")
	if err != nil {
		return nil, err
	}
	slog.Info("withdrawal completed", "withdrawal_id", id, "net", w.NetAmount.String())
	s.notifier.WithdrawalCompleted(ctx, *w)
	return w, nil
}

// Fail rejects a pending or processing withdrawal. The gross amount returns
// to the available balance.
func (s *WithdrawalService) Fail(ctx context.Context, id uuid.UUID, reason string) (*domain.Withdrawal, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "rejected by operator"
	}
	w, err := s.transition(ctx, id, domain.WithdrawalStatusFailed, reason)
	if err != nil {
		return nil, err
	}
	slog.Info("withdrawal failed", "withdrawal_id", id, "reason", reason)
	s.notifier.WithdrawalFailed(ctx, *w)
	return w, nil
}

func (s *WithdrawalService) transition(ctx context.Context, id uuid.UUID, to domain.WithdrawalStatus, reason string) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		peek, err := q.GetWithdrawal(ctx, id)
		if err != nil {
			return notFound(err, domain.ErrWithdrawalNotFound)
		}
		if _, err := q.GetAccountForUpdate(ctx, peek.UserID); err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		row, err := q.GetWithdrawalForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock withdrawal: %w", err)
		}
		if err := ledger.WithdrawalTransition(domain.WithdrawalStatus(row.Status), to); err != nil {
			return err
		}

		row, err = q.UpdateWithdrawalStatus(ctx, sqlc.UpdateWithdrawalStatusParams{
			Status:        string(to),
			FailureReason: strPtr(reason),
			ID:            id,
		})
		if err != nil {
			return fmt.Errorf("update withdrawal status: %w", err)
		}

		switch to {
		case domain.WithdrawalStatusCompleted:
			if err := s.settle(ctx, q, row, domain.TxStatusCompleted, domain.TxTypeWithdrawalCompleted); err != nil {
				return err
			}
			if err := retireCommissions(ctx, q, row.UserID); err != nil {
				return err
			}
		case domain.WithdrawalStatusFailed:
			if err := s.settle(ctx, q, row, domain.TxStatusFailed, domain.TxTypeWithdrawalFailed); err != nil {
				return err
			}
		}

		w = toWithdrawal(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WithdrawalService) settle(ctx context.Context, q sqlc.Querier, row sqlc.Withdrawal, requested domain.TxStatus, typ domain.TxType) error {
	withdrawalID := row.ID
	if _, err := q.SettleWithdrawalRequest(ctx, sqlc.SettleWithdrawalRequestParams{
		WithdrawalID: &withdrawalID,
		Status:       string(requested),
	}); err != nil {
		return fmt.Errorf("settle withdrawal request: %w", err)
	}

	userID := row.UserID
	bd := ledger.Breakdown{Gross: row.GrossAmount, GatewayFee: row.GatewayFee, GST: row.Gst, NetAmount: row.NetAmount}
	_, err := recordTx(ctx, q, txEntry{
		userID:       &userID,
		typ:          typ,
		status:       domain.TxStatusCompleted,
		amount:       row.GrossAmount,
		currency:     row.Currency,
		withdrawalID: &withdrawalID,
		breakdown:    &bd,
	})
	return err
}

// retireCommissions marks available commissions withdrawn, oldest first, once
// completed payouts and due offsets have consumed them entirely.
func retireCommissions(ctx context.Context, q sqlc.Querier, userID uuid.UUID) error {
	rows, err := q.ListReleasedCommissionsByCreator(ctx, userID)
	if err != nil {
		return fmt.Errorf("list released commissions: %w", err)
	}
	paid, err := q.SumWithdrawalsByUser(ctx, sqlc.SumWithdrawalsByUserParams{
		UserID:   userID,
		Statuses: completedWithdrawal,
	})
	if err != nil {
		return fmt.Errorf("sum completed withdrawals: %w", err)
	}
	offsets, err := q.SumCommissionOffsetsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("sum offsets: %w", err)
	}

	for _, id := range ledger.ConsumedCommissions(mapSlice(rows, toCommission), paid.Add(offsets)) {
		if _, err := q.MarkCommissionWithdrawn(ctx, id); err != nil {
			return fmt.Errorf("mark commission withdrawn: %w", err)
		}
	}
	return nil
}

func (s *WithdrawalService) Get(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		row, err := q.GetWithdrawal(ctx, id)
		if err != nil {
			return notFound(err, domain.ErrWithdrawalNotFound)
		}
		w = toWithdrawal(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WithdrawalService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Withdrawal, error) {
	var items []domain.Withdrawal
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		rows, err := q.ListWithdrawalsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list withdrawals: %w", err)
		}
		items = mapSlice(rows, toWithdrawal)
		return nil
	})
	return items, err
}

// ListByStatus returns the oldest withdrawals in any of statuses, for the
// operator queue.
func (s *WithdrawalService) ListByStatus(ctx context.Context, limit int, statuses ...domain.WithdrawalStatus) ([]domain.Withdrawal, error) {
	if len(statuses) == 0 {
		return nil, errors.New("no statuses given")
	}
	if limit <= 0 {
		limit = config.DefaultPageSize
	}
	limit = min(limit, config.MaxPageSize)
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}

	var items []domain.Withdrawal
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		rows, err := q.ListWithdrawalsByStatus(ctx, sqlc.ListWithdrawalsByStatusParams{
			Statuses: names,
			RowLimit: int32(limit),
		})
		if err != nil {
			return fmt.Errorf("list withdrawals by status: %w", err)
		}
		items = mapSlice(rows, toWithdrawal)
		return nil
	})
	return items, err
}
