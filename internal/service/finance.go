package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/config"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/ledger"
	"github.com/set-night/eventledger/internal/repository"
	"github.com/set-night/eventledger/internal/repository/sqlc"
	"github.com/shopspring/decimal"
)

type TransactionPage struct {
	Items  []domain.Transaction `json:"items"`
	Total  int64                `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// FinanceService answers read-side questions. Nothing it returns is stored;
// every figure is derived from the itemized records.
type FinanceService struct {
	store    repository.Store
	currency string
}

func NewFinanceService(store repository.Store, currency string) *FinanceService {
	return &FinanceService{store: store, currency: currency}
}

func (s *FinanceService) Summary(ctx context.Context, userID uuid.UUID) (*domain.FinanceSummary, error) {
	sum := domain.FinanceSummary{
		UserID:        userID,
		Currency:      s.currency,
		MinWithdrawal: ledger.MinWithdrawal,
	}
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		dues, err := q.SumPendingDuesByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("sum pending dues: %w", err)
		}
		sum.OutstandingDues = int(dues.Pending)
		sum.OutstandingDuesAmount = dues.Total

		sum.PendingCommission, err = q.SumCommissionsByCreator(ctx, sqlc.SumCommissionsByCreatorParams{
			CreatorID: userID,
			Statuses:  []string{string(domain.CommissionStatusPending)},
		})
		if err != nil {
			return fmt.Errorf("sum pending commission: %w", err)
		}

		sum.InFlightWithdrawals, err = q.SumWithdrawalsByUser(ctx, sqlc.SumWithdrawalsByUserParams{
			UserID:   userID,
			Statuses: inFlightWithdrawal,
		})
		if err != nil {
			return fmt.Errorf("sum in-flight withdrawals: %w", err)
		}
		sum.WithdrawnTotal, err = q.SumWithdrawalsByUser(ctx, sqlc.SumWithdrawalsByUserParams{
			UserID:   userID,
			Statuses: completedWithdrawal,
		})
		if err != nil {
			return fmt.Errorf("sum completed withdrawals: %w", err)
		}

		sum.AvailableBalance, err = availableBalance(ctx, q, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	sum.CanWithdraw = ledger.ValidateWithdrawalAmount(sum.AvailableBalance) == nil
	return &sum, nil
}

// Transactions pages through the user's history, newest first.
func (s *FinanceService) Transactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*TransactionPage, error) {
	if limit <= 0 {
		limit = config.DefaultPageSize
	}
	limit = min(limit, config.MaxPageSize)
	offset = min(max(offset, 0), math.MaxInt32)

	page := TransactionPage{Limit: limit, Offset: offset}
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		rows, err := q.ListTransactionsByUser(ctx, sqlc.ListTransactionsByUserParams{
			UserID: &userID,
			Limit:  int32(limit),
			Offset: int32(offset),
		})
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		page.Items = mapSlice(rows, toTransaction)
		page.Total, err = q.CountTransactionsByUser(ctx, &userID)
		if err != nil {
			return fmt.Errorf("count transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *FinanceService) Dues(ctx context.Context, userID uuid.UUID) ([]domain.Due, error) {
	var items []domain.Due
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		rows, err := q.ListDuesByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list dues: %w", err)
		}
		items = mapSlice(rows, toDue)
		return nil
	})
	return items, err
}

func (s *FinanceService) Commissions(ctx context.Context, userID uuid.UUID) ([]domain.Commission, error) {
	var items []domain.Commission
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		rows, err := q.ListCommissionsByCreator(ctx, userID)
		if err != nil {
			return fmt.Errorf("list commissions: %w", err)
		}
		items = mapSlice(rows, toCommission)
		return nil
	})
	return items, err
}

// Balance is the spendable commission of userID.
func (s *FinanceService) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		var err error
		balance, err = availableBalance(ctx, q, userID)
		return err
	})
	return balance, err
}

// EventLedger lists every transaction tied to an event, including the
// platform's share which belongs to no user.
func (s *FinanceService) EventLedger(ctx context.Context, eventID uuid.UUID) ([]domain.Transaction, error) {
	var items []domain.Transaction
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		if _, err := q.GetEvent(ctx, eventID); err != nil {
			return notFound(err, domain.ErrEventNotFound)
		}
		rows, err := q.ListTransactionsByEvent(ctx, &eventID)
		if err != nil {
			return fmt.Errorf("list event transactions: %w", err)
		}
		items = mapSlice(rows, toTransaction)
		return nil
	})
	return items, err
}
