package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/repository"
	"github.com/set-night/eventledger/internal/repository/sqlc"
)

type AccountService struct {
	store    repository.Store
	notifier Notifier
}

func NewAccountService(store repository.Store, notifier Notifier) *AccountService {
	return &AccountService{store: store, notifier: orNop(notifier)}
}

// Ensure creates the account on first sight. An empty displayName keeps the
// stored one.
func (s *AccountService) Ensure(ctx context.Context, userID uuid.UUID, displayName string) (*domain.Account, error) {
	var acc domain.Account
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		row, err := q.UpsertAccount(ctx, sqlc.UpsertAccountParams{UserID: userID, DisplayName: displayName})
		if err != nil {
			return fmt.Errorf("upsert account: %w", err)
		}
		acc = toAccount(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *AccountService) Get(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	var acc domain.Account
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		row, err := q.GetAccount(ctx, userID)
		if err != nil {
			return notFound(err, domain.ErrAccountNotFound)
		}
		acc = toAccount(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// SubmitKYC moves an unverified or rejected account into review. Resubmitting
// while already pending is a no-op.
func (s *AccountService) SubmitKYC(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	var (
		acc     domain.Account
		changed bool
	)
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		if _, err := q.UpsertAccount(ctx, sqlc.UpsertAccountParams{UserID: userID}); err != nil {
			return fmt.Errorf("upsert account: %w", err)
		}
		row, err := q.GetAccountForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		switch domain.KYCStatus(row.KycStatus) {
		case domain.KYCStatusVerified:
			return domain.ErrKYCAlreadyVerified
		case domain.KYCStatusPending:
			acc = toAccount(row)
			return nil
		}

		row, err = q.SetAccountKYCStatus(ctx, sqlc.SetAccountKYCStatusParams{
			UserID:    userID,
			KycStatus: string(domain.KYCStatusPending),
		})
		if err != nil {
			return fmt.Errorf("set kyc status: %w", err)
		}
		acc = toAccount(row)
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifier.KYCSubmitted(ctx, acc)
	}
	return &acc, nil
}

// ReviewKYC settles a pending KYC review.
func (s *AccountService) ReviewKYC(ctx context.Context, userID uuid.UUID, approve bool) (*domain.Account, error) {
	next := domain.KYCStatusRejected
	if approve {
		next = domain.KYCStatusVerified
	}

	var acc domain.Account
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		row, err := q.GetAccountForUpdate(ctx, userID)
		if err != nil {
			return notFound(err, domain.ErrAccountNotFound)
		}
		if domain.KYCStatus(row.KycStatus) != domain.KYCStatusPending {
			return domain.ErrKYCNotPending
		}
		row, err = q.SetAccountKYCStatus(ctx, sqlc.SetAccountKYCStatusParams{UserID: userID, KycStatus: string(next)})
		if err != nil {
			return fmt.Errorf("set kyc status: %w", err)
		}
		acc = toAccount(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("kyc reviewed", "user_id", userID, "status", next)
	return &acc, nil
}
