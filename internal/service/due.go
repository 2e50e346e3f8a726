package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/ledger"
	"github.com/set-night/eventledger/internal/repository"
	"github.com/set-night/eventledger/internal/repository/sqlc"
)

type ClearDueInput struct {
	Via           domain.ClearedVia `json:"via"`
	PaymentMethod string            `json:"payment_method,omitempty"`
}

type ClearDueResult struct {
	Due        domain.Due         `json:"due"`
	Commission *domain.Commission `json:"commission,omitempty"`
}

type DueService struct {
	store    repository.Store
	notifier Notifier
}

func NewDueService(store repository.Store, notifier Notifier) *DueService {
	return &DueService{store: store, notifier: orNop(notifier)}
}

// Clear settles a participant's due, either by payment or by spending the
// participant's own available commission. Locks are taken event first, then
// due, then account. When the event is already closed the commission counters
// advance, and the commission is released once every due is cleared.
func (s *DueService) Clear(ctx context.Context, dueID, userID uuid.UUID, in ClearDueInput) (*ClearDueResult, error) {
	if !in.Via.Valid() {
		return nil, domain.ErrInvalidPayment
	}
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	if in.Via == domain.ClearedViaPayment && in.PaymentMethod == "" {
		return nil, domain.ErrInvalidPayment
	}
	if in.Via == domain.ClearedViaCommission {
		in.PaymentMethod = ""
	}

	var (
		res      ClearDueResult
		released bool
	)
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		peek, err := q.GetDue(ctx, dueID)
		if err != nil {
			return notFound(err, domain.ErrDueNotFound)
		}
		if peek.UserID != userID {
			return domain.ErrForbidden
		}

		ev, err := q.GetEventForUpdate(ctx, peek.EventID)
		if err != nil {
			return fmt.Errorf("lock event: %w", err)
		}
		due, err := q.GetDueForUpdate(ctx, dueID)
		if err != nil {
			return fmt.Errorf("lock due: %w", err)
		}
		if domain.DueStatus(due.Status) == domain.DueStatusCleared {
			return domain.ErrDueAlreadyCleared
		}
		if err := ledger.DueTransition(domain.DueStatus(due.Status), domain.DueStatusCleared); err != nil {
			return err
		}

		if in.Via == domain.ClearedViaCommission {
			if _, err := q.GetAccountForUpdate(ctx, userID); err != nil {
				return notFound(err, domain.ErrAccountNotFound)
			}
			balance, err := availableBalance(ctx, q, userID)
			if err != nil {
				return err
			}
			if balance.LessThan(due.Amount) {
				return domain.ErrInsufficientBalance
			}
		}

		via := string(in.Via)
		due, err = q.ClearDue(ctx, sqlc.ClearDueParams{
			ID:            dueID,
			ClearedVia:    &via,
			PaymentMethod: strPtr(in.PaymentMethod),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrDueAlreadyCleared
			}
			return fmt.Errorf("clear due: %w", err)
		}

		eventID := due.EventID
		if _, err := recordTx(ctx, q, txEntry{
			userID:        &userID,
			typ:           domain.TxTypeDueCleared,
			status:        domain.TxStatusCompleted,
			amount:        due.Amount,
			currency:      due.Currency,
			eventID:       &eventID,
			paymentMethod: firstNonEmpty(in.PaymentMethod, via),
		}); err != nil {
			return err
		}
		res.Due = toDue(due)
		if in.Via == domain.ClearedViaCommission {
			if err := retireCommissions(ctx, q, userID); err != nil {
				return err
			}
		}

		if domain.EventStatus(ev.Status) != domain.EventStatusClosed {
			return nil
		}
		c, err := q.GetCommissionByEventForUpdate(ctx, eventID)
		if err != nil {
			return notFound(err, domain.ErrCommissionNotFound)
		}
		c, released, err = refreshCommission(ctx, q, c)
		if err != nil {
			return err
		}
		dc := toCommission(c)
		res.Commission = &dc
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("due cleared", "due_id", dueID, "user_id", userID, "via", in.Via)
	if released {
		s.notifier.CommissionAvailable(ctx, *res.Commission)
	}
	return &res, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
