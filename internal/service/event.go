package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/ledger"
	"github.com/set-night/eventledger/internal/repository"
	"github.com/set-night/eventledger/internal/repository/sqlc"
	"github.com/shopspring/decimal"
)

type CreateEventInput struct {
	Title    string    `json:"title"`
	City     string    `json:"city"`
	StartsAt time.Time `json:"starts_at"`
}

// JoinResult is returned by Join: the participant's new due.
type JoinResult struct {
	Event domain.Event `json:"event"`
	Due   domain.Due   `json:"due"`
}

// CloseResult reports the commission created when an event closes. Commission
// is nil when nobody joined.
type CloseResult struct {
	Event      domain.Event       `json:"event"`
	Commission *domain.Commission `json:"commission,omitempty"`
}

type EventService struct {
	store    repository.Store
	notifier Notifier
	currency string
}

func NewEventService(store repository.Store, notifier Notifier, currency string) *EventService {
	return &EventService{store: store, notifier: orNop(notifier), currency: currency}
}

// Create registers an event. Only KYC-verified users may create events, and
// every event needs a title and a start time.
func (s *EventService) Create(ctx context.Context, creatorID uuid.UUID, in CreateEventInput) (*domain.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.City = strings.TrimSpace(in.City)
	if in.Title == "" || in.StartsAt.IsZero() {
		return nil, domain.ErrInvalidEvent
	}

	var ev domain.Event
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		acc, err := q.GetAccount(ctx, creatorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrKYCRequired
			}
			return fmt.Errorf("get account: %w", err)
		}
		if domain.KYCStatus(acc.KycStatus) != domain.KYCStatusVerified {
			return domain.ErrKYCRequired
		}

		row, err := q.CreateEvent(ctx, sqlc.CreateEventParams{
			ID:        uuid.New(),
			CreatorID: creatorID,
			Title:     in.Title,
			City:      in.City,
			StartsAt:  timeToPgTimestamptz(in.StartsAt),
		})
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		ev = toEvent(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *EventService) Get(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	var ev domain.Event
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		row, err := q.GetEvent(ctx, eventID)
		if err != nil {
			return notFound(err, domain.ErrEventNotFound)
		}
		ev = toEvent(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Join adds userID as a participant and charges the fixed due.
func (s *EventService) Join(ctx context.Context, eventID, userID uuid.UUID) (*JoinResult, error) {
	var res JoinResult
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		ev, err := q.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return notFound(err, domain.ErrEventNotFound)
		}
		if domain.EventStatus(ev.Status) != domain.EventStatusOpen {
			return domain.ErrEventClosed
		}
		if ev.CreatorID == userID {
			return domain.ErrCreatorCannotJoin
		}

		if _, err := q.GetDueByEventAndUser(ctx, sqlc.GetDueByEventAndUserParams{EventID: eventID, UserID: userID}); err == nil {
			return domain.ErrAlreadyJoined
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("get due: %w", err)
		}

		if _, err := q.UpsertAccount(ctx, sqlc.UpsertAccountParams{UserID: userID}); err != nil {
			return fmt.Errorf("upsert account: %w", err)
		}
		due, err := q.CreateDue(ctx, sqlc.CreateDueParams{
			ID:       uuid.New(),
			EventID:  eventID,
			UserID:   userID,
			Amount:   ledger.DueAmount,
			Currency: s.currency,
		})
		if err != nil {
			return fmt.Errorf("create due: %w", err)
		}

		if _, err := recordTx(ctx, q, txEntry{
			userID:   &userID,
			typ:      domain.TxTypeDueAdded,
			status:   domain.TxStatusCompleted,
			amount:   due.Amount,
			currency: due.Currency,
			eventID:  &eventID,
		}); err != nil {
			return err
		}

		res = JoinResult{Event: toEvent(ev), Due: toDue(due)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Close ends registration. The commission record is created from the
// participant count at this point and released immediately when every due is
// already cleared.
func (s *EventService) Close(ctx context.Context, eventID, actorID uuid.UUID) (*CloseResult, error) {
	var (
		res      CloseResult
		released bool
	)
	err := s.store.InTx(ctx, func(q sqlc.Querier) error {
		ev, err := q.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return notFound(err, domain.ErrEventNotFound)
		}
		if ev.CreatorID != actorID {
			return domain.ErrForbidden
		}
		if domain.EventStatus(ev.Status) != domain.EventStatusOpen {
			return domain.ErrEventClosed
		}

		ev, err = q.CloseEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("close event: %w", err)
		}
		res.Event = toEvent(ev)

		total, err := q.CountDuesByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count dues: %w", err)
		}
		if total == 0 {
			return nil
		}

		sum, err := q.SumClearedDuesByEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("sum cleared dues: %w", err)
		}
		c, err := q.CreateCommission(ctx, sqlc.CreateCommissionParams{
			ID:                      uuid.New(),
			EventID:                 eventID,
			CreatorID:               ev.CreatorID,
			TotalParticipants:       int32(total),
			ParticipantsDuesCleared: int32(sum.Cleared),
			GrossAmount:             sum.Total,
			Rate:                    ledger.CommissionRate,
			CommissionAmount:        ledger.CommissionFor(sum.Total),
			Currency:                s.currency,
		})
		if err != nil {
			return fmt.Errorf("create commission: %w", err)
		}

		expected := ledger.CommissionFor(ledger.DueAmount.Mul(decimal.NewFromInt(total)))
		creatorID := ev.CreatorID
		if _, err := recordTx(ctx, q, txEntry{
			userID:   &creatorID,
			typ:      domain.TxTypeCommissionEarned,
			status:   domain.TxStatusPending,
			amount:   expected,
			currency: s.currency,
			eventID:  &eventID,
		}); err != nil {
			return err
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

	slog.Info("event closed", "event_id", eventID, "has_commission", res.Commission != nil)
	if released {
		s.notifier.CommissionAvailable(ctx, *res.Commission)
	}
	return &res, nil
}
