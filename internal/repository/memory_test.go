package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/set-night/eventledger/internal/repository/sqlc"
	"github.com/shopspring/decimal"
)

func seedEvent(t *testing.T, s *MemStore) (creator, event uuid.UUID) {
	t.Helper()
	creator, event = uuid.New(), uuid.New()
	err := s.InTx(context.Background(), func(q sqlc.Querier) error {
		if _, err := q.UpsertAccount(context.Background(), sqlc.UpsertAccountParams{UserID: creator, DisplayName: "creator"}); err != nil {
			return err
		}
		_, err := q.CreateEvent(context.Background(), sqlc.CreateEventParams{ID: event, CreatorID: creator, Title: "Board games"})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return creator, event
}

func TestMemStoreRollsBackOnError(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	user := uuid.New()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(q sqlc.Querier) error {
		if _, err := q.UpsertAccount(ctx, sqlc.UpsertAccountParams{UserID: user}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	err = s.InTx(ctx, func(q sqlc.Querier) error {
		_, err := q.GetAccount(ctx, user)
		return err
	})
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("account survived rollback: %v", err)
	}
}

func TestMemStoreUniqueDuePerParticipant(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	_, event := seedEvent(t, s)
	user := uuid.New()

	create := func() error {
		return s.InTx(ctx, func(q sqlc.Querier) error {
			if _, err := q.UpsertAccount(ctx, sqlc.UpsertAccountParams{UserID: user}); err != nil {
				return err
			}
			_, err := q.CreateDue(ctx, sqlc.CreateDueParams{
				ID: uuid.New(), EventID: event, UserID: user, Amount: decimal.NewFromInt(25), Currency: "INR",
			})
			return err
		})
	}
	if err := create(); err != nil {
		t.Fatalf("first due: %v", err)
	}
	if err := create(); !errors.Is(err, ErrUniqueViolation) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestMemStoreStatusGuardedUpdates(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	_, event := seedEvent(t, s)
	user := uuid.New()
	dueID := uuid.New()
	via := "payment"

	err := s.InTx(ctx, func(q sqlc.Querier) error {
		if _, err := q.UpsertAccount(ctx, sqlc.UpsertAccountParams{UserID: user}); err != nil {
			return err
		}
		if _, err := q.CreateDue(ctx, sqlc.CreateDueParams{
			ID: dueID, EventID: event, UserID: user, Amount: decimal.NewFromInt(25), Currency: "INR",
		}); err != nil {
			return err
		}
		if _, err := q.ClearDue(ctx, sqlc.ClearDueParams{ID: dueID, ClearedVia: &via}); err != nil {
			return err
		}
		if _, err := q.ClearDue(ctx, sqlc.ClearDueParams{ID: dueID, ClearedVia: &via}); !errors.Is(err, pgx.ErrNoRows) {
			t.Errorf("second clear: expected ErrNoRows, got %v", err)
		}
		if _, err := q.CloseEvent(ctx, event); err != nil {
			return err
		}
		if _, err := q.CloseEvent(ctx, event); !errors.Is(err, pgx.ErrNoRows) {
			t.Errorf("second close: expected ErrNoRows, got %v", err)
		}
		row, err := q.SumClearedDuesByEvent(ctx, event)
		if err != nil {
			return err
		}
		if row.Cleared != 1 || !row.Total.Equal(decimal.NewFromInt(25)) {
			t.Errorf("cleared sum = %d/%s", row.Cleared, row.Total)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
}

func TestMemStoreTransactionPaging(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	user := uuid.New()

	var ids []uuid.UUID
	err := s.InTx(ctx, func(q sqlc.Querier) error {
		for i := 0; i < 5; i++ {
			tx, err := q.CreateTransaction(ctx, sqlc.CreateTransactionParams{
				ID: uuid.New(), UserID: &user, Type: "due_added", Status: "pending",
				Amount: decimal.NewFromInt(int64(i)), Currency: "INR",
			})
			if err != nil {
				return err
			}
			ids = append(ids, tx.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_ = s.InTx(ctx, func(q sqlc.Querier) error {
		page, err := q.ListTransactionsByUser(ctx, sqlc.ListTransactionsByUserParams{UserID: &user, Limit: 2, Offset: 1})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(page) != 2 || page[0].ID != ids[3] || page[1].ID != ids[2] {
			t.Errorf("unexpected page order")
		}
		n, _ := q.CountTransactionsByUser(ctx, &user)
		if n != 5 {
			t.Errorf("count = %d, want 5", n)
		}
		tail, _ := q.ListTransactionsByUser(ctx, sqlc.ListTransactionsByUserParams{UserID: &user, Limit: 10, Offset: 10})
		if len(tail) != 0 {
			t.Errorf("offset past end returned %d rows", len(tail))
		}
		return nil
	})
}

func TestMemStoreCanceledContext(t *testing.T) {
	s := NewMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.InTx(ctx, func(sqlc.Querier) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected canceled without running fn, got %v called=%v", err, called)
	}
}
