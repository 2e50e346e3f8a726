package repository

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/set-night/eventledger/internal/repository/sqlc"
	"github.com/shopspring/decimal"
)

var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

type memState struct {
	accounts     map[uuid.UUID]sqlc.Account
	events       map[uuid.UUID]sqlc.Event
	dues         map[uuid.UUID]sqlc.Due
	commissions  map[uuid.UUID]sqlc.Commission
	withdrawals  map[uuid.UUID]sqlc.Withdrawal
	transactions map[uuid.UUID]sqlc.Transaction
}

func newMemState() *memState {
	return &memState{
		accounts:     make(map[uuid.UUID]sqlc.Account),
		events:       make(map[uuid.UUID]sqlc.Event),
		dues:         make(map[uuid.UUID]sqlc.Due),
		commissions:  make(map[uuid.UUID]sqlc.Commission),
		withdrawals:  make(map[uuid.UUID]sqlc.Withdrawal),
		transactions: make(map[uuid.UUID]sqlc.Transaction),
	}
}

func (st *memState) clone() *memState {
	return &memState{
		accounts:     maps.Clone(st.accounts),
		events:       maps.Clone(st.events),
		dues:         maps.Clone(st.dues),
		commissions:  maps.Clone(st.commissions),
		withdrawals:  maps.Clone(st.withdrawals),
		transactions: maps.Clone(st.transactions),
	}
}

// MemStore keeps the ledger in process memory. Transactions are fully
// serialized and roll back by restoring a snapshot, which gives the same
// isolation the row locks give in PostgreSQL.
type MemStore struct {
	mu   sync.Mutex
	st   *memState
	last time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{st: newMemState()}
}

func (s *MemStore) InTx(ctx context.Context, fn func(q sqlc.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.st.clone()
	if err := fn(&memQueries{s: s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// now is strictly increasing so ordering by timestamp is stable.
func (s *MemStore) now() pgtype.Timestamptz {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return pgtype.Timestamptz{Time: t, Valid: true}
}

type memQueries struct {
	s *MemStore
}

var _ sqlc.Querier = (*memQueries)(nil)

func (q *memQueries) st() *memState { return q.s.st }

// accounts

func (q *memQueries) UpsertAccount(_ context.Context, arg sqlc.UpsertAccountParams) (sqlc.Account, error) {
	now := q.s.now()
	a, ok := q.st().accounts[arg.UserID]
	if !ok {
		a = sqlc.Account{
			UserID:      arg.UserID,
			DisplayName: arg.DisplayName,
			KycStatus:   "unverified",
			CreatedAt:   now,
		}
	} else if arg.DisplayName != "" {
		a.DisplayName = arg.DisplayName
	}
	a.UpdatedAt = now
	q.st().accounts[arg.UserID] = a
	return a, nil
}

func (q *memQueries) GetAccount(_ context.Context, userID uuid.UUID) (sqlc.Account, error) {
	a, ok := q.st().accounts[userID]
	if !ok {
		return sqlc.Account{}, pgx.ErrNoRows
	}
	return a, nil
}

func (q *memQueries) GetAccountForUpdate(ctx context.Context, userID uuid.UUID) (sqlc.Account, error) {
	return q.GetAccount(ctx, userID)
}

func (q *memQueries) SetAccountKYCStatus(_ context.Context, arg sqlc.SetAccountKYCStatusParams) (sqlc.Account, error) {
	a, ok := q.st().accounts[arg.UserID]
	if !ok {
		return sqlc.Account{}, pgx.ErrNoRows
	}
	a.KycStatus = arg.KycStatus
	a.UpdatedAt = q.s.now()
	q.st().accounts[arg.UserID] = a
	return a, nil
}

// events

func (q *memQueries) CreateEvent(_ context.Context, arg sqlc.CreateEventParams) (sqlc.Event, error) {
	if _, ok := q.st().events[arg.ID]; ok {
		return sqlc.Event{}, ErrUniqueViolation
	}
	if _, ok := q.st().accounts[arg.CreatorID]; !ok {
		return sqlc.Event{}, ErrForeignKeyViolation
	}
	e := sqlc.Event{
		ID:        arg.ID,
		CreatorID: arg.CreatorID,
		Title:     arg.Title,
		City:      arg.City,
		StartsAt:  arg.StartsAt,
		Status:    "open",
		CreatedAt: q.s.now(),
	}
	q.st().events[e.ID] = e
	return e, nil
}

func (q *memQueries) GetEvent(_ context.Context, id uuid.UUID) (sqlc.Event, error) {
	e, ok := q.st().events[id]
	if !ok {
		return sqlc.Event{}, pgx.ErrNoRows
	}
	return e, nil
}

func (q *memQueries) GetEventForUpdate(ctx context.Context, id uuid.UUID) (sqlc.Event, error) {
	return q.GetEvent(ctx, id)
}

func (q *memQueries) CloseEvent(_ context.Context, id uuid.UUID) (sqlc.Event, error) {
	e, ok := q.st().events[id]
	if !ok || e.Status != "open" {
		return sqlc.Event{}, pgx.ErrNoRows
	}
	e.Status = "closed"
	e.ClosedAt = q.s.now()
	q.st().events[id] = e
	return e, nil
}

// dues

func (q *memQueries) CreateDue(_ context.Context, arg sqlc.CreateDueParams) (sqlc.Due, error) {
	if _, ok := q.st().events[arg.EventID]; !ok {
		return sqlc.Due{}, ErrForeignKeyViolation
	}
	if _, ok := q.st().accounts[arg.UserID]; !ok {
		return sqlc.Due{}, ErrForeignKeyViolation
	}
	for _, d := range q.st().dues {
		if d.ID == arg.ID || (d.EventID == arg.EventID && d.UserID == arg.UserID) {
			return sqlc.Due{}, ErrUniqueViolation
		}
	}
	d := sqlc.Due{
		ID:        arg.ID,
		EventID:   arg.EventID,
		UserID:    arg.UserID,
		Amount:    arg.Amount,
		Currency:  arg.Currency,
		Status:    "pending",
		CreatedAt: q.s.now(),
	}
	q.st().dues[d.ID] = d
	return d, nil
}

func (q *memQueries) GetDue(_ context.Context, id uuid.UUID) (sqlc.Due, error) {
	d, ok := q.st().dues[id]
	if !ok {
		return sqlc.Due{}, pgx.ErrNoRows
	}
	return d, nil
}

func (q *memQueries) GetDueForUpdate(ctx context.Context, id uuid.UUID) (sqlc.Due, error) {
	return q.GetDue(ctx, id)
}

func (q *memQueries) GetDueByEventAndUser(_ context.Context, arg sqlc.GetDueByEventAndUserParams) (sqlc.Due, error) {
	for _, d := range q.st().dues {
		if d.EventID == arg.EventID && d.UserID == arg.UserID {
			return d, nil
		}
	}
	return sqlc.Due{}, pgx.ErrNoRows
}

func (q *memQueries) ClearDue(_ context.Context, arg sqlc.ClearDueParams) (sqlc.Due, error) {
	d, ok := q.st().dues[arg.ID]
	if !ok || d.Status != "pending" {
		return sqlc.Due{}, pgx.ErrNoRows
	}
	d.Status = "cleared"
	d.ClearedVia = arg.ClearedVia
	d.PaymentMethod = arg.PaymentMethod
	d.ClearedAt = q.s.now()
	q.st().dues[d.ID] = d
	return d, nil
}

func (q *memQueries) CountDuesByEvent(_ context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	for _, d := range q.st().dues {
		if d.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (q *memQueries) SumClearedDuesByEvent(_ context.Context, eventID uuid.UUID) (sqlc.SumClearedDuesByEventRow, error) {
	row := sqlc.SumClearedDuesByEventRow{Total: decimal.Zero}
	for _, d := range q.st().dues {
		if d.EventID == eventID && d.Status == "cleared" {
			row.Cleared++
			row.Total = row.Total.Add(d.Amount)
		}
	}
	return row, nil
}

func (q *memQueries) ListDuesByUser(_ context.Context, userID uuid.UUID) ([]sqlc.Due, error) {
	var items []sqlc.Due
	for _, d := range q.st().dues {
		if d.UserID == userID {
			items = append(items, d)
		}
	}
	slices.SortFunc(items, func(a, b sqlc.Due) int { return b.CreatedAt.Time.Compare(a.CreatedAt.Time) })
	return items, nil
}

func (q *memQueries) SumPendingDuesByUser(_ context.Context, userID uuid.UUID) (sqlc.SumPendingDuesByUserRow, error) {
	row := sqlc.SumPendingDuesByUserRow{Total: decimal.Zero}
	for _, d := range q.st().dues {
		if d.UserID == userID && d.Status == "pending" {
			row.Pending++
			row.Total = row.Total.Add(d.Amount)
		}
	}
	return row, nil
}

func (q *memQueries) SumCommissionOffsetsByUser(_ context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range q.st().dues {
		if d.UserID == userID && d.Status == "cleared" && d.ClearedVia != nil && *d.ClearedVia == "commission" {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

// commissions

func (q *memQueries) CreateCommission(_ context.Context, arg sqlc.CreateCommissionParams) (sqlc.Commission, error) {
	if _, ok := q.st().events[arg.EventID]; !ok {
		return sqlc.Commission{}, ErrForeignKeyViolation
	}
	for _, c := range q.st().commissions {
		if c.ID == arg.ID || c.EventID == arg.EventID {
			return sqlc.Commission{}, ErrUniqueViolation
		}
	}
	c := sqlc.Commission{
		ID:                      arg.ID,
		EventID:                 arg.EventID,
		CreatorID:               arg.CreatorID,
		TotalParticipants:       arg.TotalParticipants,
		ParticipantsDuesCleared: arg.ParticipantsDuesCleared,
		GrossAmount:             arg.GrossAmount,
		Rate:                    arg.Rate,
		CommissionAmount:        arg.CommissionAmount,
		Currency:                arg.Currency,
		Status:                  "pending",
		CreatedAt:               q.s.now(),
	}
	q.st().commissions[c.ID] = c
	return c, nil
}

func (q *memQueries) GetCommissionByEvent(_ context.Context, eventID uuid.UUID) (sqlc.Commission, error) {
	for _, c := range q.st().commissions {
		if c.EventID == eventID {
			return c, nil
		}
	}
	return sqlc.Commission{}, pgx.ErrNoRows
}

func (q *memQueries) GetCommissionByEventForUpdate(ctx context.Context, eventID uuid.UUID) (sqlc.Commission, error) {
	return q.GetCommissionByEvent(ctx, eventID)
}

func (q *memQueries) UpdateCommissionProgress(_ context.Context, arg sqlc.UpdateCommissionProgressParams) (sqlc.Commission, error) {
	c, ok := q.st().commissions[arg.ID]
	if !ok || c.Status != "pending" {
		return sqlc.Commission{}, pgx.ErrNoRows
	}
	c.ParticipantsDuesCleared = arg.ParticipantsDuesCleared
	c.GrossAmount = arg.GrossAmount
	c.CommissionAmount = arg.CommissionAmount
	q.st().commissions[c.ID] = c
	return c, nil
}

func (q *memQueries) MarkCommissionAvailable(_ context.Context, id uuid.UUID) (sqlc.Commission, error) {
	c, ok := q.st().commissions[id]
	if !ok || c.Status != "pending" {
		return sqlc.Commission{}, pgx.ErrNoRows
	}
	c.Status = "available"
	c.AvailableAt = q.s.now()
	q.st().commissions[id] = c
	return c, nil
}

func (q *memQueries) MarkCommissionWithdrawn(_ context.Context, id uuid.UUID) (sqlc.Commission, error) {
	c, ok := q.st().commissions[id]
	if !ok || c.Status != "available" {
		return sqlc.Commission{}, pgx.ErrNoRows
	}
	c.Status = "withdrawn"
	c.WithdrawnAt = q.s.now()
	q.st().commissions[id] = c
	return c, nil
}

func (q *memQueries) ListCommissionsByCreator(_ context.Context, creatorID uuid.UUID) ([]sqlc.Commission, error) {
	var items []sqlc.Commission
	for _, c := range q.st().commissions {
		if c.CreatorID == creatorID {
			items = append(items, c)
		}
	}
	slices.SortFunc(items, func(a, b sqlc.Commission) int { return b.CreatedAt.Time.Compare(a.CreatedAt.Time) })
	return items, nil
}

func (q *memQueries) ListReleasedCommissionsByCreator(_ context.Context, creatorID uuid.UUID) ([]sqlc.Commission, error) {
	var items []sqlc.Commission
	for _, c := range q.st().commissions {
		if c.CreatorID == creatorID && (c.Status == "available" || c.Status == "withdrawn") {
			items = append(items, c)
		}
	}
	slices.SortFunc(items, func(a, b sqlc.Commission) int { return a.AvailableAt.Time.Compare(b.AvailableAt.Time) })
	return items, nil
}

func (q *memQueries) SumCommissionsByCreator(_ context.Context, arg sqlc.SumCommissionsByCreatorParams) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range q.st().commissions {
		if c.CreatorID == arg.CreatorID && slices.Contains(arg.Statuses, c.Status) {
			total = total.Add(c.CommissionAmount)
		}
	}
	return total, nil
}

// withdrawals

func (q *memQueries) CreateWithdrawal(_ context.Context, arg sqlc.CreateWithdrawalParams) (sqlc.Withdrawal, error) {
	if _, ok := q.st().withdrawals[arg.ID]; ok {
		return sqlc.Withdrawal{}, ErrUniqueViolation
	}
	if _, ok := q.st().accounts[arg.UserID]; !ok {
		return sqlc.Withdrawal{}, ErrForeignKeyViolation
	}
	w := sqlc.Withdrawal{
		ID:                arg.ID,
		UserID:            arg.UserID,
		GrossAmount:       arg.GrossAmount,
		GatewayFee:        arg.GatewayFee,
		Gst:               arg.Gst,
		NetAmount:         arg.NetAmount,
		Currency:          arg.Currency,
		AccountHolderName: arg.AccountHolderName,
		AccountNumber:     arg.AccountNumber,
		IfscCode:          arg.IfscCode,
		BankName:          arg.BankName,
		UpiID:             arg.UpiID,
		Status:            "pending",
		CreatedAt:         q.s.now(),
	}
	q.st().withdrawals[w.ID] = w
	return w, nil
}

func (q *memQueries) GetWithdrawal(_ context.Context, id uuid.UUID) (sqlc.Withdrawal, error) {
	w, ok := q.st().withdrawals[id]
	if !ok {
		return sqlc.Withdrawal{}, pgx.ErrNoRows
	}
	return w, nil
}

func (q *memQueries) GetWithdrawalForUpdate(ctx context.Context, id uuid.UUID) (sqlc.Withdrawal, error) {
	return q.GetWithdrawal(ctx, id)
}

func (q *memQueries) UpdateWithdrawalStatus(_ context.Context, arg sqlc.UpdateWithdrawalStatusParams) (sqlc.Withdrawal, error) {
	w, ok := q.st().withdrawals[arg.ID]
	if !ok {
		return sqlc.Withdrawal{}, pgx.ErrNoRows
	}
	now := q.s.now()
	w.Status = arg.Status
	w.FailureReason = arg.FailureReason
	switch arg.Status {
	case "processing":
		w.ProcessingAt = now
	case "completed":
		w.CompletedAt = now
	case "failed":
		w.FailedAt = now
	}
	q.st().withdrawals[w.ID] = w
	return w, nil
}

func (q *memQueries) ListWithdrawalsByUser(_ context.Context, userID uuid.UUID) ([]sqlc.Withdrawal, error) {
	var items []sqlc.Withdrawal
	for _, w := range q.st().withdrawals {
		if w.UserID == userID {
			items = append(items, w)
		}
	}
	slices.SortFunc(items, func(a, b sqlc.Withdrawal) int { return b.CreatedAt.Time.Compare(a.CreatedAt.Time) })
	return items, nil
}

func (q *memQueries) ListWithdrawalsByStatus(_ context.Context, arg sqlc.ListWithdrawalsByStatusParams) ([]sqlc.Withdrawal, error) {
	var items []sqlc.Withdrawal
	for _, w := range q.st().withdrawals {
		if slices.Contains(arg.Statuses, w.Status) {
			items = append(items, w)
		}
	}
	slices.SortFunc(items, func(a, b sqlc.Withdrawal) int { return a.CreatedAt.Time.Compare(b.CreatedAt.Time) })
	if arg.RowLimit >= 0 && len(items) > int(arg.RowLimit) {
		items = items[:arg.RowLimit]
	}
	return items, nil
}

func (q *memQueries) SumWithdrawalsByUser(_ context.Context, arg sqlc.SumWithdrawalsByUserParams) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range q.st().withdrawals {
		if w.UserID == arg.UserID && slices.Contains(arg.Statuses, w.Status) {
			total = total.Add(w.GrossAmount)
		}
	}
	return total, nil
}

// transactions

func (q *memQueries) CreateTransaction(_ context.Context, arg sqlc.CreateTransactionParams) (sqlc.Transaction, error) {
	if _, ok := q.st().transactions[arg.ID]; ok {
		return sqlc.Transaction{}, ErrUniqueViolation
	}
	t := sqlc.Transaction{
		ID:            arg.ID,
		UserID:        arg.UserID,
		Type:          arg.Type,
		Status:        arg.Status,
		Amount:        arg.Amount,
		Currency:      arg.Currency,
		EventID:       arg.EventID,
		WithdrawalID:  arg.WithdrawalID,
		PaymentMethod: arg.PaymentMethod,
		GatewayFee:    arg.GatewayFee,
		Gst:           arg.Gst,
		NetAmount:     arg.NetAmount,
		CreatedAt:     q.s.now(),
		CompletedAt:   arg.CompletedAt,
	}
	q.st().transactions[t.ID] = t
	return t, nil
}

func (q *memQueries) SettleWithdrawalRequest(_ context.Context, arg sqlc.SettleWithdrawalRequestParams) (int64, error) {
	var n int64
	for id, t := range q.st().transactions {
		if t.WithdrawalID != nil && arg.WithdrawalID != nil && *t.WithdrawalID == *arg.WithdrawalID &&
			t.Type == "withdrawal_requested" && t.Status == "pending" {
			t.Status = arg.Status
			t.CompletedAt = q.s.now()
			q.st().transactions[id] = t
			n++
		}
	}
	return n, nil
}

func (q *memQueries) SettleCommissionEarned(_ context.Context, eventID *uuid.UUID) (int64, error) {
	var n int64
	for id, t := range q.st().transactions {
		if t.EventID != nil && eventID != nil && *t.EventID == *eventID &&
			t.Type == "commission_earned" && t.Status == "pending" {
			t.Status = "completed"
			t.CompletedAt = q.s.now()
			q.st().transactions[id] = t
			n++
		}
	}
	return n, nil
}

func (q *memQueries) ListTransactionsByEvent(_ context.Context, eventID *uuid.UUID) ([]sqlc.Transaction, error) {
	var items []sqlc.Transaction
	for _, t := range q.st().transactions {
		if t.EventID != nil && eventID != nil && *t.EventID == *eventID {
			items = append(items, t)
		}
	}
	slices.SortFunc(items, func(a, b sqlc.Transaction) int { return a.CreatedAt.Time.Compare(b.CreatedAt.Time) })
	return items, nil
}

func (q *memQueries) ListTransactionsByUser(_ context.Context, arg sqlc.ListTransactionsByUserParams) ([]sqlc.Transaction, error) {
	var items []sqlc.Transaction
	for _, t := range q.st().transactions {
		if t.UserID != nil && arg.UserID != nil && *t.UserID == *arg.UserID {
			items = append(items, t)
		}
	}
	slices.SortFunc(items, func(a, b sqlc.Transaction) int { return b.CreatedAt.Time.Compare(a.CreatedAt.Time) })
	start := min(max(int(arg.Offset), 0), len(items))
	end := min(start+max(int(arg.Limit), 0), len(items))
	return items[start:end], nil
}

func (q *memQueries) CountTransactionsByUser(_ context.Context, userID *uuid.UUID) (int64, error) {
	var n int64
	for _, t := range q.st().transactions {
		if t.UserID != nil && userID != nil && *t.UserID == *userID {
			n++
		}
	}
	return n, nil
}
