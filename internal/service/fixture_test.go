package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/repository"
)

type memIdempotency struct {
	mu      sync.Mutex
	records map[string]IdempotencyRecord
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{records: make(map[string]IdempotencyRecord)}
}

func (m *memIdempotency) Get(_ context.Context, key string) (*IdempotencyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memIdempotency) Reserve(_ context.Context, key, requestHash string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[key]; ok {
		return false, nil
	}
	m.records[key] = IdempotencyRecord{RequestHash: requestHash}
	return true, nil
}

func (m *memIdempotency) Complete(_ context.Context, key string, rec IdempotencyRecord, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = rec
	return nil
}

func (m *memIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	requested int
	completed int
	failed    int
	released  []domain.Commission
	kyc       int
}

func (n *recordingNotifier) WithdrawalRequested(context.Context, domain.Withdrawal) {
	n.mu.Lock()
	n.requested++
	n.mu.Unlock()
}

func (n *recordingNotifier) WithdrawalCompleted(context.Context, domain.Withdrawal) {
	n.mu.Lock()
	n.completed++
	n.mu.Unlock()
}

func (n *recordingNotifier) WithdrawalFailed(context.Context, domain.Withdrawal) {
	n.mu.Lock()
	n.failed++
	n.mu.Unlock()
}

func (n *recordingNotifier) CommissionAvailable(_ context.Context, c domain.Commission) {
	n.mu.Lock()
	n.released = append(n.released, c)
	n.mu.Unlock()
}

func (n *recordingNotifier) KYCSubmitted(context.Context, domain.Account) {
	n.mu.Lock()
	n.kyc++
	n.mu.Unlock()
}

type fixture struct {
	ctx         context.Context
	store       *repository.MemStore
	notifier    *recordingNotifier
	accounts    *AccountService
	events      *EventService
	dues        *DueService
	withdrawals *WithdrawalService
	finance     *FinanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemStore()
	n := &recordingNotifier{}
	return &fixture{
		ctx:         context.Background(),
		store:       store,
		notifier:    n,
		accounts:    NewAccountService(store, n),
		events:      NewEventService(store, n, "INR"),
		dues:        NewDueService(store, n),
		withdrawals: NewWithdrawalService(store, newMemIdempotency(), n, "INR", time.Hour),
		finance:     NewFinanceService(store, "INR"),
	}
}

func (f *fixture) verifiedUser(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	if _, err := f.accounts.Ensure(f.ctx, id, "user"); err != nil {
		t.Fatalf("ensure account: %v", err)
	}
	if _, err := f.accounts.SubmitKYC(f.ctx, id); err != nil {
		t.Fatalf("submit kyc: %v", err)
	}
	if _, err := f.accounts.ReviewKYC(f.ctx, id, true); err != nil {
		t.Fatalf("approve kyc: %v", err)
	}
	return id
}

func (f *fixture) newEvent(t *testing.T, creator uuid.UUID) uuid.UUID {
	t.Helper()
	ev, err := f.events.Create(f.ctx, creator, CreateEventInput{
		Title:    "Sunday hike",
		City:     "Pune",
		StartsAt: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return ev.ID
}

// join adds a fresh participant and returns their id and due id.
func (f *fixture) join(t *testing.T, eventID uuid.UUID) (uuid.UUID, uuid.UUID) {
	t.Helper()
	user := uuid.New()
	res, err := f.events.Join(f.ctx, eventID, user)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	return user, res.Due.ID
}

func (f *fixture) pay(t *testing.T, dueID, user uuid.UUID) *ClearDueResult {
	t.Helper()
	res, err := f.dues.Clear(f.ctx, dueID, user, ClearDueInput{Via: domain.ClearedViaPayment, PaymentMethod: "upi"})
	if err != nil {
		t.Fatalf("clear due: %v", err)
	}
	return res
}

// fundedCreator returns a verified creator whose available balance is
// participants × 20 after a fully paid, closed event.
func (f *fixture) fundedCreator(t *testing.T, participants int) uuid.UUID {
	t.Helper()
	creator := f.verifiedUser(t)
	f.fundEvent(t, creator, participants)
	return creator
}

func (f *fixture) fundEvent(t *testing.T, creator uuid.UUID, participants int) {
	t.Helper()
	eventID := f.newEvent(t, creator)
	for i := 0; i < participants; i++ {
		user, due := f.join(t, eventID)
		f.pay(t, due, user)
	}
	res, err := f.events.Close(f.ctx, eventID, creator)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if res.Commission == nil || res.Commission.Status != domain.CommissionStatusAvailable {
		t.Fatalf("expected released commission, got %+v", res.Commission)
	}
}

func validBank() domain.BankDetails {
	return domain.BankDetails{
		AccountHolderName: "Asha Rao",
		AccountNumber:     "123456789012",
		IFSCCode:          "hdfc0001234",
		BankName:          "HDFC Bank",
	}
}
