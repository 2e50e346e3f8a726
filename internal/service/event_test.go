package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/shopspring/decimal"
)

func TestCreateEventRequiresKYC(t *testing.T) {
	f := newFixture(t)
	user := uuid.New()
	startsAt := time.Now().Add(24 * time.Hour)

	if _, err := f.events.Create(f.ctx, user, CreateEventInput{Title: "Jam", StartsAt: startsAt}); !errors.Is(err, domain.ErrKYCRequired) {
		t.Fatalf("unknown account: expected ErrKYCRequired, got %v", err)
	}

	if _, err := f.accounts.SubmitKYC(f.ctx, user); err != nil {
		t.Fatalf("submit kyc: %v", err)
	}
	if _, err := f.events.Create(f.ctx, user, CreateEventInput{Title: "Jam", StartsAt: startsAt}); !errors.Is(err, domain.ErrKYCRequired) {
		t.Fatalf("pending kyc: expected ErrKYCRequired, got %v", err)
	}

	if _, err := f.accounts.ReviewKYC(f.ctx, user, true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	ev, err := f.events.Create(f.ctx, user, CreateEventInput{Title: "  Jam  ", City: "Goa", StartsAt: startsAt})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ev.Title != "Jam" || ev.Status != domain.EventStatusOpen {
		t.Errorf("unexpected event %+v", ev)
	}

	invalid := []struct {
		name string
		in   CreateEventInput
	}{
		{"blank title", CreateEventInput{Title: " ", StartsAt: startsAt}},
		{"missing start", CreateEventInput{Title: "Jam"}},
	}
	for _, tc := range invalid {
		if _, err := f.events.Create(f.ctx, user, tc.in); !errors.Is(err, domain.ErrInvalidEvent) {
			t.Errorf("%s: expected ErrInvalidEvent, got %v", tc.name, err)
		}
	}
}

func TestJoinRules(t *testing.T) {
	f := newFixture(t)
	creator := f.verifiedUser(t)
	eventID := f.newEvent(t, creator)

	if _, err := f.events.Join(f.ctx, eventID, creator); !errors.Is(err, domain.ErrCreatorCannotJoin) {
		t.Errorf("creator join: got %v", err)
	}

	user := uuid.New()
	res, err := f.events.Join(f.ctx, eventID, user)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !res.Due.Amount.Equal(decimal.NewFromInt(25)) || res.Due.Status != domain.DueStatusPending {
		t.Errorf("unexpected due %+v", res.Due)
	}
	if _, err := f.events.Join(f.ctx, eventID, user); !errors.Is(err, domain.ErrAlreadyJoined) {
		t.Errorf("double join: got %v", err)
	}
	if _, err := f.events.Join(f.ctx, uuid.New(), user); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("missing event: got %v", err)
	}

	if _, err := f.events.Close(f.ctx, eventID, user); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("close by participant: got %v", err)
	}
	if _, err := f.events.Close(f.ctx, eventID, creator); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := f.events.Join(f.ctx, eventID, uuid.New()); !errors.Is(err, domain.ErrEventClosed) {
		t.Errorf("join closed: got %v", err)
	}
	if _, err := f.events.Close(f.ctx, eventID, creator); !errors.Is(err, domain.ErrEventClosed) {
		t.Errorf("close twice: got %v", err)
	}
}

func TestCloseWithoutParticipants(t *testing.T) {
	f := newFixture(t)
	creator := f.verifiedUser(t)
	eventID := f.newEvent(t, creator)

	res, err := f.events.Close(f.ctx, eventID, creator)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if res.Commission != nil {
		t.Fatalf("expected no commission, got %+v", res.Commission)
	}
	items, err := f.finance.Commissions(f.ctx, creator)
	if err != nil {
		t.Fatalf("commissions: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no commission records, got %d", len(items))
	}
}

// Three participants, all paid before close: 75 collected, 60 to the creator,
// 15 retained by the platform.
func TestCloseReleasesFullyPaidEvent(t *testing.T) {
	f := newFixture(t)
	creator := f.verifiedUser(t)
	eventID := f.newEvent(t, creator)
	for i := 0; i < 3; i++ {
		user, due := f.join(t, eventID)
		f.pay(t, due, user)
	}

	res, err := f.events.Close(f.ctx, eventID, creator)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	c := res.Commission
	if c == nil {
		t.Fatal("expected commission")
	}
	if c.Status != domain.CommissionStatusAvailable {
		t.Errorf("status = %s, want available", c.Status)
	}
	if !c.GrossAmount.Equal(decimal.NewFromInt(75)) || !c.CommissionAmount.Equal(decimal.NewFromInt(60)) {
		t.Errorf("gross/commission = %s/%s, want 75/60", c.GrossAmount, c.CommissionAmount)
	}
	if c.TotalParticipants != 3 || c.ParticipantsDuesCleared != 3 {
		t.Errorf("counts = %d/%d", c.ParticipantsDuesCleared, c.TotalParticipants)
	}
	if len(f.notifier.released) != 1 {
		t.Errorf("expected one release notification, got %d", len(f.notifier.released))
	}

	page, err := f.finance.Transactions(f.ctx, creator, 10, 0)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	types := map[domain.TxType]domain.Transaction{}
	for _, tx := range page.Items {
		types[tx.Type] = tx
	}
	earned, ok := types[domain.TxTypeCommissionEarned]
	if !ok || earned.Status != domain.TxStatusCompleted {
		t.Errorf("commission_earned missing or not completed: %+v", earned)
	}
	if avail, ok := types[domain.TxTypeCommissionAvailable]; !ok || !avail.Amount.Equal(decimal.NewFromInt(60)) {
		t.Errorf("commission_available missing or wrong: %+v", avail)
	}

	entries, err := f.finance.EventLedger(f.ctx, eventID)
	if err != nil {
		t.Fatalf("event ledger: %v", err)
	}
	revenue := decimal.Zero
	for _, e := range entries {
		if e.Type == domain.TxTypePlatformRevenue {
			if e.UserID != nil {
				t.Errorf("platform revenue carries a user id")
			}
			revenue = revenue.Add(e.Amount)
		}
	}
	if !revenue.Equal(decimal.NewFromInt(15)) {
		t.Errorf("platform revenue = %s, want 15", revenue)
	}
}
