package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/cache"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/repository"
	"github.com/set-night/eventledger/internal/service"
	"github.com/shopspring/decimal"
)

const testSecret = "test-secret"

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  errorPayload    `json:"error"`
}

type testAPI struct {
	router   http.Handler
	accounts *service.AccountService
	events   *service.EventService
	dues     *service.DueService
	admin    string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := repository.NewMemStore()
	accounts := service.NewAccountService(store, nil)
	events := service.NewEventService(store, nil, "INR")
	dues := service.NewDueService(store, nil)
	withdrawals := service.NewWithdrawalService(store, cache.NewMemoryIdempotencyStore(), nil, "INR", time.Hour)
	finance := service.NewFinanceService(store, "INR")

	h := NewHandler(accounts, events, dues, withdrawals, finance)
	return &testAPI{
		router:   NewRouter(h, testSecret),
		accounts: accounts,
		events:   events,
		dues:     dues,
		admin:    token(t, uuid.New(), RoleAdmin),
	}
}

func token(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	raw, err := SignToken(testSecret, userID, role, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func (a *testAPI) do(t *testing.T, method, path, bearer string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return out
}

// fundCreator gives a verified creator n×20 of released commission.
func (a *testAPI) fundCreator(t *testing.T, n int) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	creator := uuid.New()
	if _, err := a.accounts.SubmitKYC(ctx, creator); err != nil {
		t.Fatalf("submit kyc: %v", err)
	}
	if _, err := a.accounts.ReviewKYC(ctx, creator, true); err != nil {
		t.Fatalf("approve kyc: %v", err)
	}
	ev, err := a.events.Create(ctx, creator, service.CreateEventInput{
		Title:    "Rooftop quiz",
		City:     "Mumbai",
		StartsAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	for i := 0; i < n; i++ {
		user := uuid.New()
		res, err := a.events.Join(ctx, ev.ID, user)
		if err != nil {
			t.Fatalf("join: %v", err)
		}
		if _, err := a.dues.Clear(ctx, res.Due.ID, user, service.ClearDueInput{Via: domain.ClearedViaPayment, PaymentMethod: "upi"}); err != nil {
			t.Fatalf("clear: %v", err)
		}
	}
	if _, err := a.events.Close(ctx, ev.ID, creator); err != nil {
		t.Fatalf("close: %v", err)
	}
	return creator
}

func bankBody(amount string) map[string]any {
	return map[string]any{
		"amount": amount,
		"bank": map[string]string{
			"account_holder_name": "Asha Rao",
			"account_number":      "123456789012",
			"ifsc_code":           "HDFC0001234",
			"bank_name":           "HDFC Bank",
		},
	}
}

func TestHealthzNeedsNoAuth(t *testing.T) {
	a := newTestAPI(t)
	rec, env := a.do(t, http.MethodGet, "/healthz", "", nil, nil)
	if rec.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("healthz: %d %+v", rec.Code, env)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestAuth(t *testing.T) {
	a := newTestAPI(t)
	user := token(t, uuid.New(), RoleUser)

	expired, err := SignToken(testSecret, uuid.New(), RoleUser, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	foreign, err := SignToken("other-secret", uuid.New(), RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		bearer string
		want   int
	}{
		{"missing token", "/v1/finance/summary", "", http.StatusUnauthorized},
		{"garbage token", "/v1/finance/summary", "not-a-jwt", http.StatusUnauthorized},
		{"expired token", "/v1/finance/summary", expired, http.StatusUnauthorized},
		{"wrong secret", "/v1/finance/summary", foreign, http.StatusUnauthorized},
		{"user on admin route", "/v1/admin/withdrawals", user, http.StatusForbidden},
		{"admin on admin route", "/v1/admin/withdrawals", a.admin, http.StatusOK},
		{"user summary", "/v1/finance/summary", user, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := a.do(t, http.MethodGet, tt.path, tt.bearer, nil, nil)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestEventFlowOverHTTP(t *testing.T) {
	a := newTestAPI(t)
	creatorID := uuid.New()
	creator := token(t, creatorID, RoleUser)

	rec, env := a.do(t, http.MethodPost, "/v1/events", creator, map[string]string{
		"title":     "Board games",
		"starts_at": "2026-11-01T18:00:00Z",
	}, nil)
	if rec.Code != http.StatusForbidden || env.Error.Code != "kyc_required" {
		t.Fatalf("create before kyc: %d %+v", rec.Code, env.Error)
	}

	if rec, _ := a.do(t, http.MethodPost, "/v1/kyc", creator, nil, nil); rec.Code != http.StatusAccepted {
		t.Fatalf("submit kyc: %d", rec.Code)
	}
	if rec, _ := a.do(t, http.MethodPost, "/v1/admin/kyc/"+creatorID.String()+"/approve", a.admin, nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("approve kyc: %d", rec.Code)
	}

	rec, env = a.do(t, http.MethodPost, "/v1/events", creator, map[string]string{"title": "Board games"}, nil)
	if rec.Code != http.StatusUnprocessableEntity || env.Error.Code != "invalid_event" {
		t.Fatalf("create without start: %d %+v", rec.Code, env.Error)
	}

	rec, env = a.do(t, http.MethodPost, "/v1/events", creator, map[string]string{
		"title":     "Board games",
		"city":      "Pune",
		"starts_at": "2026-11-01T18:00:00Z",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: %d %+v", rec.Code, env.Error)
	}
	ev := decodeData[domain.Event](t, env)

	type member struct {
		token string
		due   uuid.UUID
	}
	var members []member
	for i := 0; i < 3; i++ {
		tok := token(t, uuid.New(), RoleUser)
		rec, env := a.do(t, http.MethodPost, "/v1/events/"+ev.ID.String()+"/join", tok, nil, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("join %d: %d %+v", i, rec.Code, env.Error)
		}
		members = append(members, member{tok, decodeData[service.JoinResult](t, env).Due.ID})
	}

	rec, env = a.do(t, http.MethodPost, "/v1/events/"+ev.ID.String()+"/close", members[0].token, nil, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("close by participant: %d", rec.Code)
	}
	if rec, _ := a.do(t, http.MethodPost, "/v1/events/"+ev.ID.String()+"/close", creator, nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("close: %d", rec.Code)
	}

	pay := map[string]string{"via": "payment", "payment_method": "upi"}
	for i, m := range members {
		rec, env := a.do(t, http.MethodPost, "/v1/dues/"+m.due.String()+"/clear", m.token, pay, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("clear %d: %d %+v", i, rec.Code, env.Error)
		}
	}
	rec, env = a.do(t, http.MethodPost, "/v1/dues/"+members[0].due.String()+"/clear", members[0].token, pay, nil)
	if rec.Code != http.StatusConflict || env.Error.Code != "due_already_cleared" {
		t.Fatalf("second clear: %d %+v", rec.Code, env.Error)
	}

	_, env = a.do(t, http.MethodGet, "/v1/finance/summary", creator, nil, nil)
	sum := decodeData[domain.FinanceSummary](t, env)
	if !sum.AvailableBalance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("available = %s, want 60", sum.AvailableBalance)
	}

	_, env = a.do(t, http.MethodGet, "/v1/admin/users/"+creatorID.String()+"/summary", a.admin, nil, nil)
	if got := decodeData[domain.FinanceSummary](t, env); !got.AvailableBalance.Equal(sum.AvailableBalance) {
		t.Errorf("admin summary = %s", got.AvailableBalance)
	}

	_, env = a.do(t, http.MethodGet, "/v1/admin/events/"+ev.ID.String()+"/ledger", a.admin, nil, nil)
	ledger := decodeData[struct {
		Items []domain.Transaction `json:"items"`
	}](t, env)
	var revenue int
	for _, tx := range ledger.Items {
		if tx.Type == domain.TxTypePlatformRevenue {
			revenue++
			if !tx.Amount.Equal(decimal.NewFromInt(15)) {
				t.Errorf("platform revenue = %s, want 15", tx.Amount)
			}
		}
	}
	if revenue != 1 {
		t.Errorf("platform revenue rows = %d, want 1", revenue)
	}
}

func TestWithdrawalValidationOverHTTP(t *testing.T) {
	a := newTestAPI(t)
	user := token(t, uuid.New(), RoleUser)

	tests := []struct {
		name    string
		body    map[string]any
		key     string
		status  int
		errCode string
	}{
		{"missing key", bankBody("1500"), "", http.StatusBadRequest, "idempotency_key_required"},
		{"below minimum", bankBody("999.99"), "k1", http.StatusUnprocessableEntity, "below_minimum_withdrawal"},
		{"three decimals", bankBody("1000.001"), "k2", http.StatusUnprocessableEntity, "invalid_amount"},
		{"bad ifsc", map[string]any{
			"amount": "1500",
			"bank":   map[string]string{"account_holder_name": "A", "account_number": "123456789012", "ifsc_code": "XX", "bank_name": "B"},
		}, "k3", http.StatusUnprocessableEntity, "invalid_bank_details"},
		{"no balance", bankBody("1500"), "k4", http.StatusConflict, "insufficient_balance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.key != "" {
				headers["Idempotency-Key"] = tt.key
			}
			rec, env := a.do(t, http.MethodPost, "/v1/withdrawals", user, tt.body, headers)
			if rec.Code != tt.status || env.Error.Code != tt.errCode {
				t.Fatalf("got %d %q, want %d %q", rec.Code, env.Error.Code, tt.status, tt.errCode)
			}
			if env.Error.RequestID == "" {
				t.Error("error without request id")
			}
		})
	}
}

func TestWithdrawalLifecycleOverHTTP(t *testing.T) {
	a := newTestAPI(t)
	creatorID := a.fundCreator(t, 60) // 1200 available
	creator := token(t, creatorID, RoleUser)

	_, env := a.do(t, http.MethodGet, "/v1/withdrawals/quote?amount=1000", creator, nil, nil)
	q := decodeData[service.Quote](t, env)
	if !q.Eligible || !q.NetAmount.Equal(decimal.RequireFromString("976.4")) {
		t.Fatalf("quote: %+v", q)
	}

	key := map[string]string{"Idempotency-Key": "payout-1"}
	rec, env := a.do(t, http.MethodPost, "/v1/withdrawals", creator, bankBody("1000"), key)
	if rec.Code != http.StatusCreated {
		t.Fatalf("request: %d %+v", rec.Code, env.Error)
	}
	wd := decodeData[domain.Withdrawal](t, env)
	if wd.Bank.IFSCCode != "HDFC0001234" || !wd.GatewayFee.Equal(decimal.NewFromInt(20)) {
		t.Errorf("unexpected withdrawal %+v", wd)
	}

	rec, env = a.do(t, http.MethodPost, "/v1/withdrawals", creator, bankBody("1000"), key)
	if rec.Code != http.StatusOK || rec.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("replay: %d", rec.Code)
	}
	if got := decodeData[domain.Withdrawal](t, env); got.ID != wd.ID {
		t.Fatalf("replay returned %s, want %s", got.ID, wd.ID)
	}
	rec, env = a.do(t, http.MethodPost, "/v1/withdrawals", creator, bankBody("1100"), key)
	if rec.Code != http.StatusConflict || env.Error.Code != "idempotency_conflict" {
		t.Fatalf("reused key: %d %+v", rec.Code, env.Error)
	}

	stranger := token(t, uuid.New(), RoleUser)
	if rec, _ := a.do(t, http.MethodGet, "/v1/withdrawals/"+wd.ID.String(), stranger, nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("stranger read: %d", rec.Code)
	}
	if rec, _ := a.do(t, http.MethodGet, "/v1/withdrawals/"+wd.ID.String(), a.admin, nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("admin read: %d", rec.Code)
	}

	_, env = a.do(t, http.MethodGet, "/v1/admin/withdrawals", a.admin, nil, nil)
	queue := decodeData[struct {
		Items []domain.Withdrawal `json:"items"`
	}](t, env)
	if len(queue.Items) != 1 || queue.Items[0].ID != wd.ID {
		t.Fatalf("queue = %+v", queue.Items)
	}

	base := "/v1/admin/withdrawals/" + wd.ID.String()
	if rec, env := a.do(t, http.MethodPost, base+"/complete", a.admin, nil, nil); rec.Code != http.StatusConflict || env.Error.Code != "invalid_transition" {
		t.Fatalf("complete from pending: %d %+v", rec.Code, env.Error)
	}
	if rec, _ := a.do(t, http.MethodPost, base+"/processing", a.admin, nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("processing: %d", rec.Code)
	}
	rec, env = a.do(t, http.MethodPost, base+"/complete", a.admin, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: %d %+v", rec.Code, env.Error)
	}
	if got := decodeData[domain.Withdrawal](t, env); got.Status != domain.WithdrawalStatusCompleted {
		t.Fatalf("status = %s", got.Status)
	}

	_, env = a.do(t, http.MethodGet, "/v1/finance/summary", creator, nil, nil)
	sum := decodeData[domain.FinanceSummary](t, env)
	if !sum.AvailableBalance.Equal(decimal.NewFromInt(200)) || !sum.WithdrawnTotal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("summary after payout: available=%s withdrawn=%s", sum.AvailableBalance, sum.WithdrawnTotal)
	}

	_, env = a.do(t, http.MethodGet, "/v1/finance/transactions?limit=2", creator, nil, nil)
	page := decodeData[service.TransactionPage](t, env)
	if len(page.Items) != 2 || page.Total < 3 {
		t.Errorf("page: items=%d total=%d", len(page.Items), page.Total)
	}

	rec, env = a.do(t, http.MethodGet, "/v1/finance/transactions?offset=3000000000", creator, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("huge offset: %d %+v", rec.Code, env.Error)
	}
	if page := decodeData[service.TransactionPage](t, env); len(page.Items) != 0 {
		t.Errorf("huge offset: items=%d", len(page.Items))
	}
	if rec, _ := a.do(t, http.MethodGet, "/v1/admin/withdrawals?limit=-5", a.admin, nil, nil); rec.Code != http.StatusOK {
		t.Errorf("negative queue limit: %d", rec.Code)
	}
}

func TestFailWithdrawalOverHTTP(t *testing.T) {
	a := newTestAPI(t)
	creatorID := a.fundCreator(t, 50)
	creator := token(t, creatorID, RoleUser)

	rec, env := a.do(t, http.MethodPost, "/v1/withdrawals", creator, bankBody("1000"), map[string]string{"Idempotency-Key": "a"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("request: %d %+v", rec.Code, env.Error)
	}
	wd := decodeData[domain.Withdrawal](t, env)

	rec, env = a.do(t, http.MethodPost, "/v1/admin/withdrawals/"+wd.ID.String()+"/fail", a.admin, map[string]string{"reason": "account closed"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fail: %d %+v", rec.Code, env.Error)
	}
	if got := decodeData[domain.Withdrawal](t, env); got.FailureReason != "account closed" {
		t.Errorf("failure reason = %q", got.FailureReason)
	}

	_, env = a.do(t, http.MethodGet, "/v1/finance/summary", creator, nil, nil)
	if sum := decodeData[domain.FinanceSummary](t, env); !sum.AvailableBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("available after failure = %s, want 1000", sum.AvailableBalance)
	}

	if rec, _ := a.do(t, http.MethodPost, "/v1/admin/withdrawals/"+wd.ID.String()+"/bogus", a.admin, nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown action: %d", rec.Code)
	}
}

func TestBadIdentifiers(t *testing.T) {
	a := newTestAPI(t)
	user := token(t, uuid.New(), RoleUser)

	if rec, env := a.do(t, http.MethodGet, "/v1/withdrawals/not-a-uuid", user, nil, nil); rec.Code != http.StatusBadRequest || env.Error.Code != "invalid_id" {
		t.Fatalf("bad id: %d %+v", rec.Code, env.Error)
	}
	if rec, env := a.do(t, http.MethodGet, "/v1/events/"+uuid.NewString(), user, nil, nil); rec.Code != http.StatusNotFound || env.Error.Code != "not_found" {
		t.Fatalf("missing event: %d %+v", rec.Code, env.Error)
	}
}
