package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/config"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/service"
	"github.com/shopspring/decimal"
)

type Handler struct {
	accounts    *service.AccountService
	events      *service.EventService
	dues        *service.DueService
	withdrawals *service.WithdrawalService
	finance     *service.FinanceService
}

func NewHandler(
	accounts *service.AccountService,
	events *service.EventService,
	dues *service.DueService,
	withdrawals *service.WithdrawalService,
	finance *service.FinanceService,
) *Handler {
	return &Handler{
		accounts:    accounts,
		events:      events,
		dues:        dues,
		withdrawals: withdrawals,
		finance:     finance,
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return false
	}
	return true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", name+" must be a uuid", requestIDFromContext(r.Context()))
		return uuid.Nil, false
	}
	return id, true
}

func parseIntOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// finance

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	h.writeSummary(w, r, actorFromContext(r.Context()).UserID)
}

func (h *Handler) userSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}
	h.writeSummary(w, r, userID)
}

func (h *Handler) writeSummary(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	sum, err := h.finance.Summary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, sum)
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	page, err := h.finance.Transactions(r.Context(), actor.UserID,
		parseIntOrDefault(r.URL.Query().Get("limit"), config.DefaultPageSize),
		parseIntOrDefault(r.URL.Query().Get("offset"), 0),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

func (h *Handler) listDues(w http.ResponseWriter, r *http.Request) {
	items, err := h.finance.Dues(r.Context(), actorFromContext(r.Context()).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) listCommissions(w http.ResponseWriter, r *http.Request) {
	items, err := h.finance.Commissions(r.Context(), actorFromContext(r.Context()).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) eventLedger(w http.ResponseWriter, r *http.Request) {
	eventID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	items, err := h.finance.EventLedger(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"items": items})
}

// dues

type clearDueRequest struct {
	Via           string `json:"via"`
	PaymentMethod string `json:"payment_method"`
}

func (h *Handler) clearDue(w http.ResponseWriter, r *http.Request) {
	dueID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req clearDueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.dues.Clear(r.Context(), dueID, actorFromContext(r.Context()).UserID, service.ClearDueInput{
		Via:           domain.ClearedVia(strings.ToLower(strings.TrimSpace(req.Via))),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

// withdrawals

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var amount *decimal.Decimal
	if raw := strings.TrimSpace(r.URL.Query().Get("amount")); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid_amount", "amount is not a number", requestIDFromContext(r.Context()))
			return
		}
		amount = &v
	}
	q, err := h.withdrawals.Quote(r.Context(), actorFromContext(r.Context()).UserID, amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, q)
}

type requestWithdrawalRequest struct {
	Amount decimal.Decimal    `json:"amount"`
	Bank   domain.BankDetails `json:"bank"`
}

func (h *Handler) requestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req requestWithdrawalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	wd, replayed, err := h.withdrawals.Request(r.Context(), actorFromContext(r.Context()).UserID, service.RequestWithdrawalInput{
		Amount: req.Amount,
		Bank:   req.Bank,
	}, r.Header.Get("Idempotency-Key"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if replayed {
		w.Header().Set("Idempotent-Replayed", "true")
		writeSuccess(w, http.StatusOK, wd)
		return
	}
	writeSuccess(w, http.StatusCreated, wd)
}

func (h *Handler) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	items, err := h.withdrawals.ListForUser(r.Context(), actorFromContext(r.Context()).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) getWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	actor := actorFromContext(r.Context())
	wd, err := h.withdrawals.Get(r.Context(), id)
	if err == nil && wd.UserID != actor.UserID && !actor.IsAdmin() {
		err = domain.ErrWithdrawalNotFound
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, wd)
}

func (h *Handler) withdrawalQueue(w http.ResponseWriter, r *http.Request) {
	var statuses []domain.WithdrawalStatus
	for _, s := range strings.Split(r.URL.Query().Get("status"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			statuses = append(statuses, domain.WithdrawalStatus(s))
		}
	}
	if len(statuses) == 0 {
		statuses = []domain.WithdrawalStatus{domain.WithdrawalStatusPending, domain.WithdrawalStatusProcessing}
	}
	limit := min(parseIntOrDefault(r.URL.Query().Get("limit"), config.DefaultPageSize), config.MaxPageSize)
	items, err := h.withdrawals.ListByStatus(r.Context(), limit, statuses...)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"items": items})
}

type failWithdrawalRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) transitionWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var (
		wd  *domain.Withdrawal
		err error
	)
	switch chi.URLParam(r, "action") {
	case "processing":
		wd, err = h.withdrawals.MarkProcessing(r.Context(), id)
	case "complete":
		wd, err = h.withdrawals.Complete(r.Context(), id)
	case "fail":
		var req failWithdrawalRequest
		if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
			return
		}
		wd, err = h.withdrawals.Fail(r.Context(), id, req.Reason)
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown action", requestIDFromContext(r.Context()))
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, wd)
}

// events

type createEventRequest struct {
	Title    string `json:"title"`
	City     string `json:"city"`
	StartsAt string `json:"starts_at"`
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := service.CreateEventInput{Title: req.Title, City: req.City}
	if req.StartsAt != "" {
		t, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid_event", "starts_at must be RFC 3339", requestIDFromContext(r.Context()))
			return
		}
		in.StartsAt = t
	}
	ev, err := h.events.Create(r.Context(), actorFromContext(r.Context()).UserID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, ev)
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	ev, err := h.events.Get(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, ev)
}

func (h *Handler) joinEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	res, err := h.events.Join(r.Context(), eventID, actorFromContext(r.Context()).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) closeEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	res, err := h.events.Close(r.Context(), eventID, actorFromContext(r.Context()).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

// accounts

func (h *Handler) account(w http.ResponseWriter, r *http.Request) {
	acc, err := h.accounts.Ensure(r.Context(), actorFromContext(r.Context()).UserID, "")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, acc)
}

func (h *Handler) submitKYC(w http.ResponseWriter, r *http.Request) {
	acc, err := h.accounts.SubmitKYC(r.Context(), actorFromContext(r.Context()).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusAccepted, acc)
}

func (h *Handler) reviewKYC(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}
	var approve bool
	switch chi.URLParam(r, "decision") {
	case "approve":
		approve = true
	case "reject":
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown decision", requestIDFromContext(r.Context()))
		return
	}
	acc, err := h.accounts.ReviewKYC(r.Context(), userID, approve)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, acc)
}
