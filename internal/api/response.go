package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/ledger"
)

type successResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type errorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errorResponse struct {
	Status string       `json:"status"`
	Error  errorPayload `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, errorResponse{
		Status: "error",
		Error: errorPayload{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	})
}

// writeServiceError maps err onto a status and code. Unknown errors are
// logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestIDFromContext(r.Context())
	status, code := mapDomainError(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", requestID, "error", err)
		writeError(w, status, code, "internal error", requestID)
		return
	}
	writeError(w, status, code, err.Error(), requestID)
}

var errorTable = []struct {
	err    error
	status int
	code   string
}{
	{ledger.ErrBelowMinimumWithdrawal, http.StatusUnprocessableEntity, "below_minimum_withdrawal"},
	{ledger.ErrNegativeAmount, http.StatusUnprocessableEntity, "invalid_amount"},
	{domain.ErrInvalidAmount, http.StatusUnprocessableEntity, "invalid_amount"},
	{domain.ErrInvalidBankDetails, http.StatusUnprocessableEntity, "invalid_bank_details"},
	{domain.ErrInvalidPayment, http.StatusUnprocessableEntity, "invalid_payment_method"},
	{domain.ErrInvalidEvent, http.StatusUnprocessableEntity, "invalid_event"},
	{domain.ErrIdempotencyRequired, http.StatusBadRequest, "idempotency_key_required"},

	{domain.ErrDueAlreadyCleared, http.StatusConflict, "due_already_cleared"},
	{ledger.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{domain.ErrInsufficientBalance, http.StatusConflict, "insufficient_balance"},
	{domain.ErrIdempotencyConflict, http.StatusConflict, "idempotency_conflict"},
	{domain.ErrRequestInProgress, http.StatusConflict, "request_in_progress"},
	{domain.ErrAlreadyJoined, http.StatusConflict, "already_joined"},
	{domain.ErrEventClosed, http.StatusConflict, "event_closed"},
	{domain.ErrCreatorCannotJoin, http.StatusConflict, "creator_cannot_join"},
	{domain.ErrKYCNotPending, http.StatusConflict, "kyc_not_pending"},
	{domain.ErrKYCAlreadyVerified, http.StatusConflict, "kyc_already_verified"},

	{domain.ErrKYCRequired, http.StatusForbidden, "kyc_required"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},

	{domain.ErrAccountNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrEventNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrDueNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrCommissionNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrWithdrawalNotFound, http.StatusNotFound, "not_found"},
}

func mapDomainError(err error) (status int, code string) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}
