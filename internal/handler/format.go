package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/ledger"
	tg "github.com/set-night/eventledger/internal/telegram"
)

const (
	callbackProcessing = "wd_proc_"
	callbackComplete   = "wd_done_"
	callbackFail       = "wd_fail_"
)

// parseWithdrawalCallback splits callback data into its action prefix and
// withdrawal id.
func parseWithdrawalCallback(data string) (string, uuid.UUID, error) {
	for _, prefix := range []string{callbackProcessing, callbackComplete, callbackFail} {
		if raw, ok := strings.CutPrefix(data, prefix); ok {
			id, err := uuid.Parse(raw)
			if err != nil {
				return "", uuid.Nil, fmt.Errorf("parse withdrawal id %q: %w", raw, err)
			}
			return prefix, id, nil
		}
	}
	return "", uuid.Nil, fmt.Errorf("unknown callback %q", data)
}

// withdrawalKeyboard offers the transitions valid from the current status.
func withdrawalKeyboard(w domain.Withdrawal) []models.InlineKeyboardButton {
	id := w.ID.String()
	var row []models.InlineKeyboardButton
	if ledger.WithdrawalTransition(w.Status, domain.WithdrawalStatusProcessing) == nil {
		row = append(row, tg.InlineButton("⏳ Processing", callbackProcessing+id))
	}
	if ledger.WithdrawalTransition(w.Status, domain.WithdrawalStatusCompleted) == nil {
		row = append(row, tg.InlineButton("✅ Paid", callbackComplete+id))
	}
	if ledger.WithdrawalTransition(w.Status, domain.WithdrawalStatusFailed) == nil {
		row = append(row, tg.InlineButton("🚫 Fail", callbackFail+id))
	}
	return row
}

// parseKYCCommand reads "/kyc <userID> approve|reject".
func parseKYCCommand(text string) (uuid.UUID, bool, error) {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		return uuid.Nil, false, errors.New("usage: /kyc <userID> approve|reject")
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("invalid user id %q", parts[1])
	}
	switch strings.ToLower(parts[2]) {
	case "approve":
		return userID, true, nil
	case "reject":
		return userID, false, nil
	default:
		return uuid.Nil, false, fmt.Errorf("unknown decision %q", parts[2])
	}
}

// parseFailCommand reads "/fail <withdrawalID> [reason...]".
func parseFailCommand(text string) (uuid.UUID, string, error) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return uuid.Nil, "", errors.New("usage: /fail <withdrawalID> <reason>")
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid withdrawal id %q", parts[1])
	}
	return id, strings.Join(parts[2:], " "), nil
}

func (h *Handler) summaryText(s *domain.FinanceSummary) string {
	can := "no"
	if s.CanWithdraw {
		can = "yes"
	}
	return fmt.Sprintf("📊 *Summary* `%s`\n\n"+
		"Outstanding dues: %d (%s)\n"+
		"Pending commission: %s\n"+
		"Available: %s\n"+
		"In flight: %s\n"+
		"Withdrawn: %s\n"+
		"Can withdraw: %s",
		s.UserID,
		s.OutstandingDues, h.ops.FormatAmount(s.OutstandingDuesAmount, s.Currency),
		h.ops.FormatAmount(s.PendingCommission, s.Currency),
		h.ops.FormatAmount(s.AvailableBalance, s.Currency),
		h.ops.FormatAmount(s.InFlightWithdrawals, s.Currency),
		h.ops.FormatAmount(s.WithdrawnTotal, s.Currency),
		can,
	)
}

// userError renders service errors an operator can act on.
func userError(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidTransition):
		return "⚠️ That transition is not allowed from the current status."
	case errors.Is(err, domain.ErrWithdrawalNotFound), errors.Is(err, domain.ErrAccountNotFound):
		return "⚠️ Not found."
	case errors.Is(err, domain.ErrKYCNotPending):
		return "⚠️ KYC is not pending review."
	default:
		return "❌ Something went wrong, see the error log."
	}
}
