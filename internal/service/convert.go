package service

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/repository/sqlc"
	"github.com/shopspring/decimal"
)

// pgTimestamptzToTime converts pgtype.Timestamptz to time.Time.
func pgTimestamptzToTime(ts pgtype.Timestamptz) time.Time {
	if ts.Valid {
		return ts.Time
	}
	return time.Time{}
}

// pgTimestamptzToTimePtr converts pgtype.Timestamptz to *time.Time.
func pgTimestamptzToTimePtr(ts pgtype.Timestamptz) *time.Time {
	if ts.Valid {
		t := ts.Time
		return &t
	}
	return nil
}

// timeToPgTimestamptz converts time.Time to pgtype.Timestamptz.
func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// notFound maps a missing row to the given domain sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}

func toAccount(a sqlc.Account) domain.Account {
	return domain.Account{
		UserID:      a.UserID,
		DisplayName: a.DisplayName,
		KYCStatus:   domain.KYCStatus(a.KycStatus),
		CreatedAt:   pgTimestamptzToTime(a.CreatedAt),
		UpdatedAt:   pgTimestamptzToTime(a.UpdatedAt),
	}
}

func toEvent(e sqlc.Event) domain.Event {
	return domain.Event{
		ID:        e.ID,
		CreatorID: e.CreatorID,
		Title:     e.Title,
		City:      e.City,
		StartsAt:  pgTimestamptzToTime(e.StartsAt),
		Status:    domain.EventStatus(e.Status),
		CreatedAt: pgTimestamptzToTime(e.CreatedAt),
		ClosedAt:  pgTimestamptzToTimePtr(e.ClosedAt),
	}
}

func toDue(d sqlc.Due) domain.Due {
	return domain.Due{
		ID:            d.ID,
		EventID:       d.EventID,
		UserID:        d.UserID,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Status:        domain.DueStatus(d.Status),
		ClearedVia:    domain.ClearedVia(derefStr(d.ClearedVia)),
		PaymentMethod: derefStr(d.PaymentMethod),
		CreatedAt:     pgTimestamptzToTime(d.CreatedAt),
		ClearedAt:     pgTimestamptzToTimePtr(d.ClearedAt),
	}
}

func toCommission(c sqlc.Commission) domain.Commission {
	return domain.Commission{
		ID:                      c.ID,
		EventID:                 c.EventID,
		CreatorID:               c.CreatorID,
		TotalParticipants:       int(c.TotalParticipants),
		ParticipantsDuesCleared: int(c.ParticipantsDuesCleared),
		GrossAmount:             c.GrossAmount,
		Rate:                    c.Rate,
		CommissionAmount:        c.CommissionAmount,
		Currency:                c.Currency,
		Status:                  domain.CommissionStatus(c.Status),
		CreatedAt:               pgTimestamptzToTime(c.CreatedAt),
		AvailableAt:             pgTimestamptzToTimePtr(c.AvailableAt),
		WithdrawnAt:             pgTimestamptzToTimePtr(c.WithdrawnAt),
	}
}

func toWithdrawal(w sqlc.Withdrawal) domain.Withdrawal {
	return domain.Withdrawal{
		ID:          w.ID,
		UserID:      w.UserID,
		GrossAmount: w.GrossAmount,
		GatewayFee:  w.GatewayFee,
		GST:         w.Gst,
		NetAmount:   w.NetAmount,
		Currency:    w.Currency,
		Bank: domain.BankDetails{
			AccountHolderName: w.AccountHolderName,
			AccountNumber:     w.AccountNumber,
			IFSCCode:          w.IfscCode,
			BankName:          w.BankName,
			UPIID:             derefStr(w.UpiID),
		},
		Status:        domain.WithdrawalStatus(w.Status),
		FailureReason: derefStr(w.FailureReason),
		CreatedAt:     pgTimestamptzToTime(w.CreatedAt),
		ProcessingAt:  pgTimestamptzToTimePtr(w.ProcessingAt),
		CompletedAt:   pgTimestamptzToTimePtr(w.CompletedAt),
		FailedAt:      pgTimestamptzToTimePtr(w.FailedAt),
	}
}

func toTransaction(t sqlc.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:            t.ID,
		UserID:        t.UserID,
		Type:          domain.TxType(t.Type),
		Status:        domain.TxStatus(t.Status),
		Amount:        t.Amount,
		Currency:      t.Currency,
		EventID:       t.EventID,
		WithdrawalID:  t.WithdrawalID,
		PaymentMethod: derefStr(t.PaymentMethod),
		GatewayFee:    nullDecimalPtr(t.GatewayFee),
		GST:           nullDecimalPtr(t.Gst),
		NetAmount:     nullDecimalPtr(t.NetAmount),
		CreatedAt:     pgTimestamptzToTime(t.CreatedAt),
		CompletedAt:   pgTimestamptzToTimePtr(t.CompletedAt),
	}
}

func mapSlice[S any, D any](items []S, fn func(S) D) []D {
	out := make([]D, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
