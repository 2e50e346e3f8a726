package handler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/config"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/telegram"
	"github.com/shopspring/decimal"
)

func TestParseWithdrawalCallback(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		data    string
		action  string
		wantErr bool
	}{
		{callbackProcessing + id.String(), callbackProcessing, false},
		{callbackComplete + id.String(), callbackComplete, false},
		{callbackFail + id.String(), callbackFail, false},
		{callbackFail + "nope", "", true},
		{"other_" + id.String(), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			action, got, err := parseWithdrawalCallback(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil || action != tt.action || got != id {
				t.Fatalf("got %q %s %v", action, got, err)
			}
		})
	}
}

func TestWithdrawalKeyboard(t *testing.T) {
	tests := []struct {
		status domain.WithdrawalStatus
		want   []string
	}{
		{domain.WithdrawalStatusPending, []string{callbackProcessing, callbackFail}},
		{domain.WithdrawalStatusProcessing, []string{callbackComplete, callbackFail}},
		{domain.WithdrawalStatusCompleted, nil},
		{domain.WithdrawalStatusFailed, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			w := domain.Withdrawal{ID: uuid.New(), Status: tt.status}
			row := withdrawalKeyboard(w)
			if len(row) != len(tt.want) {
				t.Fatalf("buttons = %d, want %d", len(row), len(tt.want))
			}
			for i, prefix := range tt.want {
				if row[i].CallbackData != prefix+w.ID.String() {
					t.Errorf("button %d = %q", i, row[i].CallbackData)
				}
				if len(row[i].CallbackData) > 64 {
					t.Errorf("callback data too long: %d", len(row[i].CallbackData))
				}
			}
		})
	}
}

func TestParseKYCCommand(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		text    string
		approve bool
		wantErr bool
	}{
		{fmt.Sprintf("/kyc %s approve", id), true, false},
		{fmt.Sprintf("/kyc %s REJECT", id), false, false},
		{fmt.Sprintf("/kyc %s maybe", id), false, true},
		{"/kyc not-a-uuid approve", false, true},
		{"/kyc", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, approve, err := parseKYCCommand(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil || got != id || approve != tt.approve {
				t.Fatalf("got %s %v %v", got, approve, err)
			}
		})
	}
}

func TestParseFailCommand(t *testing.T) {
	id := uuid.New()
	got, reason, err := parseFailCommand(fmt.Sprintf("/fail %s IFSC does not exist", id))
	if err != nil || got != id || reason != "IFSC does not exist" {
		t.Fatalf("got %s %q %v", got, reason, err)
	}
	if _, reason, err := parseFailCommand("/fail " + id.String()); err != nil || reason != "" {
		t.Fatalf("no reason: %q %v", reason, err)
	}
	if _, _, err := parseFailCommand("/fail"); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestSummaryText(t *testing.T) {
	h := &Handler{ops: telegram.NewOpsLogger(nil, &config.Config{})}
	text := h.summaryText(&domain.FinanceSummary{
		UserID:           uuid.New(),
		Currency:         "INR",
		AvailableBalance: decimal.NewFromInt(1200),
		CanWithdraw:      true,
	})
	for _, want := range []string{"Available: 1,200.00 INR", "Can withdraw: yes"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}
