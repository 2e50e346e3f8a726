package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/set-night/eventledger/internal/config"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/shopspring/decimal"
)

type fakeSender struct {
	sent    []*bot.SendMessageParams
	failFor int
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if f.failFor > 0 {
		f.failFor--
		return nil, errors.New("bad markdown")
	}
	f.sent = append(f.sent, params)
	return &models.Message{}, nil
}

func testWithdrawal() domain.Withdrawal {
	return domain.Withdrawal{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		GrossAmount: decimal.NewFromInt(1000),
		GatewayFee:  decimal.NewFromInt(20),
		GST:         decimal.RequireFromString("3.6"),
		NetAmount:   decimal.RequireFromString("976.4"),
		Currency:    "INR",
		Status:      domain.WithdrawalStatusPending,
		Bank: domain.BankDetails{
			AccountHolderName: "Asha Rao",
			AccountNumber:     "123456789012",
			IFSCCode:          "HDFC0001234",
			BankName:          "HDFC_Bank",
		},
	}
}

func TestOpsLoggerRoutesToTopics(t *testing.T) {
	s := &fakeSender{}
	cfg := &config.Config{LogTelegramChatID: -100, LogTopicWithdrawal: 7, LogTopicKYC: 9}
	l := NewOpsLogger(s, cfg)
	ctx := context.Background()

	l.WithdrawalRequested(ctx, testWithdrawal())
	l.KYCSubmitted(ctx, domain.Account{UserID: uuid.New(), DisplayName: "Meera"})
	// No topic configured for commissions.
	l.CommissionAvailable(ctx, domain.Commission{Currency: "INR"})

	if len(s.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(s.sent))
	}
	if s.sent[0].MessageThreadID != 7 || s.sent[1].MessageThreadID != 9 {
		t.Errorf("topics = %d, %d", s.sent[0].MessageThreadID, s.sent[1].MessageThreadID)
	}
	if s.sent[0].ChatID != int64(-100) {
		t.Errorf("chat = %v", s.sent[0].ChatID)
	}
}

func TestOpsLoggerDisabledWithoutChat(t *testing.T) {
	s := &fakeSender{}
	l := NewOpsLogger(s, &config.Config{LogTopicWithdrawal: 7})
	l.WithdrawalCompleted(context.Background(), testWithdrawal())
	if len(s.sent) != 0 {
		t.Fatalf("sent %d messages without a chat", len(s.sent))
	}
}

func TestLogErrorKeepsCodeSpanIntact(t *testing.T) {
	s := &fakeSender{}
	l := NewOpsLogger(s, &config.Config{LogTelegramChatID: -100, LogTopicError: 3})
	l.LogError(context.Background(), errors.New("column `starts_at` is null"), "create_event")

	if len(s.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(s.sent))
	}
	text := s.sent[0].Text
	if strings.Count(text, "`") != 2 {
		t.Errorf("unbalanced code span in %q", text)
	}
	if !strings.Contains(text, "column 'starts_at' is null") || !strings.Contains(text, `create\_event`) {
		t.Errorf("unexpected text %q", text)
	}
	if s.sent[0].MessageThreadID != 3 {
		t.Errorf("topic = %d, want 3", s.sent[0].MessageThreadID)
	}
}

func TestFormatWithdrawal(t *testing.T) {
	l := NewOpsLogger(&fakeSender{}, &config.Config{})
	text := l.FormatWithdrawal(testWithdrawal())

	for _, want := range []string{"1,000.00 INR", "976.40 INR", "3.60 INR", "••••••••9012", `HDFC\_Bank`} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "123456789012") {
		t.Error("full account number leaked")
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		max   int
		parts int
	}{
		{"fits", "short", 10, 1},
		{"hard split", strings.Repeat("a", 25), 10, 3},
		{"newline split", "aaaaaaa\nbbbbbbbbb", 10, 2},
		{"multibyte", strings.Repeat("₹", 12), 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitMessage(tt.text, tt.max)
			if len(got) != tt.parts {
				t.Fatalf("parts = %d (%q), want %d", len(got), got, tt.parts)
			}
			if strings.Join(got, "") != tt.text {
				t.Fatalf("parts do not reassemble: %q", got)
			}
		})
	}
}

func TestSendLongMessageFallsBackToPlainText(t *testing.T) {
	s := &fakeSender{failFor: 1}
	kb := InlineKeyboard(ButtonRow(InlineButton("ok", "ok")))
	if err := SendLongMessage(context.Background(), s, 1, "*bold", kb); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(s.sent) != 1 || s.sent[0].ParseMode != "" || s.sent[0].ReplyMarkup == nil {
		t.Fatalf("unexpected sends %+v", s.sent)
	}
}
