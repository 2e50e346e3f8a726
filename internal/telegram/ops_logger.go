package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/set-night/eventledger/internal/config"
	"github.com/set-night/eventledger/internal/domain"
	"github.com/set-night/eventledger/internal/service"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type LogType string

const (
	LogTypeError      LogType = "error"
	LogTypeWithdrawal LogType = "withdrawal"
	LogTypeCommission LogType = "commission"
	LogTypeKYC        LogType = "kyc"
)

// OpsLogger posts ledger events to topics of the operators' chat.
type OpsLogger struct {
	sender  Sender
	cfg     *config.Config
	printer *message.Printer
}

var _ service.Notifier = (*OpsLogger)(nil)

func NewOpsLogger(s Sender, cfg *config.Config) *OpsLogger {
	return &OpsLogger{
		sender:  s,
		cfg:     cfg,
		printer: message.NewPrinter(language.MustParse("en-IN")),
	}
}

func (l *OpsLogger) Log(ctx context.Context, logType LogType, text string) {
	if l.cfg.LogTelegramChatID == 0 {
		return
	}
	topicID := l.topicID(logType)
	if topicID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.OpsLogTimeout)
	defer cancel()

	_, err := l.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            Truncate(text, MaxMessageLen),
		ParseMode:       "Markdown",
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send ops log", "type", logType, "error", err)
	}
}

func (l *OpsLogger) LogError(ctx context.Context, err error, where string) {
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		EscapeMarkdown(where), strings.ReplaceAll(err.Error(), "`", "'"), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(ctx, LogTypeError, msg)
}

func (l *OpsLogger) WithdrawalRequested(ctx context.Context, w domain.Withdrawal) {
	l.Log(ctx, LogTypeWithdrawal, "🏦 *Withdrawal requested*\n\n"+l.FormatWithdrawal(w))
}

func (l *OpsLogger) WithdrawalCompleted(ctx context.Context, w domain.Withdrawal) {
	l.Log(ctx, LogTypeWithdrawal, "✅ *Withdrawal completed*\n\n"+l.FormatWithdrawal(w))
}

func (l *OpsLogger) WithdrawalFailed(ctx context.Context, w domain.Withdrawal) {
	msg := "🚫 *Withdrawal failed*\n\n" + l.FormatWithdrawal(w)
	if w.FailureReason != "" {
		msg += fmt.Sprintf("\n*Reason:* %s", EscapeMarkdown(w.FailureReason))
	}
	l.Log(ctx, LogTypeWithdrawal, msg)
}

func (l *OpsLogger) CommissionAvailable(ctx context.Context, c domain.Commission) {
	msg := fmt.Sprintf("💰 *Commission released*\n\n*Creator:* `%s`\n*Event:* `%s`\n*Participants:* %d\n*Gross:* %s\n*Commission:* %s",
		c.CreatorID, c.EventID, c.TotalParticipants,
		l.FormatAmount(c.GrossAmount, c.Currency),
		l.FormatAmount(c.CommissionAmount, c.Currency))
	l.Log(ctx, LogTypeCommission, msg)
}

func (l *OpsLogger) KYCSubmitted(ctx context.Context, a domain.Account) {
	msg := fmt.Sprintf("🪪 *KYC submitted*\n\n*User:* `%s`\n*Name:* %s\n\n/kyc %s approve",
		a.UserID, EscapeMarkdown(a.DisplayName), a.UserID)
	l.Log(ctx, LogTypeKYC, msg)
}

// FormatAmount renders amount with two decimals and locale grouping.
func (l *OpsLogger) FormatAmount(amount decimal.Decimal, currency string) string {
	return l.printer.Sprintf("%v %s", number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)), currency)
}

// FormatWithdrawal renders the operator view of a withdrawal.
func (l *OpsLogger) FormatWithdrawal(w domain.Withdrawal) string {
	return fmt.Sprintf("*ID:* `%s`\n*User:* `%s`\n*Status:* %s\n*Gross:* %s\n*Fee:* %s\n*GST:* %s\n*Net:* %s\n*Bank:* %s, %s (%s)",
		w.ID, w.UserID, w.Status,
		l.FormatAmount(w.GrossAmount, w.Currency),
		l.FormatAmount(w.GatewayFee, w.Currency),
		l.FormatAmount(w.GST, w.Currency),
		l.FormatAmount(w.NetAmount, w.Currency),
		EscapeMarkdown(w.Bank.BankName), w.Bank.MaskedAccountNumber(), w.Bank.IFSCCode)
}

func (l *OpsLogger) topicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeWithdrawal:
		return l.cfg.LogTopicWithdrawal
	case LogTypeCommission:
		return l.cfg.LogTopicCommission
	case LogTypeKYC:
		return l.cfg.LogTopicKYC
	default:
		return 0
	}
}
