package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/eventledger/internal/config"
	"github.com/set-night/eventledger/internal/domain"
	tg "github.com/set-night/eventledger/internal/telegram"
)

func (h *Handler) handlePending(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	items, err := h.withdrawals.ListByStatus(ctx, config.WithdrawalsPerPage,
		domain.WithdrawalStatusPending, domain.WithdrawalStatusProcessing)
	if err != nil {
		slog.Error("list pending withdrawals", "error", err)
		h.ops.LogError(ctx, err, "/pending")
		h.reply(ctx, b, chatID, userError(err))
		return
	}
	if len(items) == 0 {
		h.reply(ctx, b, chatID, "🎉 No withdrawals waiting.")
		return
	}

	for _, w := range items {
		if err := tg.SendLongMessage(ctx, b, chatID, h.ops.FormatWithdrawal(w), tg.InlineKeyboard(withdrawalKeyboard(w))); err != nil {
			slog.Error("send pending withdrawal", "withdrawal_id", w.ID, "error", err)
		}
	}
}

func (h *Handler) handleWithdrawalCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID})

	var chatID int64
	var messageID int
	if msg := cq.Message.Message; msg != nil {
		chatID = msg.Chat.ID
		messageID = msg.ID
	}

	action, id, err := parseWithdrawalCallback(cq.Data)
	if err != nil {
		slog.Warn("bad withdrawal callback", "data", cq.Data, "error", err)
		return
	}

	var w *domain.Withdrawal
	switch action {
	case callbackProcessing:
		w, err = h.withdrawals.MarkProcessing(ctx, id)
	case callbackComplete:
		w, err = h.withdrawals.Complete(ctx, id)
	case callbackFail:
		w, err = h.withdrawals.Fail(ctx, id, "")
	}
	if err != nil {
		slog.Error("withdrawal transition", "withdrawal_id", id, "action", action, "operator", cq.From.ID, "error", err)
		h.reply(ctx, b, chatID, userError(err))
		return
	}
	slog.Info("withdrawal transition by operator", "withdrawal_id", id, "status", w.Status, "operator", cq.From.ID)

	if chatID == 0 {
		return
	}
	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      h.ops.FormatWithdrawal(*w),
		ParseMode: models.ParseModeMarkdownV1,
	}
	if row := withdrawalKeyboard(*w); len(row) > 0 {
		params.ReplyMarkup = tg.InlineKeyboard(row)
	}
	b.EditMessageText(ctx, params)
}

func (h *Handler) handleFailCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	id, reason, err := parseFailCommand(update.Message.Text)
	if err != nil {
		h.reply(ctx, b, chatID, tg.EscapeMarkdown(err.Error()))
		return
	}
	w, err := h.withdrawals.Fail(ctx, id, strings.TrimSpace(reason))
	if err != nil {
		h.reply(ctx, b, chatID, userError(err))
		return
	}
	h.reply(ctx, b, chatID, h.ops.FormatWithdrawal(*w))
}
