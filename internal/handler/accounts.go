package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	tg "github.com/set-night/eventledger/internal/telegram"
)

func (h *Handler) handleSummary(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) != 2 {
		h.reply(ctx, b, chatID, tg.EscapeMarkdown("Usage: /summary <userID>"))
		return
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		h.reply(ctx, b, chatID, "❌ Invalid user id.")
		return
	}

	sum, err := h.finance.Summary(ctx, userID)
	if err != nil {
		slog.Error("summary", "user_id", userID, "error", err)
		h.ops.LogError(ctx, err, "/summary")
		h.reply(ctx, b, chatID, userError(err))
		return
	}
	h.reply(ctx, b, chatID, h.summaryText(sum))
}

func (h *Handler) handleKYC(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	userID, approve, err := parseKYCCommand(update.Message.Text)
	if err != nil {
		h.reply(ctx, b, chatID, tg.EscapeMarkdown(err.Error()))
		return
	}
	acc, err := h.accounts.ReviewKYC(ctx, userID, approve)
	if err != nil {
		h.reply(ctx, b, chatID, userError(err))
		return
	}
	h.reply(ctx, b, chatID, fmt.Sprintf("🪪 KYC for `%s` is now *%s*.", acc.UserID, acc.KYCStatus))
}
