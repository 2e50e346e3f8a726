package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const helpText = "🧾 *Ledger operator console*\n\n" +
	"/pending - withdrawals waiting for payout\n" +
	"/fail <withdrawalID> <reason> - reject a withdrawal\n" +
	"/summary <userID> - finance summary of a user\n" +
	"/kyc <userID> approve|reject - review a KYC submission"

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      helpText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	}); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	}
}
