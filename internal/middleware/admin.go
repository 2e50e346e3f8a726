package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly drops every update that does not come from a configured admin.
func AdminOnly(cfg interface{ IsAdmin(int64) bool }) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			_, chatID, userID := describe(update)
			if userID == 0 || !cfg.IsAdmin(userID) {
				slog.Warn("ignored update from non-admin", "chat_id", chatID, "user_id", userID)
				return
			}
			next(ctx, b, update)
		}
	}
}
