package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover returns middleware that recovers from panics. report, when set,
// receives the panic as an error.
func Recover(report func(ctx context.Context, err error)) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					updateType, chatID, userID := describe(update)
					slog.Error("panic recovered in handler",
						"panic", r,
						"type", updateType,
						"chat_id", chatID,
						"user_id", userID,
						"stack", string(debug.Stack()),
					)
					if report != nil {
						report(ctx, fmt.Errorf("panic in %s handler: %v", updateType, r))
					}
				}
			}()
			next(ctx, b, update)
		}
	}
}
