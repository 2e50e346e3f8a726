package handler

import (
	"github.com/go-telegram/bot"
)

// Register wires all commands and callbacks.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pending", bot.MatchTypePrefix, h.handlePending)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/fail", bot.MatchTypePrefix, h.handleFailCommand)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/summary", bot.MatchTypePrefix, h.handleSummary)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/kyc", bot.MatchTypePrefix, h.handleKYC)

	// Withdrawal callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, callbackProcessing, bot.MatchTypePrefix, h.handleWithdrawalCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, callbackComplete, bot.MatchTypePrefix, h.handleWithdrawalCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, callbackFail, bot.MatchTypePrefix, h.handleWithdrawalCallback)
}
