package handler

import (
	"github.com/go-telegram/bot"
	"github.com/set-night/eventledger/internal/service"
	"github.com/set-night/eventledger/internal/telegram"
)

// Handler holds the dependencies of the operator console commands and callbacks.
type Handler struct {
	bot         *bot.Bot
	accounts    *service.AccountService
	withdrawals *service.WithdrawalService
	finance     *service.FinanceService
	ops         *telegram.OpsLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Accounts    *service.AccountService
	Withdrawals *service.WithdrawalService
	Finance     *service.FinanceService
	Ops         *telegram.OpsLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		accounts:    deps.Accounts,
		withdrawals: deps.Withdrawals,
		finance:     deps.Finance,
		ops:         deps.Ops,
	}
}
