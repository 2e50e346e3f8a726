package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler, secret string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]string{"state": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMiddleware(secret))

		r.Get("/account", h.account)
		r.Post("/kyc", h.submitKYC)

		r.Get("/finance/summary", h.summary)
		r.Get("/finance/transactions", h.transactions)

		r.Get("/dues", h.listDues)
		r.Post("/dues/{id}/clear", h.clearDue)

		r.Get("/commissions", h.listCommissions)

		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/quote", h.quote)
			r.Post("/", h.requestWithdrawal)
			r.Get("/", h.listWithdrawals)
			r.Get("/{id}", h.getWithdrawal)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", h.createEvent)
			r.Get("/{id}", h.getEvent)
			r.Post("/{id}/join", h.joinEvent)
			r.Post("/{id}/close", h.closeEvent)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/withdrawals", h.withdrawalQueue)
			r.Post("/withdrawals/{id}/{action}", h.transitionWithdrawal)
			r.Post("/kyc/{userID}/{decision}", h.reviewKYC)
			r.Get("/events/{id}/ledger", h.eventLedger)
			r.Get("/users/{userID}/summary", h.userSummary)
		})
	})
	return r
}
