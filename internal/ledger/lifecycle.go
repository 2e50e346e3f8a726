package ledger

import (
	"errors"
	"fmt"

	"github.com/set-night/eventledger/internal/domain"
)

var ErrInvalidTransition = errors.New("invalid status transition")

var dueTransitions = map[domain.DueStatus][]domain.DueStatus{
	domain.DueStatusPending: {domain.DueStatusCleared},
}

var commissionTransitions = map[domain.CommissionStatus][]domain.CommissionStatus{
	domain.CommissionStatusPending:   {domain.CommissionStatusAvailable},
	domain.CommissionStatusAvailable: {domain.CommissionStatusWithdrawn},
}

var withdrawalTransitions = map[domain.WithdrawalStatus][]domain.WithdrawalStatus{
	domain.WithdrawalStatusPending:    {domain.WithdrawalStatusProcessing, domain.WithdrawalStatusFailed},
	domain.WithdrawalStatusProcessing: {domain.WithdrawalStatusCompleted, domain.WithdrawalStatusFailed},
}

func allowed[S comparable](table map[S][]S, from, to S) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

func DueTransition(from, to domain.DueStatus) error {
	if !allowed(dueTransitions, from, to) {
		return fmt.Errorf("%w: due %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

func CommissionTransition(from, to domain.CommissionStatus) error {
	if !allowed(commissionTransitions, from, to) {
		return fmt.Errorf("%w: commission %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

func WithdrawalTransition(from, to domain.WithdrawalStatus) error {
	if !allowed(withdrawalTransitions, from, to) {
		return fmt.Errorf("%w: withdrawal %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// WithdrawalTerminal reports whether no further transition exists.
func WithdrawalTerminal(s domain.WithdrawalStatus) bool {
	return len(withdrawalTransitions[s]) == 0
}
