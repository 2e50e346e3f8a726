package service

import (
	"context"

	"github.com/set-night/eventledger/internal/domain"
)

// Notifier receives ledger events after they are committed. Implementations
// must not block for long; failures are theirs to log.
type Notifier interface {
	WithdrawalRequested(ctx context.Context, w domain.Withdrawal)
	WithdrawalCompleted(ctx context.Context, w domain.Withdrawal)
	WithdrawalFailed(ctx context.Context, w domain.Withdrawal)
	CommissionAvailable(ctx context.Context, c domain.Commission)
	KYCSubmitted(ctx context.Context, a domain.Account)
}

type NopNotifier struct{}

func (NopNotifier) WithdrawalRequested(context.Context, domain.Withdrawal) {}
func (NopNotifier) WithdrawalCompleted(context.Context, domain.Withdrawal) {}
func (NopNotifier) WithdrawalFailed(context.Context, domain.Withdrawal) {}
func (NopNotifier) CommissionAvailable(context.Context, domain.Commission) {}
func (NopNotifier) KYCSubmitted(context.Context, domain.Account) {}

func orNop(n Notifier) Notifier {
	if n == nil {
		return NopNotifier{}
	}
	return n
}
