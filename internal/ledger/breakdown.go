// Package ledger holds the pure money rules of the marketplace: withdrawal
// fee breakdown, commission split and the lifecycle tables for dues,
// commissions and withdrawals. Nothing here touches storage.
package ledger

import (
	"errors"

	"github.com/set-night/eventledger/internal/config"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrBelowMinimumWithdrawal = errors.New("amount below minimum withdrawal")
)

var (
	DueAmount      = decimal.NewFromInt(config.DueAmountPerJoin)
	CommissionRate = decimal.NewFromFloat(config.CommissionRate)
	MinWithdrawal  = decimal.NewFromInt(config.MinWithdrawalAmount)
	GatewayFeeRate = decimal.NewFromFloat(config.GatewayFeePercentage)
	GSTRate        = decimal.NewFromFloat(config.GSTPercentage)
)

// Breakdown splits a gross withdrawal into what the gateway, the tax
// authority and the user receive. GatewayFee + GST + NetAmount == Gross.
type Breakdown struct {
	Gross      decimal.Decimal `json:"gross_amount"`
	GatewayFee decimal.Decimal `json:"gateway_fee"`
	GST        decimal.Decimal `json:"gst"`
	NetAmount  decimal.Decimal `json:"net_amount"`
}

// CalculateWithdrawalBreakdown computes the fee, GST and net payout for gross.
// GST is charged on the gateway fee. Arithmetic is exact; nothing is rounded.
func CalculateWithdrawalBreakdown(gross decimal.Decimal) (Breakdown, error) {
	if gross.IsNegative() {
		return Breakdown{}, ErrNegativeAmount
	}
	fee := gross.Mul(GatewayFeeRate)
	gst := fee.Mul(GSTRate)
	return Breakdown{
		Gross:      gross,
		GatewayFee: fee,
		GST:        gst,
		NetAmount:  gross.Sub(fee).Sub(gst),
	}, nil
}

// ValidateWithdrawalAmount enforces the inclusive minimum.
func ValidateWithdrawalAmount(gross decimal.Decimal) error {
	if gross.LessThan(MinWithdrawal) {
		return ErrBelowMinimumWithdrawal
	}
	return nil
}

// CommissionFor returns the creator's share of gross collected dues.
func CommissionFor(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(CommissionRate)
}

// PlatformShare is what the platform retains out of gross collected dues.
func PlatformShare(gross decimal.Decimal) decimal.Decimal {
	return gross.Sub(CommissionFor(gross))
}

// CommissionReady reports whether every participant's due is cleared.
// Partial collection never releases a commission.
func CommissionReady(cleared, total int) bool {
	return total > 0 && cleared == total
}
