package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusCompleted  WithdrawalStatus = "completed"
	WithdrawalStatusFailed     WithdrawalStatus = "failed"
)

var (
	ifscPattern          = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountNumberPattern = regexp.MustCompile(`^[0-9]{9,18}$`)
	upiPattern           = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,256}@[a-zA-Z]{2,64}$`)
)

// BankDetails is the payout destination for a withdrawal.
type BankDetails struct {
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	BankName          string `json:"bank_name"`
	UPIID             string `json:"upi_id,omitempty"`
}

// Normalize trims whitespace and upper-cases the IFSC code.
func (b BankDetails) Normalize() BankDetails {
	return BankDetails{
		AccountHolderName: strings.TrimSpace(b.AccountHolderName),
		AccountNumber:     strings.TrimSpace(b.AccountNumber),
		IFSCCode:          strings.ToUpper(strings.TrimSpace(b.IFSCCode)),
		BankName:          strings.TrimSpace(b.BankName),
		UPIID:             strings.TrimSpace(b.UPIID),
	}
}

func (b BankDetails) Validate() error {
	if b.AccountHolderName == "" || b.BankName == "" {
		return ErrInvalidBankDetails
	}
	if !accountNumberPattern.MatchString(b.AccountNumber) {
		return ErrInvalidBankDetails
	}
	if !ifscPattern.MatchString(b.IFSCCode) {
		return ErrInvalidBankDetails
	}
	if b.UPIID != "" && !upiPattern.MatchString(b.UPIID) {
		return ErrInvalidBankDetails
	}
	return nil
}

// MaskedAccountNumber keeps the last four digits.
func (b BankDetails) MaskedAccountNumber() string {
	n := len(b.AccountNumber)
	if n <= 4 {
		return b.AccountNumber
	}
	return strings.Repeat("•", n-4) + b.AccountNumber[n-4:]
}

// Withdrawal is a payout request against the available commission balance.
type Withdrawal struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	GrossAmount   decimal.Decimal  `json:"gross_amount"`
	GatewayFee    decimal.Decimal  `json:"gateway_fee"`
	GST           decimal.Decimal  `json:"gst"`
	NetAmount     decimal.Decimal  `json:"net_amount"`
	Currency      string           `json:"currency"`
	Bank          BankDetails      `json:"bank"`
	Status        WithdrawalStatus `json:"status"`
	FailureReason string           `json:"failure_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	ProcessingAt  *time.Time       `json:"processing_at,omitempty"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	FailedAt      *time.Time       `json:"failed_at,omitempty"`
}
