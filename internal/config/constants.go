package config

import "time"

const (
	// Dues
	DueAmountPerJoin = 25

	// Commission: creator keeps this share of cleared dues, platform keeps the rest.
	CommissionRate = 0.80

	// Withdrawals
	MinWithdrawalAmount  = 1000
	GatewayFeePercentage = 0.02
	GSTPercentage        = 0.18 // levied on the gateway fee, not the gross

	// HTTP server timeouts
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 10 * time.Second

	// Ops log send timeout
	OpsLogTimeout = 10 * time.Second

	// History paging
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Withdrawals per operator console page
	WithdrawalsPerPage = 10
)
