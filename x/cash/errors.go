package cash

import (
	"github.com/tidewater-labs/submarine/errors"
)

// Error codes 1210-1219 are reserved for the cash extension.
var (
	// ErrEmptyAccount is returned when the source of a transfer holds
	// no wallet at all.
	ErrEmptyAccount = errors.Register(1210, "empty account")

	// ErrInsufficientFunds is returned when the source wallet does not
	// hold enough coins to fund the transfer.
	ErrInsufficientFunds = errors.Register(1211, "insufficient funds")
)
