package vault

import "github.com/tidewater-labs/submarine/errors"

// Error codes 1200-1209 are reserved for the vault extension.
var (
	// ErrInvalidCollector is returned when creating a vault with an
	// empty fee collector address.
	ErrInvalidCollector = errors.Register(1200, "invalid fee collector")

	// ErrInvalidInterval is returned when creating a vault with a non
	// positive fee interval.
	ErrInvalidInterval = errors.Register(1201, "invalid fee interval")

	// ErrNotOwner is returned when an owner gated operation is called
	// by anyone else.
	ErrNotOwner = errors.Register(1202, "not the vault owner")

	// ErrInvalidRecipient is returned when withdrawing to an empty
	// address.
	ErrInvalidRecipient = errors.Register(1203, "invalid recipient")

	// ErrInsufficientBalance is returned when withdrawing more than
	// the vault holds.
	ErrInsufficientBalance = errors.Register(1204, "insufficient balance")

	// ErrFeeTransferFailed is returned when a due and affordable fee
	// payment cannot be transferred. The schedule mark is not
	// advanced in that case.
	ErrFeeTransferFailed = errors.Register(1205, "fee transfer failed")
)
