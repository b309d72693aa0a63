package vault

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
)

var (
	_ submarine.Msg = (*CreateVaultMsg)(nil)
	_ submarine.Msg = (*DepositMsg)(nil)
	_ submarine.Msg = (*WithdrawMsg)(nil)
	_ submarine.Msg = (*TickMsg)(nil)
	_ submarine.Msg = (*RunScheduleMsg)(nil)
)

// CreateVaultMsg creates a new vault. The main signer becomes the
// owner.
type CreateVaultMsg struct {
	FeeCollector submarine.Address `json:"fee_collector"`
	FeeInterval  int64             `json:"fee_interval"`
	FeeTicker    string            `json:"fee_ticker"`
}

func (CreateVaultMsg) Path() string {
	return "vault/create"
}

func (m *CreateVaultMsg) Validate() error {
	var err error
	if len(m.FeeCollector) == 0 {
		err = errors.Append(err, errors.Field("FeeCollector", ErrInvalidCollector, "empty collector"))
	} else {
		err = errors.Append(err, errors.Field("FeeCollector", m.FeeCollector.Validate(), "invalid collector"))
	}
	if m.FeeInterval <= 0 {
		err = errors.Append(err, errors.Field("FeeInterval", ErrInvalidInterval, "must be greater than zero"))
	}
	if !coin.IsCC(m.FeeTicker) {
		err = errors.Append(err, errors.Field("FeeTicker", errors.ErrCurrency, "invalid ticker"))
	}
	return err
}

// DepositMsg moves funds from the main signer into the vault. A zero
// amount is legal and still triggers a fee schedule evaluation.
type DepositMsg struct {
	VaultID []byte     `json:"vault_id"`
	Amount  *coin.Coin `json:"amount"`
}

func (DepositMsg) Path() string {
	return "vault/deposit"
}

func (m *DepositMsg) Validate() error {
	var err error
	err = errors.Append(err, errors.Field("VaultID", validateVaultID(m.VaultID), "invalid vault ID"))
	switch {
	case m.Amount == nil:
		err = errors.Append(err, errors.Field("Amount", errors.ErrAmount, "missing amount"))
	case !m.Amount.IsNonNegative():
		err = errors.Append(err, errors.Field("Amount", errors.ErrAmount, "must not be negative"))
	case !m.Amount.IsZero():
		err = errors.Append(err, errors.Field("Amount", m.Amount.Validate(), "invalid amount"))
	}
	return err
}

// WithdrawMsg moves funds out of the vault. Only the vault owner can
// withdraw.
type WithdrawMsg struct {
	VaultID   []byte            `json:"vault_id"`
	Recipient submarine.Address `json:"recipient"`
	Amount    *coin.Coin        `json:"amount"`
}

func (WithdrawMsg) Path() string {
	return "vault/withdraw"
}

func (m *WithdrawMsg) Validate() error {
	var err error
	err = errors.Append(err, errors.Field("VaultID", validateVaultID(m.VaultID), "invalid vault ID"))
	if len(m.Recipient) == 0 {
		err = errors.Append(err, errors.Field("Recipient", ErrInvalidRecipient, "empty recipient"))
	} else {
		err = errors.Append(err, errors.Field("Recipient", m.Recipient.Validate(), "invalid recipient"))
	}
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		err = errors.Append(err, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	} else {
		err = errors.Append(err, errors.Field("Amount", m.Amount.Validate(), "invalid amount"))
	}
	return err
}

// TickMsg forces a fee schedule evaluation without moving funds. Only
// the vault owner can tick.
type TickMsg struct {
	VaultID []byte `json:"vault_id"`
}

func (TickMsg) Path() string {
	return "vault/tick"
}

func (m *TickMsg) Validate() error {
	return errors.Field("VaultID", validateVaultID(m.VaultID), "invalid vault ID")
}

// RunScheduleMsg evaluates the fee schedule of a vault. Anyone can
// send it, so external keepers can enforce on-time payment.
type RunScheduleMsg struct {
	VaultID []byte `json:"vault_id"`
}

func (RunScheduleMsg) Path() string {
	return "vault/run_schedule"
}

func (m *RunScheduleMsg) Validate() error {
	return errors.Field("VaultID", validateVaultID(m.VaultID), "invalid vault ID")
}

func validateVaultID(vaultID []byte) error {
	if len(vaultID) != 8 {
		return errors.Wrapf(errors.ErrInput, "vault ID must be 8 bytes, got %d", len(vaultID))
	}
	return nil
}
