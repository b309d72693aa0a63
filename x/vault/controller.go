package vault

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
	"github.com/tidewater-labs/submarine/x/cash"
)

// Ledger is the part of the cash functionality the vault controller
// needs: moving funds and reading balances.
type Ledger interface {
	cash.CoinMover
	cash.Balancer
}

// Controller implements the vault operations on top of the cash
// ledger. Vault funds are regular wallets held under the vault
// condition address.
type Controller struct {
	bucket Bucket
	ledger Ledger
}

// NewController returns a controller using the default vault bucket
// and the given ledger.
func NewController(ledger Ledger) Controller {
	return Controller{
		bucket: NewBucket(),
		ledger: ledger,
	}
}

// Create stores a new vault owned by the given address and returns
// its ID. The fee schedule counts from height zero, so the first
// payment is due one interval after creation of the chain, not of the
// vault.
func (c Controller) Create(db submarine.KVStore, owner submarine.Address, collector submarine.Address, interval int64, ticker string) ([]byte, error) {
	v := &Vault{
		Owner:        owner,
		FeeCollector: collector,
		FeeInterval:  interval,
		FeeTicker:    ticker,
	}
	return c.bucket.Create(db, v)
}

// GetVault returns the vault with the given ID, or ErrNotFound.
func (c Controller) GetVault(db submarine.ReadOnlyKVStore, vaultID []byte) (*Vault, error) {
	return c.bucket.Get(db, vaultID)
}

// Balance returns the funds held by the vault. A vault that never
// received a deposit has an empty balance.
func (c Controller) Balance(db submarine.ReadOnlyKVStore, vaultID []byte) (coin.Coins, error) {
	if _, err := c.bucket.Get(db, vaultID); err != nil {
		return nil, err
	}
	return c.balance(db, Condition(vaultID).Address())
}

func (c Controller) balance(db submarine.ReadOnlyKVStore, addr submarine.Address) (coin.Coins, error) {
	cs, err := c.ledger.Balance(db, addr)
	switch {
	case err == nil:
		return cs, nil
	case cash.ErrEmptyAccount.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// Deposit moves the amount from the source into the vault and then
// evaluates the fee schedule against the new balance. A zero amount
// moves nothing but still evaluates the schedule.
func (c Controller) Deposit(db submarine.KVStore, vaultID []byte, source submarine.Address, amount coin.Coin, height int64) (bool, error) {
	v, err := c.bucket.Get(db, vaultID)
	if err != nil {
		return false, err
	}
	if !amount.IsZero() {
		if err := c.ledger.MoveCoins(db, source, Condition(vaultID).Address(), amount); err != nil {
			return false, errors.Wrap(err, "deposit transfer")
		}
	}
	return c.runSchedule(db, vaultID, v, height)
}

// Withdraw moves the amount out of the vault to the recipient and then
// evaluates the fee schedule against the remaining balance. Only the
// vault owner can withdraw. The outbound transfer happens before the
// schedule evaluation, so a single withdrawal can also trigger a fee
// payment, funded by whatever is left.
func (c Controller) Withdraw(db submarine.KVStore, vaultID []byte, caller submarine.Address, recipient submarine.Address, amount coin.Coin, height int64) (bool, error) {
	v, err := c.bucket.Get(db, vaultID)
	if err != nil {
		return false, err
	}
	if !caller.Equals(v.Owner) {
		return false, errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	if len(recipient) == 0 {
		return false, errors.Wrap(ErrInvalidRecipient, "empty recipient")
	}
	if err := recipient.Validate(); err != nil {
		return false, errors.Wrap(ErrInvalidRecipient, err.Error())
	}

	vaultAddr := Condition(vaultID).Address()
	held, err := c.balance(db, vaultAddr)
	if err != nil {
		return false, err
	}
	if !held.Contains(amount) {
		return false, errors.Wrapf(ErrInsufficientBalance, "withdraw %s", amount)
	}
	if err := c.ledger.MoveCoins(db, vaultAddr, recipient, amount); err != nil {
		return false, errors.Wrap(err, "withdraw transfer")
	}
	return c.runSchedule(db, vaultID, v, height)
}

// Tick forces a fee schedule evaluation without moving funds. Only the
// vault owner can tick.
func (c Controller) Tick(db submarine.KVStore, vaultID []byte, caller submarine.Address, height int64) (bool, error) {
	v, err := c.bucket.Get(db, vaultID)
	if err != nil {
		return false, err
	}
	if !caller.Equals(v.Owner) {
		return false, errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	return c.runSchedule(db, vaultID, v, height)
}

// RunSchedule evaluates the fee schedule of the vault. There is no
// caller restriction, so keepers can enforce payment on idle vaults.
func (c Controller) RunSchedule(db submarine.KVStore, vaultID []byte, height int64) (bool, error) {
	v, err := c.bucket.Get(db, vaultID)
	if err != nil {
		return false, err
	}
	return c.runSchedule(db, vaultID, v, height)
}

// Receive evaluates the fee schedule of the vault whose treasury is
// the given address. Value can land on a treasury through a plain
// transfer, without a deposit message, and the schedule must still
// react to the new balance. An address no vault holds funds under is
// ignored and reported with a nil vault ID.
func (c Controller) Receive(db submarine.KVStore, addr submarine.Address, height int64) ([]byte, bool, error) {
	vaultID, err := c.bucket.ByAddress(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	v, err := c.bucket.Get(db, vaultID)
	if err != nil {
		return nil, false, err
	}
	paid, err := c.runSchedule(db, vaultID, v, height)
	return vaultID, paid, err
}

// runSchedule decides whether a fee payment is due and affordable and
// if so performs it. Not due and underfunded are both silent no-ops
// returning false, so routine deposits and withdrawals never fail
// merely because a fee happens not to be payable yet.
//
// The mark update and the fee transfer are one atomic unit, staged in
// a cache wrap and committed together. A store that cannot cache wrap
// cannot hold vaults, a payment against it fails before touching any
// state.
func (c Controller) runSchedule(db submarine.KVStore, vaultID []byte, v *Vault, height int64) (bool, error) {
	if height < v.NextDue() {
		return false, nil
	}
	fee := v.FeeAmount()
	held, err := c.balance(db, Condition(vaultID).Address())
	if err != nil {
		return false, err
	}
	if !held.Contains(fee) {
		return false, nil
	}

	cdb, ok := db.(submarine.CacheableKVStore)
	if !ok {
		return false, errors.Wrap(errors.ErrDatabase, "store does not support atomic fee payment")
	}

	v.LastPaymentMark = height

	cache := cdb.CacheWrap()
	if err := c.payFee(cache, vaultID, v, fee); err != nil {
		cache.Discard()
		return false, err
	}
	if err := cache.Write(); err != nil {
		return false, errors.Wrap(err, "cannot commit fee payment")
	}
	return true, nil
}

func (c Controller) payFee(db submarine.KVStore, vaultID []byte, v *Vault, fee coin.Coin) error {
	if err := c.bucket.Save(db, vaultID, v); err != nil {
		return err
	}
	if err := c.ledger.MoveCoins(db, Condition(vaultID).Address(), v.FeeCollector, fee); err != nil {
		return errors.Wrap(ErrFeeTransferFailed, err.Error())
	}
	return nil
}
