package cash

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
)

// CoinMover is a controller that moves coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them
	// to the destination account. This operation is atomic.
	MoveCoins(db submarine.KVStore, source submarine.Address, destination submarine.Address, amount coin.Coin) error
}

// CoinMinter is a controller that creates new coins out of thin air.
type CoinMinter interface {
	// IssueCoins increases the amount of funds on an account.
	IssueCoins(db submarine.KVStore, destination submarine.Address, amount coin.Coin) error
}

// Balancer is a controller that provides read access to an account
// balance.
type Balancer interface {
	Balance(db submarine.ReadOnlyKVStore, addr submarine.Address) (coin.Coins, error)
}

// Controller is the full interface of the cash functionality.
type Controller interface {
	CoinMover
	CoinMinter
	Balancer
}

// CashController is the standard implementation of the cash ledger.
type CashController struct {
	bucket Bucket
}

var _ Controller = CashController{}

// NewController returns a controller using the default wallet bucket.
func NewController() CashController {
	return CashController{bucket: NewBucket()}
}

// MoveCoins moves the given amount from source to destination. It fails
// if the source has insufficient funds or the amount is not positive.
func (c CashController) MoveCoins(db submarine.KVStore,
	source submarine.Address, destination submarine.Address,
	amount coin.Coin) error {

	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive payment: %#v", &amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.Get(db, source)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(ErrEmptyAccount, "empty account %s", source)
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(ErrInsufficientFunds, "funds %#v", amount)
	}

	recipient, err := c.bucket.GetOrCreate(db, destination)
	if err != nil {
		return err
	}

	// deduct and add before any save so a failure here leaves the
	// store untouched
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins attempts to add the given amount of coins to the
// destination address. New coins are created.
func (c CashController) IssueCoins(db submarine.KVStore,
	destination submarine.Address, amount coin.Coin) error {

	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	recipient, err := c.bucket.GetOrCreate(db, destination)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// Balance returns the coins held by the given account. A missing
// account is reported with ErrEmptyAccount.
func (c CashController) Balance(db submarine.ReadOnlyKVStore, addr submarine.Address) (coin.Coins, error) {
	wallet, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load wallet")
	}
	if wallet == nil {
		return nil, errors.Wrapf(ErrEmptyAccount, "empty account %s", addr)
	}
	return wallet.Coins, nil
}
