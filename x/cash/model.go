package cash

import (
	"encoding/json"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is a set of coins held by a single address.
type Wallet struct {
	Address submarine.Address `json:"address"`
	Coins   coin.Coins        `json:"coins"`
}

// NewWallet creates an empty wallet with this address
func NewWallet(addr submarine.Address) *Wallet {
	return &Wallet{
		Address: addr,
	}
}

// Validate makes sure the fields aren't empty.
func (w *Wallet) Validate() error {
	var err error
	err = errors.Append(err, errors.Wrap(w.Address.Validate(), "address"))
	err = errors.Append(err, errors.Wrap(w.Coins.Validate(), "coins"))
	return err
}

// Add modifies the wallet to add Coin c
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins.Add(c)
	if err != nil {
		return err
	}
	w.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c
func (w *Wallet) Subtract(c coin.Coin) error {
	return w.Add(c.Negative())
}

// Copy returns an independent clone of this wallet
func (w *Wallet) Copy() *Wallet {
	return &Wallet{
		Address: append(submarine.Address(nil), w.Address...),
		Coins:   w.Coins.Clone(),
	}
}

// Bucket is the persistence layer of wallets. Wallets are stored
// under their address, JSON encoded.
type Bucket struct {
	prefix []byte
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		prefix: []byte(BucketName + ":"),
	}
}

func (b Bucket) dbKey(addr submarine.Address) []byte {
	return append(append([]byte{}, b.prefix...), addr...)
}

// Get returns the wallet stored under the address, or nil if none exists.
func (b Bucket) Get(db submarine.ReadOnlyKVStore, addr submarine.Address) (*Wallet, error) {
	raw, err := db.Get(b.dbKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load wallet")
	}
	if raw == nil {
		return nil, nil
	}
	var w Wallet
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot decode wallet: %s", err)
	}
	return &w, nil
}

// GetOrCreate returns the wallet stored under the address, creating an
// empty one if none exists. The new wallet is not persisted until saved.
func (b Bucket) GetOrCreate(db submarine.ReadOnlyKVStore, addr submarine.Address) (*Wallet, error) {
	wallet, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NewWallet(addr)
	}
	return wallet, nil
}

// Save persists the wallet under its address.
func (b Bucket) Save(db submarine.KVStore, w *Wallet) error {
	if err := w.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode wallet: %s", err)
	}
	return errors.Wrap(db.Set(b.dbKey(w.Address), raw), "cannot store wallet")
}
