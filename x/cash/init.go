package cash

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
)

// Initializer fulfils the Initializer interface to load genesis
// wallets from the options.
type Initializer struct{}

var _ submarine.Initializer = Initializer{}

// FromGenesis initializes wallets from genesis options. The expected
// format is a list of {address, coins} objects under the "cash" key.
func (Initializer) FromGenesis(opts submarine.Options, db submarine.KVStore) error {
	accounts := []struct {
		Address submarine.Address `json:"address"`
		Coins   coin.Coins        `json:"coins"`
	}{}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "cannot read cash genesis")
	}

	bucket := NewBucket()
	for i, a := range accounts {
		wallet := &Wallet{
			Address: a.Address,
			Coins:   a.Coins,
		}
		if err := wallet.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
		if err := bucket.Save(db, wallet); err != nil {
			return errors.Wrapf(err, "cannot store wallet #%d", i)
		}
	}
	return nil
}
