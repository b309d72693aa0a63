package vault

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
)

// Initializer fulfils the Initializer interface to create vaults from
// genesis options.
type Initializer struct{}

var _ submarine.Initializer = Initializer{}

// FromGenesis creates vaults declared under the "vault" key. IDs are
// assigned in declaration order.
func (Initializer) FromGenesis(opts submarine.Options, db submarine.KVStore) error {
	vaults := []struct {
		Owner        submarine.Address `json:"owner"`
		FeeCollector submarine.Address `json:"fee_collector"`
		FeeInterval  int64             `json:"fee_interval"`
		FeeTicker    string            `json:"fee_ticker"`
	}{}
	if err := opts.ReadOptions("vault", &vaults); err != nil {
		return errors.Wrap(err, "cannot read vault genesis")
	}

	bucket := NewBucket()
	for i, decl := range vaults {
		v := &Vault{
			Owner:        decl.Owner,
			FeeCollector: decl.FeeCollector,
			FeeInterval:  decl.FeeInterval,
			FeeTicker:    decl.FeeTicker,
		}
		if _, err := bucket.Create(db, v); err != nil {
			return errors.Wrapf(err, "vault #%d", i)
		}
	}
	return nil
}
