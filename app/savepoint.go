package app

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
)

// Savepoint will isolate all data inside of the call, and
// commit/rollback to savepoint based on the result. This gives every
// operation the all-or-nothing semantics: its balance mutations, its
// outbound transfer and its schedule evaluation either all take
// effect or none do.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ submarine.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator, but you must call
// OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on Check
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{
		onCheck:   true,
		onDeliver: s.onDeliver,
	}
}

// OnDeliver returns a savepoint that will trigger on Deliver
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{
		onCheck:   s.onCheck,
		onDeliver: true,
	}
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx, next submarine.Checker) (*submarine.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	cdb, ok := db.(submarine.CacheableKVStore)
	if !ok {
		return next.Check(ctx, db, tx)
	}

	cache := cdb.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx, next submarine.Deliverer) (*submarine.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	cdb, ok := db.(submarine.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}

	cache := cdb.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
