package app

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
)

// Recovery is a decorator to recover from panics in transactions, so
// they can be returned as errors
type Recovery struct{}

var _ submarine.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx, next submarine.Checker) (res *submarine.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx, next submarine.Deliverer) (res *submarine.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
