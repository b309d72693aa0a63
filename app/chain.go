package app

import (
	"reflect"

	"github.com/tidewater-labs/submarine"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []submarine.Decorator
}

/*
ChainDecorators takes a chain of decorators, and upon adding a final
Handler (often a Dispatcher), returns a Handler that will execute this
whole stack.

	app.ChainDecorators(
		app.NewRecovery(),
		app.NewLogging(),
		app.NewSavepoint().OnDeliver(),
	).WithHandler(
		app.NewDispatcher(router),
	)
*/
func ChainDecorators(chain ...submarine.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...submarine.Decorator) Decorators {
	return Decorators{chain: append(d.chain, cutoffNil(chain)...)}
}

// cutoffNil in-place removes all nil values from given slice.
func cutoffNil(ds []submarine.Decorator) []submarine.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler that
// will pass through the chain of decorators before calling the final
// Handler.
func (d Decorators) WithHandler(h submarine.Handler) submarine.Handler {
	// wrap from the last decorator to the first one, the top of the
	// chain is executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a specific
// Handler.
type step struct {
	d    submarine.Decorator
	next submarine.Handler
}

var _ submarine.Handler = step{}

func (s step) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
