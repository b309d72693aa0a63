package submarine

import (
	"encoding/json"
)

// Handler is a core engine that can process a few specific messages.
// This could represent "move coins", or "run the fee schedule".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or fee-handling, to many Handlers.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Ticker is a method that is called on a regular cadence by an
// external scheduling agent, which can be used to perform periodic
// or delayed tasks.
type Ticker interface {
	Tick(ctx Context, db CacheableKVStore) (*TickResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router.
type Registry interface {
	// Handle assigns the given handler to handle processing of every
	// message of the provided type.
	Handle(msg Msg, h Handler)
}

// Tag is a single key-value record attached to an operation result.
// Tags build the observable, ordered notification log of the system.
type Tag struct {
	Key   []byte
	Value []byte
}

// NewTag is a shortcut for creating a Tag from strings.
func NewTag(key, value string) Tag {
	return Tag{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

// CheckResult captures any non-error check outcome
// to make sure people use error for failures.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform
	GasAllocated int64
}

// DeliverResult captures any non-error delivery outcome
// to make sure people use error for failures.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Tags are the emitted notification records, in emission order
	Tags []Tag
	// GasUsed is the units of work performed
	GasUsed int64
}

// TickResult allows the Ticker to report the outcome of the tick.
type TickResult struct {
	// Paid is set when the tick resulted in a fee payout.
	Paid bool
	// Tags are the emitted notification records, in emission order
	Tags []Tag
}

// Options are the app options.
// Each extension can look up its key and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
