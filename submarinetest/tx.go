package submarinetest

import "github.com/tidewater-labs/submarine"

// Tx is a mock transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg submarine.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ submarine.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (submarine.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a mock message.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate call.
	Err error
}

var _ submarine.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
