package submarinetest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
)

var condCnt uint64

// NewCondition returns a unique test condition. Each call returns a
// different one.
func NewCondition() submarine.Condition {
	n := atomic.AddUint64(&condCnt, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, n)
	return submarine.NewCondition("test", "cond", data)
}

// ParseAddress takes an address in hex format and returns its binary
// representation, failing the test on bad input.
func ParseAddress(t testing.TB, encodedAddress string) submarine.Address {
	t.Helper()

	addr, err := submarine.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// Handler is a mock implementing the submarine.Handler interface. It
// counts calls and returns declared results.
type Handler struct {
	checkCall   int
	CheckResult submarine.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult submarine.DeliverResult
	DeliverErr    error
}

var _ submarine.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	h.checkCall++
	return &h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	h.deliverCall++
	return &h.DeliverResult, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// FailingMover is a mock coin mover that always fails with the given
// error. Use it to test state rollback paths.
type FailingMover struct {
	Err error

	// Calls counts how many times MoveCoins was called.
	Calls int
}

func (m *FailingMover) MoveCoins(db submarine.KVStore, source, destination submarine.Address, amount coin.Coin) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return errors.Wrap(errors.ErrState, "mover always fails")
}
