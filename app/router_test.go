package app

import (
	"context"
	"testing"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
	"github.com/tidewater-labs/submarine/submarinetest"
	"github.com/tidewater-labs/submarine/submarinetest/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	counter := &submarinetest.Handler{}
	good := &submarinetest.Msg{RoutePath: "test/good"}
	missing := &submarinetest.Msg{RoutePath: "test/missing"}

	r.Handle(good, counter)

	// invalid registrations panic
	assert.Panics(t, func() { r.Handle(good, counter) })
	assert.Panics(t, func() { r.Handle(&submarinetest.Msg{RoutePath: "Bad Path!"}, counter) })

	ctx := context.Background()
	tx := &submarinetest.Tx{Msg: good}
	_, err := r.Handler(good).Check(ctx, nil, tx)
	assert.Nil(t, err)
	_, err = r.Handler(good).Deliver(ctx, nil, tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, counter.CallCount())

	// unknown path resolves to the not found handler
	_, err = r.Handler(missing).Deliver(ctx, nil, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Handler(missing).Check(ctx, nil, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, 2, counter.CallCount())
}

func TestDispatcher(t *testing.T) {
	r := NewRouter()
	counter := &submarinetest.Handler{}
	msg := &submarinetest.Msg{RoutePath: "test/count"}
	r.Handle(msg, counter)
	d := NewDispatcher(r)

	ctx := context.Background()

	_, err := d.Deliver(ctx, nil, &submarinetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, 1, counter.DeliverCallCount())

	// a transaction without a message cannot be routed
	_, err = d.Deliver(ctx, nil, &submarinetest.Tx{})
	assert.IsErr(t, errors.ErrState, err)

	// an unroutable message fails with not found
	_, err = d.Deliver(ctx, nil, &submarinetest.Tx{Msg: &submarinetest.Msg{RoutePath: "test/unknown"}})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestChainDecorators(t *testing.T) {
	handler := &submarinetest.Handler{}
	stack := ChainDecorators(
		NewRecovery(),
		nil, // nils are silently dropped
		NewLogging(),
		NewSavepoint().OnDeliver(),
	).WithHandler(handler)

	ctx := context.Background()
	tx := &submarinetest.Tx{Msg: &submarinetest.Msg{RoutePath: "test/any"}}

	_, err := stack.Check(ctx, nil, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, handler.CallCount())
}

type panicHandler struct{}

func (panicHandler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	panic("check blew up")
}

func (panicHandler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	panic("deliver blew up")
}

func TestRecoveryTurnsPanicsIntoErrors(t *testing.T) {
	stack := ChainDecorators(NewRecovery()).WithHandler(panicHandler{})

	ctx := context.Background()
	tx := &submarinetest.Tx{Msg: &submarinetest.Msg{RoutePath: "test/panic"}}

	_, err := stack.Check(ctx, nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)
}
