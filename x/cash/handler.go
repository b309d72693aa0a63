package cash

import (
	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
	"github.com/tidewater-labs/submarine/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r submarine.Registry, auth x.Authenticator, control CoinMover) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control CoinMover
}

var _ submarine.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control CoinMover) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

const sendTxCost int64 = 100

// Check verifies it is properly formed and returns
// the cost of executing it.
func (h SendHandler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &submarine.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the coins from source to destination if
// all preconditions are met.
func (h SendHandler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &submarine.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx submarine.Context, tx submarine.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := submarine.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source must sign the transfer")
	}
	return &msg, nil
}
