package vault

import (
	"fmt"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/x/cash"
)

// ReceiveDecorator reacts to value landing on a vault treasury through
// a plain cash transfer. Such a transfer is an implicit deposit
// carrying no vault message, so without this decorator it would credit
// the vault silently and the fee schedule would never see the new
// balance. Place it around the dispatcher that routes cash/send.
type ReceiveDecorator struct {
	control Controller
}

var _ submarine.Decorator = ReceiveDecorator{}

// NewReceiveDecorator creates a decorator evaluating vault schedules
// after incoming transfers, using the given controller.
func NewReceiveDecorator(control Controller) ReceiveDecorator {
	return ReceiveDecorator{control: control}
}

// Check passes through, implicit deposits cost nothing extra.
func (d ReceiveDecorator) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx, next submarine.Checker) (*submarine.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver runs the wrapped handler and, when the transaction was a
// transfer into a vault treasury, evaluates that vault's schedule
// against the credited balance. A failing payout fails the whole
// delivery, same as on the explicit deposit path.
func (d ReceiveDecorator) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx, next submarine.Deliverer) (*submarine.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return res, err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return res, nil
	}
	send, ok := msg.(*cash.SendMsg)
	if !ok {
		return res, nil
	}

	height, _ := submarine.GetHeight(ctx)
	vaultID, paid, err := d.control.Receive(db, send.Destination, height)
	if err != nil {
		return nil, err
	}
	if vaultID == nil {
		return res, nil
	}
	res.Tags = append(res.Tags,
		submarine.NewTag("vault:action", "receive"),
		submarine.NewTag("vault:id", fmt.Sprintf("%x", vaultID)),
	)
	tags, err := withFeeTags(res.Tags, paid, db, d.control, vaultID, height)
	if err != nil {
		return nil, err
	}
	res.Tags = tags
	return res, nil
}
