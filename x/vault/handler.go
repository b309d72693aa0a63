package vault

import (
	"fmt"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/errors"
	"github.com/tidewater-labs/submarine/x"
)

const (
	createVaultCost int64 = 300
	depositCost     int64 = 150
	withdrawCost    int64 = 150
	tickCost        int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r submarine.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&CreateVaultMsg{}, CreateVaultHandler{auth: auth, control: control})
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, control: control})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{auth: auth, control: control})
	r.Handle(&TickMsg{}, TickHandler{auth: auth, control: control})
	r.Handle(&RunScheduleMsg{}, NewRunScheduleHandler(control))
}

// CreateVaultHandler creates a vault owned by the main signer.
type CreateVaultHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ submarine.Handler = CreateVaultHandler{}

func (h CreateVaultHandler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &submarine.CheckResult{GasAllocated: createVaultCost}, nil
}

func (h CreateVaultHandler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	vaultID, err := h.control.Create(db, owner, msg.FeeCollector, msg.FeeInterval, msg.FeeTicker)
	if err != nil {
		return nil, err
	}
	return &submarine.DeliverResult{Data: vaultID}, nil
}

func (h CreateVaultHandler) validate(ctx submarine.Context, tx submarine.Tx) (*CreateVaultMsg, submarine.Address, error) {
	var msg CreateVaultMsg
	if err := submarine.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner := x.MainSigner(ctx, h.auth)
	if owner == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, owner.Address(), nil
}

// DepositHandler moves funds from the main signer into a vault.
type DepositHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ submarine.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &submarine.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositHandler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	msg, source, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	height, _ := submarine.GetHeight(ctx)
	paid, err := h.control.Deposit(db, msg.VaultID, source, *msg.Amount, height)
	if err != nil {
		return nil, err
	}
	tags := []submarine.Tag{
		submarine.NewTag("vault:action", "deposit"),
		submarine.NewTag("vault:id", fmt.Sprintf("%x", msg.VaultID)),
	}
	tags, err = withFeeTags(tags, paid, db, h.control, msg.VaultID, height)
	if err != nil {
		return nil, err
	}
	return &submarine.DeliverResult{Tags: tags}, nil
}

func (h DepositHandler) validate(ctx submarine.Context, tx submarine.Tx) (*DepositMsg, submarine.Address, error) {
	var msg DepositMsg
	if err := submarine.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	source := x.MainSigner(ctx, h.auth)
	if source == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, source.Address(), nil
}

// WithdrawHandler moves funds out of a vault. Ownership is enforced by
// the controller against the stored vault.
type WithdrawHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ submarine.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &submarine.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h WithdrawHandler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	height, _ := submarine.GetHeight(ctx)
	paid, err := h.control.Withdraw(db, msg.VaultID, caller, msg.Recipient, *msg.Amount, height)
	if err != nil {
		return nil, err
	}
	tags := []submarine.Tag{
		submarine.NewTag("vault:action", "withdraw"),
		submarine.NewTag("vault:id", fmt.Sprintf("%x", msg.VaultID)),
		submarine.NewTag("vault:recipient", msg.Recipient.String()),
	}
	tags, err = withFeeTags(tags, paid, db, h.control, msg.VaultID, height)
	if err != nil {
		return nil, err
	}
	return &submarine.DeliverResult{Tags: tags}, nil
}

func (h WithdrawHandler) validate(ctx submarine.Context, tx submarine.Tx) (*WithdrawMsg, submarine.Address, error) {
	var msg WithdrawMsg
	if err := submarine.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, caller.Address(), nil
}

// TickHandler forces a fee schedule evaluation, owner only.
type TickHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ submarine.Handler = TickHandler{}

func (h TickHandler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &submarine.CheckResult{GasAllocated: tickCost}, nil
}

func (h TickHandler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	height, _ := submarine.GetHeight(ctx)
	paid, err := h.control.Tick(db, msg.VaultID, caller, height)
	if err != nil {
		return nil, err
	}
	tags := []submarine.Tag{
		submarine.NewTag("vault:action", "tick"),
		submarine.NewTag("vault:id", fmt.Sprintf("%x", msg.VaultID)),
	}
	tags, err = withFeeTags(tags, paid, db, h.control, msg.VaultID, height)
	if err != nil {
		return nil, err
	}
	return &submarine.DeliverResult{Tags: tags}, nil
}

func (h TickHandler) validate(ctx submarine.Context, tx submarine.Tx) (*TickMsg, submarine.Address, error) {
	var msg TickMsg
	if err := submarine.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, caller.Address(), nil
}

// RunScheduleHandler evaluates the fee schedule. No signer required,
// this is the keeper entry point.
type RunScheduleHandler struct {
	control Controller
}

var _ submarine.Handler = RunScheduleHandler{}

// NewRunScheduleHandler creates a handler for RunScheduleMsg. It is
// exported separately so keepers can deliver schedule evaluations
// without a full router.
func NewRunScheduleHandler(control Controller) RunScheduleHandler {
	return RunScheduleHandler{control: control}
}

func (h RunScheduleHandler) Check(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.CheckResult, error) {
	var msg RunScheduleMsg
	if err := submarine.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &submarine.CheckResult{GasAllocated: tickCost}, nil
}

func (h RunScheduleHandler) Deliver(ctx submarine.Context, db submarine.KVStore, tx submarine.Tx) (*submarine.DeliverResult, error) {
	var msg RunScheduleMsg
	if err := submarine.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	height, _ := submarine.GetHeight(ctx)
	paid, err := h.control.RunSchedule(db, msg.VaultID, height)
	if err != nil {
		return nil, err
	}
	tags := []submarine.Tag{
		submarine.NewTag("vault:action", "run_schedule"),
		submarine.NewTag("vault:id", fmt.Sprintf("%x", msg.VaultID)),
	}
	tags, err = withFeeTags(tags, paid, db, h.control, msg.VaultID, height)
	if err != nil {
		return nil, err
	}
	return &submarine.DeliverResult{Tags: tags}, nil
}

// withFeeTags appends the fee payment notification when a payment was
// made during this delivery. The payment record must not be lost, so a
// failure to read the vault back is an error, not a missing tag.
func withFeeTags(tags []submarine.Tag, paid bool, db submarine.ReadOnlyKVStore, control Controller, vaultID []byte, height int64) ([]submarine.Tag, error) {
	if !paid {
		return tags, nil
	}
	v, err := control.GetVault(db, vaultID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot record fee payment")
	}
	fee := v.FeeAmount()
	return append(tags,
		submarine.NewTag("vault:fee-paid", fmt.Sprintf("%s %s %d", v.FeeCollector, fee, height)),
	), nil
}
