package vault

import (
	"testing"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/submarinetest"
	"github.com/tidewater-labs/submarine/submarinetest/assert"
	"github.com/tidewater-labs/submarine/x/cash"
)

// A plain transfer into the treasury is an implicit deposit. The vault
// cannot be credited behind the schedule's back, the decorator must
// evaluate it against the new balance.
func TestReceiveTriggersSchedule(t *testing.T) {
	f := newHandlerFixture(t)
	auth := &submarinetest.Auth{Signer: f.owner}
	send := cash.NewSendHandler(auth, f.cash)
	d := NewReceiveDecorator(f.control)

	treasury := Condition(f.vaultID).Address()
	tx := &submarinetest.Tx{Msg: &cash.SendMsg{
		Source:      f.owner.Address(),
		Destination: treasury,
		Amount:      coin.NewCoinp(2, 0, ticker),
	}}

	// before the interval elapsed the transfer only credits the vault
	res, err := d.Deliver(atHeight(1), f.db, tx, send)
	assert.Nil(t, err)
	if !hasTag(res.Tags, "vault:action") {
		t.Fatal("implicit deposit not reported")
	}
	if hasTag(res.Tags, "vault:fee-paid") {
		t.Fatal("no fee should be paid yet")
	}
	assert.Equal(t, int64(0), vaultMark(t, f.control, f.db, f.vaultID))

	// past the interval the transfer itself pays the fee
	res, err = d.Deliver(atHeight(6), f.db, tx, send)
	assert.Nil(t, err)
	if !hasTag(res.Tags, "vault:fee-paid") {
		t.Fatal("fee payment not reported")
	}
	assert.Equal(t, int64(6), vaultMark(t, f.control, f.db, f.vaultID))
	got, err := f.cash.Balance(f.db, f.collector)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(1, 0, ticker)}, got)

	held, err := f.control.Balance(f.db, f.vaultID)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(3, 0, ticker)}, held)
}

// Transfers between regular accounts pass through untouched.
func TestReceiveIgnoresOtherTransfers(t *testing.T) {
	f := newHandlerFixture(t)
	auth := &submarinetest.Auth{Signer: f.owner}
	send := cash.NewSendHandler(auth, f.cash)
	d := NewReceiveDecorator(f.control)

	res, err := d.Deliver(atHeight(6), f.db, &submarinetest.Tx{Msg: &cash.SendMsg{
		Source:      f.owner.Address(),
		Destination: submarinetest.NewCondition().Address(),
		Amount:      coin.NewCoinp(2, 0, ticker),
	}}, send)
	assert.Nil(t, err)
	if len(res.Tags) != 0 {
		t.Fatalf("unexpected tags: %v", res.Tags)
	}
}

// Non-transfer messages are none of the decorator's business.
func TestReceivePassesThroughVaultMessages(t *testing.T) {
	f := newHandlerFixture(t)
	d := NewReceiveDecorator(f.control)
	h := TickHandler{auth: &submarinetest.Auth{Signer: f.owner}, control: f.control}

	res, err := d.Deliver(atHeight(1), f.db, &submarinetest.Tx{Msg: &TickMsg{VaultID: f.vaultID}}, h)
	assert.Nil(t, err)
	// only the tick handler's own tags, nothing appended
	if len(res.Tags) != 2 {
		t.Fatalf("unexpected tags: %v", res.Tags)
	}
}

func vaultMark(t testing.TB, control Controller, db submarine.ReadOnlyKVStore, vaultID []byte) int64 {
	t.Helper()
	v, err := control.GetVault(db, vaultID)
	assert.Nil(t, err)
	return v.LastPaymentMark
}
