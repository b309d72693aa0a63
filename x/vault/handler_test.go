package vault

import (
	"context"
	"testing"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
	"github.com/tidewater-labs/submarine/store"
	"github.com/tidewater-labs/submarine/submarinetest"
	"github.com/tidewater-labs/submarine/submarinetest/assert"
	"github.com/tidewater-labs/submarine/x/cash"
)

type handlerFixture struct {
	db        submarine.CacheableKVStore
	cash      cash.CashController
	control   Controller
	owner     submarine.Condition
	collector submarine.Address
	vaultID   []byte
}

func newHandlerFixture(t testing.TB) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		db:        store.MemStore(),
		cash:      cash.NewController(),
		owner:     submarinetest.NewCondition(),
		collector: submarinetest.NewCondition().Address(),
	}
	f.control = NewController(f.cash)
	assert.Nil(t, f.cash.IssueCoins(f.db, f.owner.Address(), coin.NewCoin(100, 0, ticker)))

	vaultID, err := f.control.Create(f.db, f.owner.Address(), f.collector, 5, ticker)
	assert.Nil(t, err)
	f.vaultID = vaultID
	return f
}

func atHeight(height int64) submarine.Context {
	return submarine.WithHeight(context.Background(), height)
}

func deliver(t testing.TB, h submarine.Handler, ctx submarine.Context, db submarine.KVStore, msg submarine.Msg) *submarine.DeliverResult {
	t.Helper()
	tx := &submarinetest.Tx{Msg: msg}
	if _, err := h.Check(ctx, db, tx); err != nil {
		t.Fatalf("check failed: %+v", err)
	}
	res, err := h.Deliver(ctx, db, tx)
	if err != nil {
		t.Fatalf("deliver failed: %+v", err)
	}
	return res
}

func TestCreateVaultHandler(t *testing.T) {
	db := store.MemStore()
	owner := submarinetest.NewCondition()
	collector := submarinetest.NewCondition().Address()
	control := NewController(cash.NewController())
	auth := &submarinetest.Auth{Signer: owner}
	h := CreateVaultHandler{auth: auth, control: control}

	msg := &CreateVaultMsg{
		FeeCollector: collector,
		FeeInterval:  5,
		FeeTicker:    ticker,
	}
	res := deliver(t, h, atHeight(1), db, msg)
	if len(res.Data) != 8 {
		t.Fatalf("want an 8 byte vault ID, got %x", res.Data)
	}

	v, err := control.GetVault(db, res.Data)
	assert.Nil(t, err)
	assert.Equal(t, owner.Address(), v.Owner)
	assert.Equal(t, int64(0), v.LastPaymentMark)
}

func TestCreateVaultHandlerValidation(t *testing.T) {
	db := store.MemStore()
	owner := submarinetest.NewCondition()
	collector := submarinetest.NewCondition().Address()
	control := NewController(cash.NewController())
	h := CreateVaultHandler{auth: &submarinetest.Auth{Signer: owner}, control: control}

	cases := map[string]struct {
		msg     *CreateVaultMsg
		wantErr *errors.Error
	}{
		"no collector": {
			msg:     &CreateVaultMsg{FeeInterval: 5, FeeTicker: ticker},
			wantErr: ErrInvalidCollector,
		},
		"no interval": {
			msg:     &CreateVaultMsg{FeeCollector: collector, FeeTicker: ticker},
			wantErr: ErrInvalidInterval,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tx := &submarinetest.Tx{Msg: tc.msg}
			_, err := h.Check(atHeight(1), db, tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = h.Deliver(atHeight(1), db, tx)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestCreateVaultHandlerNoSigner(t *testing.T) {
	db := store.MemStore()
	control := NewController(cash.NewController())
	h := CreateVaultHandler{auth: &submarinetest.Auth{}, control: control}

	tx := &submarinetest.Tx{Msg: &CreateVaultMsg{
		FeeCollector: submarinetest.NewCondition().Address(),
		FeeInterval:  5,
		FeeTicker:    ticker,
	}}
	_, err := h.Deliver(atHeight(1), db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestDepositHandler(t *testing.T) {
	f := newHandlerFixture(t)
	h := DepositHandler{auth: &submarinetest.Auth{Signer: f.owner}, control: f.control}

	res := deliver(t, h, atHeight(1), f.db, &DepositMsg{
		VaultID: f.vaultID,
		Amount:  coin.NewCoinp(7, 0, ticker),
	})
	if hasTag(res.Tags, "vault:fee-paid") {
		t.Fatal("no fee should be paid yet")
	}

	held, err := f.control.Balance(f.db, f.vaultID)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(7, 0, ticker)}, held)

	// a later deposit past the interval also pays the fee
	res = deliver(t, h, atHeight(6), f.db, &DepositMsg{
		VaultID: f.vaultID,
		Amount:  coin.NewCoinp(1, 0, ticker),
	})
	if !hasTag(res.Tags, "vault:fee-paid") {
		t.Fatal("fee payment not reported")
	}
}

func TestWithdrawHandler(t *testing.T) {
	f := newHandlerFixture(t)
	depositH := DepositHandler{auth: &submarinetest.Auth{Signer: f.owner}, control: f.control}
	deliver(t, depositH, atHeight(1), f.db, &DepositMsg{
		VaultID: f.vaultID,
		Amount:  coin.NewCoinp(7, 0, ticker),
	})

	recipient := submarinetest.NewCondition().Address()

	// a stranger signing the withdrawal is rejected by the vault
	stranger := submarinetest.NewCondition()
	h := WithdrawHandler{auth: &submarinetest.Auth{Signer: stranger}, control: f.control}
	_, err := h.Deliver(atHeight(2), f.db, &submarinetest.Tx{Msg: &WithdrawMsg{
		VaultID:   f.vaultID,
		Recipient: recipient,
		Amount:    coin.NewCoinp(1, 0, ticker),
	}})
	assert.IsErr(t, ErrNotOwner, err)

	h = WithdrawHandler{auth: &submarinetest.Auth{Signer: f.owner}, control: f.control}
	res := deliver(t, h, atHeight(2), f.db, &WithdrawMsg{
		VaultID:   f.vaultID,
		Recipient: recipient,
		Amount:    coin.NewCoinp(2, 0, ticker),
	})
	if hasTag(res.Tags, "vault:fee-paid") {
		t.Fatal("no fee should be paid yet")
	}
	got, err := f.cash.Balance(f.db, recipient)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(2, 0, ticker)}, got)
}

func TestTickHandler(t *testing.T) {
	f := newHandlerFixture(t)
	depositH := DepositHandler{auth: &submarinetest.Auth{Signer: f.owner}, control: f.control}
	deliver(t, depositH, atHeight(0), f.db, &DepositMsg{
		VaultID: f.vaultID,
		Amount:  coin.NewCoinp(3, 0, ticker),
	})

	stranger := submarinetest.NewCondition()
	h := TickHandler{auth: &submarinetest.Auth{Signer: stranger}, control: f.control}
	_, err := h.Deliver(atHeight(6), f.db, &submarinetest.Tx{Msg: &TickMsg{VaultID: f.vaultID}})
	assert.IsErr(t, ErrNotOwner, err)

	h = TickHandler{auth: &submarinetest.Auth{Signer: f.owner}, control: f.control}
	res := deliver(t, h, atHeight(6), f.db, &TickMsg{VaultID: f.vaultID})
	if !hasTag(res.Tags, "vault:fee-paid") {
		t.Fatal("fee payment not reported")
	}
}

// Run schedule needs no signer at all, this is the keeper entry point.
func TestRunScheduleHandler(t *testing.T) {
	f := newHandlerFixture(t)
	depositH := DepositHandler{auth: &submarinetest.Auth{Signer: f.owner}, control: f.control}
	deliver(t, depositH, atHeight(0), f.db, &DepositMsg{
		VaultID: f.vaultID,
		Amount:  coin.NewCoinp(3, 0, ticker),
	})

	h := RunScheduleHandler{control: f.control}

	res := deliver(t, h, atHeight(2), f.db, &RunScheduleMsg{VaultID: f.vaultID})
	if hasTag(res.Tags, "vault:fee-paid") {
		t.Fatal("no fee should be paid yet")
	}

	res = deliver(t, h, atHeight(5), f.db, &RunScheduleMsg{VaultID: f.vaultID})
	if !hasTag(res.Tags, "vault:fee-paid") {
		t.Fatal("fee payment not reported")
	}
	got, err := f.cash.Balance(f.db, f.collector)
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoinp(1, 0, ticker)}, got)
}

// A payout that cannot be read back for its notification is an error,
// the payment record must never be dropped silently.
func TestFeePaymentRecordIsNotLost(t *testing.T) {
	db := store.MemStore()
	control := NewController(cash.NewController())

	missing := []byte{0, 0, 0, 0, 0, 0, 0, 9}
	_, err := withFeeTags(nil, true, db, control, missing, 5)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func hasTag(tags []submarine.Tag, key string) bool {
	for _, tag := range tags {
		if string(tag.Key) == key {
			return true
		}
	}
	return false
}
