package cash

import (
	"testing"

	"github.com/tidewater-labs/submarine/coin"
	"github.com/tidewater-labs/submarine/errors"
	"github.com/tidewater-labs/submarine/store"
	"github.com/tidewater-labs/submarine/submarinetest"
	"github.com/tidewater-labs/submarine/submarinetest/assert"
)

func TestIssueCoins(t *testing.T) {
	addr1 := submarinetest.NewCondition().Address()
	addr2 := submarinetest.NewCondition().Address()

	control := NewController()
	bucket := NewBucket()

	plus := coin.NewCoin(500, 1000, "FOO")
	minus := coin.NewCoin(-400, -600, "FOO")
	total := coin.NewCoin(100, 400, "FOO")
	other := coin.NewCoin(1, 0, "BAR")

	db := store.MemStore()

	// issue positive
	assert.Nil(t, control.IssueCoins(db, addr1, plus))
	w, err := bucket.Get(db, addr1)
	assert.Nil(t, err)
	if w == nil {
		t.Fatal("wallet not created")
	}
	if !w.Coins.Contains(plus) {
		t.Fatalf("wallet missing coins: %#v", w.Coins)
	}

	// issue negative to reduce the balance
	assert.Nil(t, control.IssueCoins(db, addr1, minus))
	w, err = bucket.Get(db, addr1)
	assert.Nil(t, err)
	if !w.Coins.Contains(total) {
		t.Fatalf("unexpected balance: %#v", w.Coins)
	}

	// a separate currency on another account
	assert.Nil(t, control.IssueCoins(db, addr2, other))
	w, err = bucket.Get(db, addr2)
	assert.Nil(t, err)
	if !w.Coins.Contains(other) {
		t.Fatalf("unexpected balance: %#v", w.Coins)
	}
	if w.Coins.Contains(total) {
		t.Fatal("balance leaked to another account")
	}

	// cannot issue overflow
	assert.IsErr(t, errors.ErrOverflow,
		control.IssueCoins(db, addr1, coin.NewCoin(coin.MaxInt, 0, "FOO")))
}

func TestMoveCoins(t *testing.T) {
	addr1 := submarinetest.NewCondition().Address()
	addr2 := submarinetest.NewCondition().Address()
	addr3 := submarinetest.NewCondition().Address()

	control := NewController()

	cc := "MONY"
	bank := coin.NewCoin(50000, 0, cc)
	send := coin.NewCoin(300, 0, cc)

	db := store.MemStore()
	assert.Nil(t, control.IssueCoins(db, addr1, bank))

	// cannot move from an empty account
	assert.IsErr(t, ErrEmptyAccount, control.MoveCoins(db, addr2, addr1, send))

	// cannot move more than balance
	assert.IsErr(t, ErrInsufficientFunds,
		control.MoveCoins(db, addr1, addr2, coin.NewCoin(50001, 0, cc)))

	// cannot move a zero or negative amount
	assert.IsErr(t, errors.ErrAmount, control.MoveCoins(db, addr1, addr2, coin.NewCoin(0, 0, cc)))
	assert.IsErr(t, errors.ErrAmount, control.MoveCoins(db, addr1, addr2, coin.NewCoin(-10, 0, cc)))

	// a proper move adjusts both balances
	assert.Nil(t, control.MoveCoins(db, addr1, addr2, send))
	got, err := control.Balance(db, addr2)
	assert.Nil(t, err)
	if !got.Contains(send) {
		t.Fatalf("unexpected destination balance: %#v", got)
	}
	got, err = control.Balance(db, addr1)
	assert.Nil(t, err)
	if !got.Contains(coin.NewCoin(49700, 0, cc)) {
		t.Fatalf("unexpected source balance: %#v", got)
	}
	if got.Contains(coin.NewCoin(49701, 0, cc)) {
		t.Fatalf("source balance too high: %#v", got)
	}

	// secondary transfer works
	assert.Nil(t, control.MoveCoins(db, addr2, addr3, coin.NewCoin(100, 0, cc)))
	got, err = control.Balance(db, addr3)
	assert.Nil(t, err)
	if !got.Contains(coin.NewCoin(100, 0, cc)) {
		t.Fatalf("unexpected balance: %#v", got)
	}

	// cannot send an unknown currency
	assert.IsErr(t, ErrInsufficientFunds,
		control.MoveCoins(db, addr1, addr2, coin.NewCoin(5, 0, "BAD")))
}

func TestBalance(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	addr1 := submarinetest.NewCondition().Address()
	addr2 := submarinetest.NewCondition().Address()
	addrMissing := submarinetest.NewCondition().Address()

	coin1 := coin.NewCoin(1, 0, "DOGE")
	coin2_1 := coin.NewCoin(0, 1, "DOGE")
	coin2_2 := coin.NewCoin(0, 2, "BTC")

	assert.Nil(t, ctrl.IssueCoins(db, addr1, coin1))
	assert.Nil(t, ctrl.IssueCoins(db, addr2, coin2_1))
	assert.Nil(t, ctrl.IssueCoins(db, addr2, coin2_2))

	cases := map[string]struct {
		addr      []byte
		wantCoins coin.Coins
		wantErr   *errors.Error
	}{
		"non existing account": {
			addr:    addrMissing,
			wantErr: ErrEmptyAccount,
		},
		"existing account with one coin": {
			addr:      addr1,
			wantCoins: coin.Coins{&coin1},
		},
		"existing account with two coins": {
			addr: addr2,
			// Coins are stored in alphabetical order.
			wantCoins: coin.Coins{&coin2_2, &coin2_1},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			coins, err := ctrl.Balance(db, tc.addr)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			if !tc.wantCoins.Equals(coins) {
				t.Fatalf("unexpected coins: %v", coins)
			}
		})
	}
}
