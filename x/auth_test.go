package x

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewater-labs/submarine"
	"github.com/tidewater-labs/submarine/submarinetest"
)

func TestMultiAuth(t *testing.T) {
	a := submarinetest.NewCondition()
	b := submarinetest.NewCondition()
	c := submarinetest.NewCondition()

	auth1 := &submarinetest.Auth{Signer: a}
	auth2 := &submarinetest.Auth{Signers: []submarine.Condition{b}}
	multi := ChainAuth(auth1, auth2)

	ctx := context.Background()
	assert.True(t, multi.HasAddress(ctx, a.Address()))
	assert.True(t, multi.HasAddress(ctx, b.Address()))
	assert.False(t, multi.HasAddress(ctx, c.Address()))

	conds := multi.GetConditions(ctx)
	assert.Equal(t, 2, len(conds))

	addrs := GetAddresses(ctx, multi)
	assert.Equal(t, 2, len(addrs))
	assert.True(t, addrs[0].Equals(a.Address()))
}

func TestMainSigner(t *testing.T) {
	a := submarinetest.NewCondition()
	b := submarinetest.NewCondition()
	ctx := context.Background()

	assert.Nil(t, MainSigner(ctx, &submarinetest.Auth{}))

	auth := &submarinetest.Auth{Signers: []submarine.Condition{a, b}}
	assert.True(t, MainSigner(ctx, auth).Equals(a))
}

func TestHasAllAddresses(t *testing.T) {
	a := submarinetest.NewCondition()
	b := submarinetest.NewCondition()
	c := submarinetest.NewCondition()
	ctx := context.Background()

	auth := &submarinetest.Auth{Signers: []submarine.Condition{a, b}}

	assert.True(t, HasAllAddresses(ctx, auth, nil))
	assert.True(t, HasAllAddresses(ctx, auth, []submarine.Address{a.Address(), b.Address()}))
	assert.False(t, HasAllAddresses(ctx, auth, []submarine.Address{a.Address(), c.Address()}))
}
