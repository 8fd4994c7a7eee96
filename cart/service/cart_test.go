package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedArtelerist/OnlineBookStore/cart/pkg/request"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
)

var (
	aliceId = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bobId   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	goBook  = uuid.MustParse("aaaaaaa1-0000-0000-0000-000000000001")
	ddiBook = uuid.MustParse("aaaaaaa2-0000-0000-0000-000000000002")
)

func TestFindCartWithoutCart(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.FindCart(c, aliceId)
	require.Error(t, err)
	assert.True(t, inErrors.IsNotFound(err))
}

func TestFindCartAfterFirstAdd(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.AddItem(c, aliceId, request.AddCartItem{BookID: goBook, Quantity: 2})
	require.NoError(t, err)

	cart, err := env.service.FindCart(c, aliceId)
	require.NoError(t, err)
	assert.EqualValues(t, aliceId, cart.ID)
	assert.EqualValues(t, aliceId, cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.True(t, decimal.RequireFromString("25.00").Equal(cart.Total))
}

func TestAddItemMergesSameBook(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	cart, err := env.service.AddItem(c, aliceId, request.AddCartItem{BookID: goBook, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 2, cart.Items[0].Quantity)

	cart, err = env.service.AddItem(c, aliceId, request.AddCartItem{BookID: goBook, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 5, cart.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("62.50").Equal(cart.Total))

	cart, err = env.service.AddItem(c, aliceId, request.AddCartItem{BookID: ddiBook, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.True(t, decimal.RequireFromString("70.49").Equal(cart.Total))
}

func TestAddItemUnknownBook(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.AddItem(c, aliceId, request.AddCartItem{BookID: uuid.New(), Quantity: 1})
	assert.True(t, inErrors.IsNotFound(err))
}

func TestUpdateItemOwnershipScoped(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	cart, err := env.service.AddItem(c, aliceId, request.AddCartItem{BookID: goBook, Quantity: 2})
	require.NoError(t, err)
	itemId := cart.Items[0].ID

	_, err = env.service.UpdateItem(c, bobId, itemId, request.UpdateCartItem{Quantity: 9})
	assert.True(t, inErrors.IsNotFound(err))

	cart, err = env.service.UpdateItem(c, aliceId, itemId, request.UpdateCartItem{Quantity: 9})
	require.NoError(t, err)
	assert.EqualValues(t, 9, cart.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	cart, err := env.service.AddItem(c, aliceId, request.AddCartItem{BookID: goBook, Quantity: 1})
	require.NoError(t, err)
	itemId := cart.Items[0].ID

	_, err = env.service.RemoveItem(c, bobId, itemId)
	assert.True(t, inErrors.IsNotFound(err))

	cart, err = env.service.RemoveItem(c, aliceId, itemId)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = env.service.RemoveItem(c, aliceId, itemId)
	assert.True(t, inErrors.IsNotFound(err))
}

func TestFindCartIsolatedPerUser(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.AddItem(c, aliceId, request.AddCartItem{BookID: goBook, Quantity: 4})
	require.NoError(t, err)

	_, err = env.service.FindCart(c, bobId)
	require.Error(t, err)
	assert.True(t, inErrors.IsNotFound(err))

	cart, err := env.service.AddItem(c, bobId, request.AddCartItem{BookID: ddiBook, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, ddiBook, cart.Items[0].BookID)
}
