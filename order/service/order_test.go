package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
	"github.com/RedArtelerist/OnlineBookStore/order/pkg/request"
)

var (
	aliceId = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bobId   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	goBook  = uuid.MustParse("aaaaaaa1-0000-0000-0000-000000000001")
	ddiBook = uuid.MustParse("aaaaaaa2-0000-0000-0000-000000000002")
)

func TestCreateOrderFromMissingCart(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	_, err := env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	require.Error(t, err)
	assert.True(t, inErrors.IsNotFound(err))
	assert.False(t, inErrors.IsInvalidOperation(err))
}

func TestCreateOrderFromEmptyCart(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	env.fillCart(t, c, aliceId, nil)

	_, err := env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
}

func TestCreateOrderTotalAndCartCleanup(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	env.fillCart(t, c, aliceId, map[uuid.UUID]int32{goBook: 2, ddiBook: 1})

	order, err := env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	require.NoError(t, err)
	assert.EqualValues(t, aliceId, order.UserID)
	assert.EqualValues(t, string(repository.OrderStatusNew), order.Status)
	assert.EqualValues(t, "1 Main St", order.ShippingAddress)
	assert.Len(t, order.Items, 2)
	assert.True(t, decimal.RequireFromString("32.99").Equal(order.Total),
		"expected total 32.99 got %s", order.Total)

	items, err := env.queries.FindCartItems(c, aliceId)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
}

func TestCreateOrderSnapshotsPrice(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	env.fillCart(t, c, aliceId, map[uuid.UUID]int32{goBook: 1})

	order, err := env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	require.NoError(t, err)

	book, err := env.queries.FindBookById(c, goBook)
	require.NoError(t, err)
	_, err = env.queries.UpdateBook(c, repository.UpdateBookParams{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Isbn:        book.Isbn,
		Price:       repository.NumericFromDecimal(decimal.RequireFromString("99.99")),
		Description: book.Description,
		CoverImage:  book.CoverImage,
	})
	require.NoError(t, err)

	found, err := env.service.FindOrderById(c, aliceId, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.True(t, decimal.RequireFromString("12.50").Equal(found.Items[0].Price))
	assert.True(t, decimal.RequireFromString("12.50").Equal(found.Total))
}

func TestFindOrderByIdOwnershipScoped(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	env.fillCart(t, c, aliceId, map[uuid.UUID]int32{ddiBook: 3})
	order, err := env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	require.NoError(t, err)

	_, err = env.service.FindOrderById(c, bobId, order.ID)
	assert.True(t, inErrors.IsNotFound(err))

	found, err := env.service.FindOrderById(c, aliceId, order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, order.ID, found.ID)
}

func TestFindOrderItemByIdOwnershipScoped(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	env.fillCart(t, c, aliceId, map[uuid.UUID]int32{goBook: 1})
	order, err := env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	require.NoError(t, err)
	itemId := order.Items[0].ID

	_, err = env.service.FindOrderItemById(c, bobId, order.ID, itemId)
	assert.True(t, inErrors.IsNotFound(err))

	item, err := env.service.FindOrderItemById(c, aliceId, order.ID, itemId)
	require.NoError(t, err)
	assert.EqualValues(t, goBook, item.BookID)
}

func TestFindOrdersReturnsOnlyOwn(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	env.fillCart(t, c, aliceId, map[uuid.UUID]int32{goBook: 1})
	_, err := env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	require.NoError(t, err)

	orders, err := env.service.FindOrders(c, bobId)
	require.NoError(t, err)
	assert.Empty(t, orders)

	orders, err = env.service.FindOrders(c, aliceId)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestUpdateStatus(t *testing.T) {
	c := context.Background()
	env := setup(t, c)
	defer env.teardown(t)

	env.fillCart(t, c, aliceId, map[uuid.UUID]int32{goBook: 1})
	order, err := env.service.CreateOrder(c, aliceId, request.CreateOrder{ShippingAddress: "1 Main St"})
	require.NoError(t, err)

	_, err = env.service.UpdateStatus(c, order.ID, request.UpdateOrderStatus{Status: "SHIPPED"})
	assert.True(t, inErrors.IsInvalidOperation(err))

	updated, err := env.service.UpdateStatus(c, order.ID, request.UpdateOrderStatus{Status: "DELIVERED"})
	require.NoError(t, err)
	assert.EqualValues(t, "DELIVERED", updated.Status)

	updated, err = env.service.UpdateStatus(c, order.ID, request.UpdateOrderStatus{Status: "NEW"})
	require.NoError(t, err)
	assert.EqualValues(t, "NEW", updated.Status)

	_, err = env.service.UpdateStatus(c, uuid.New(), request.UpdateOrderStatus{Status: "CANCELED"})
	assert.True(t, inErrors.IsNotFound(err))
}
