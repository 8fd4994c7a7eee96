package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
	"github.com/RedArtelerist/OnlineBookStore/order/pkg/request"
	"github.com/RedArtelerist/OnlineBookStore/order/pkg/response"
)

const cacheKeyCart = "bookstore:carts:%s"

type OrderService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) *OrderService {
	return &OrderService{pool: pool, queries: queries, cache: cache}
}

// CreateOrder turns the user's cart into an order. The order rows, the item
// rows and the cart cleanup commit together or not at all. Item prices are
// snapshotted from the books at checkout time, so later price changes leave
// the order untouched.
func (s *OrderService) CreateOrder(
	c context.Context,
	userID uuid.UUID,
	param request.CreateOrder,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateOrder").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer func(lg zerolog.Logger) {
		l := lg.With().Str(log.KeyProcess, "rolling back transaction").Logger()
		if err := tx.Rollback(c); err != nil {
			if errors.Is(err, pgx.ErrTxClosed) {
				return
			}
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			inErrors.HandleError(err, span)
			l.Error().Err(err).Msg(err.Error())
			return
		}
		l.Info().Msg("rolled back transaction")
	}(logger)
	queries := s.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := queries.FindCartByUserId(c, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("cart for user with id=%s not found", userID.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Info().Msg("finding cart items")
	cartItems, err := queries.FindCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if len(cartItems) == 0 {
		inErrors.HandleError(inErrors.ErrEmptyCart, span)
		logger.Error().Err(inErrors.ErrEmptyCart).Msg(inErrors.ErrEmptyCart.Error())
		return response.Order{}, inErrors.ErrEmptyCart
	}
	logger.Info().Msgf("found %d cart items", len(cartItems))

	total := decimal.Zero
	for _, item := range cartItems {
		price := repository.DecimalFromNumeric(item.BookPrice)
		total = total.Add(price.Mul(decimal.NewFromInt32(item.Quantity)))
	}

	logger = logger.With().
		Str(log.KeyProcess, "inserting order").
		Str("total", total.String()).
		Logger()
	logger.Info().Msg("inserting order")
	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		UserID:          userID,
		Total:           repository.NumericFromDecimal(total),
		ShippingAddress: param.ShippingAddress,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Info().Msg("inserting order items")
	args := make([]repository.InsertOrderItemsParams, len(cartItems))
	for i, item := range cartItems {
		args[i] = repository.InsertOrderItemsParams{
			OrderID:  order.ID,
			BookID:   item.BookID,
			Price:    item.BookPrice,
			Quantity: item.Quantity,
		}
	}
	insertedCount, err := queries.InsertOrderItems(c, args)
	if err != nil {
		err = fmt.Errorf("failed inserting order items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("inserted %d order items", insertedCount)

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	_, err = queries.DeleteCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("cleared cart")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Info().Msg("finding order items")
	orderItems, err := queries.FindOrderItems(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order items")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	cacheKey := fmt.Sprintf(cacheKeyCart, userID.String())
	logger = logger.With().
		Str(log.KeyProcess, "deleting cart from cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("deleting cart from cache")
	if err := s.cache.Del(c, cacheKey).Err(); err != nil {
		err = fmt.Errorf("failed deleting cart from cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("deleted cart from cache")
	}

	return order.Response(orderItems), nil
}

func (s *OrderService) FindOrders(
	c context.Context,
	userID uuid.UUID,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	orders, err := s.queries.FindOrdersByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders", len(orders))

	responses := make([]response.Order, 0, len(orders))
	for _, order := range orders {
		items, err := s.queries.FindOrderItems(c, order.ID)
		if err != nil {
			err = fmt.Errorf("failed finding order items with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		responses = append(responses, order.Response(items))
	}
	return responses, nil
}

func (s *OrderService) FindOrderById(
	c context.Context,
	userID uuid.UUID,
	orderID uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order by id").Logger()
	logger.Info().Msg("finding order by id")
	order, err := s.queries.FindOrderById(c, repository.FindOrderByIdParams{
		ID:     orderID,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("order with id=%s not found", orderID.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		err = fmt.Errorf("failed finding order by id=%s with error=%w", orderID.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order by id")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Info().Msg("finding order items")
	items, err := s.queries.FindOrderItems(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order items")

	return order.Response(items), nil
}

func (s *OrderService) FindOrderItemById(
	c context.Context,
	userID uuid.UUID,
	orderID uuid.UUID,
	itemID uuid.UUID,
) (response.OrderItem, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderItemById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderItemById").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Str("orderItemId", itemID.String()).
		Str(log.KeyProcess, "finding order item by id").
		Logger()

	logger.Info().Msg("finding order item by id")
	item, err := s.queries.FindOrderItemById(c, repository.FindOrderItemByIdParams{
		ID:      itemID,
		OrderID: orderID,
		UserID:  userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("order item with id=%s not found", itemID.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.OrderItem{}, err
		}
		err = fmt.Errorf("failed finding order item by id=%s with error=%w", itemID.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.OrderItem{}, err
	}
	logger.Info().Msg("found order item by id")

	return item.Response(), nil
}

// UpdateStatus is admin-only and not ownership-scoped: any order can be
// moved to any valid status.
func (s *OrderService) UpdateStatus(
	c context.Context,
	orderID uuid.UUID,
	param request.UpdateOrderStatus,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService UpdateStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateStatus").
		Str(log.KeyOrderID, orderID.String()).
		Str(log.KeyStatus, param.Status).
		Logger()

	status, err := repository.ParseOrderStatus(param.Status)
	if err != nil {
		err = inErrors.NewInvalidOperation("%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msg("updating order status")
	order, err := s.queries.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
		ID:     orderID,
		Status: status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("order with id=%s not found", orderID.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		err = fmt.Errorf("failed updating order status with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("updated order status")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Info().Msg("finding order items")
	items, err := s.queries.FindOrderItems(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order items")

	return order.Response(items), nil
}
