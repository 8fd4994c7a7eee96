package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/RedArtelerist/OnlineBookStore/cart/pkg/request"
	"github.com/RedArtelerist/OnlineBookStore/cart/pkg/response"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
)

const (
	cacheKeyCart = "bookstore:carts:%s"
	cacheTTLCart = time.Hour
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) *CartService {
	return &CartService{pool: pool, queries: queries, cache: cache}
}

func (s *CartService) FindCart(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	cacheKey := fmt.Sprintf(cacheKeyCart, userID.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCart").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart in cache").Logger()
	logger.Info().Msg("finding cart in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		var cart response.Cart
		if err := json.Unmarshal([]byte(jsonCache), &cart); err == nil {
			logger.Info().Msg("found cart in cache")
			return cart, nil
		}
		logger.Info().Msg("found unreadable cart in cache, falling back to db")
	} else if !errors.Is(err, redis.Nil) {
		logger.Info().Err(err).Msg("failed finding cart in cache, falling back to db")
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart in db").Logger()
	logger.Info().Msg("finding cart in db")
	cart, err := s.loadCart(c, s.queries, userID)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart in db")

	logger = logger.With().Str(log.KeyProcess, "inserting cart to cache").Logger()
	logger.Info().Msg("inserting cart to cache")
	cartJson, err := json.Marshal(cart)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if err := s.cache.Set(c, cacheKey, cartJson, cacheTTLCart).Err(); err != nil {
		err = fmt.Errorf("failed inserting cart to cache with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("inserted cart to cache")
	}

	return cart, nil
}

func (s *CartService) AddItem(
	c context.Context,
	userID uuid.UUID,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyBookID, param.BookID.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
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

	logger = logger.With().Str(log.KeyProcess, "finding book by id").Logger()
	logger.Info().Msg("finding book by id")
	_, err = queries.FindBookById(c, param.BookID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("book with id=%s not found", param.BookID.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		err = fmt.Errorf("failed finding book by id=%s with error=%w", param.BookID.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found book by id")

	logger = logger.With().Str(log.KeyProcess, "upserting cart").Logger()
	logger.Info().Msg("upserting cart")
	cart, err := queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed upserting cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("upserted cart")

	logger = logger.With().Str(log.KeyProcess, "upserting cart item").Logger()
	logger.Info().Msg("upserting cart item")
	item, err := queries.UpsertCartItem(c, repository.UpsertCartItemParams{
		CartID:   cart.ID,
		BookID:   param.BookID,
		Quantity: param.Quantity,
	})
	if err != nil {
		err = fmt.Errorf("failed upserting cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().
		Str(log.KeyCartItemID, item.ID.String()).
		Int32("mergedQuantity", item.Quantity).
		Logger()
	logger.Info().Msg("upserted cart item")

	logger = logger.With().Str(log.KeyProcess, "finding cart in db").Logger()
	logger.Info().Msg("finding cart in db")
	cartResponse, err := s.loadCart(c, queries, userID)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart in db")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	s.invalidateCart(c, logger, userID)

	return cartResponse, nil
}

func (s *CartService) UpdateItem(
	c context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	param request.UpdateCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, itemID.String()).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating cart item quantity").Logger()
	logger.Info().Msg("updating cart item quantity")
	_, err := s.queries.UpdateCartItemQuantity(c, repository.UpdateCartItemQuantityParams{
		ID:       itemID,
		CartID:   userID,
		Quantity: param.Quantity,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("cart item with id=%s not found", itemID.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		err = fmt.Errorf("failed updating cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("updated cart item quantity")

	s.invalidateCart(c, logger, userID)

	logger = logger.With().Str(log.KeyProcess, "finding cart in db").Logger()
	logger.Info().Msg("finding cart in db")
	cart, err := s.loadCart(c, s.queries, userID)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart in db")

	return cart, nil
}

func (s *CartService) RemoveItem(
	c context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, itemID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "deleting cart item").Logger()
	logger.Info().Msg("deleting cart item")
	affected, err := s.queries.DeleteCartItem(c, repository.DeleteCartItemParams{
		ID:     itemID,
		CartID: userID,
	})
	if err != nil {
		err = fmt.Errorf("failed deleting cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if affected == 0 {
		err = inErrors.NewNotFound("cart item with id=%s not found", itemID.String())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("deleted cart item")

	s.invalidateCart(c, logger, userID)

	logger = logger.With().Str(log.KeyProcess, "finding cart in db").Logger()
	logger.Info().Msg("finding cart in db")
	cart, err := s.loadCart(c, s.queries, userID)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart in db")

	return cart, nil
}

func (s *CartService) loadCart(
	c context.Context,
	queries *repository.Queries,
	userID uuid.UUID,
) (response.Cart, error) {
	cart, err := queries.FindCartByUserId(c, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Cart{}, inErrors.NewNotFound(
				"cart for user with id=%s not found",
				userID.String(),
			)
		}
		return response.Cart{}, fmt.Errorf("failed finding cart with error=%w", err)
	}
	items, err := queries.FindCartItems(c, cart.ID)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed finding cart items with error=%w", err)
	}
	return cart.Response(items), nil
}

func (s *CartService) invalidateCart(c context.Context, logger zerolog.Logger, userID uuid.UUID) {
	cacheKey := fmt.Sprintf(cacheKeyCart, userID.String())
	logger = logger.With().
		Str(log.KeyProcess, "deleting cart from cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("deleting cart from cache")
	if err := s.cache.Del(c, cacheKey).Err(); err != nil {
		err = fmt.Errorf("failed deleting cart from cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("deleted cart from cache")
}
