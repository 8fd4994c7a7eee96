package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/RedArtelerist/OnlineBookStore/book/pkg/request"
	"github.com/RedArtelerist/OnlineBookStore/book/pkg/response"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
)

const defaultPageSize = 20

type BookService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
}

func NewBookService(pool *pgxpool.Pool, queries *repository.Queries) *BookService {
	return &BookService{pool: pool, queries: queries}
}

func (s *BookService) InsertBook(
	c context.Context,
	param request.CreateBook,
) (response.Book, error) {
	c, span := otel.Tracer.Start(c, "BookService InsertBook")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookService InsertBook").
		Str("isbn", param.Isbn).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding categories").Logger()
	logger.Info().Msg("finding categories")
	if err := s.requireCategories(c, param.CategoryIds); err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
	}
	logger.Info().Msg("found categories")

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
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

	logger = logger.With().Str(log.KeyProcess, "inserting book to database").Logger()
	logger.Info().Msg("inserting book to database")
	book, err := s.queries.WithTx(tx).InsertBook(c, repository.InsertBookParams{
		Title:       param.Title,
		Author:      param.Author,
		Isbn:        param.Isbn,
		Price:       repository.NumericFromDecimal(param.Price),
		Description: pgtype.Text{String: param.Description, Valid: param.Description != ""},
		CoverImage:  pgtype.Text{String: param.CoverImage, Valid: param.CoverImage != ""},
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			err = inErrors.NewInvalidOperation("book with isbn=%s already exists", param.Isbn)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Book{}, err
		}
		err = fmt.Errorf("failed inserting book to database with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
	}
	logger = logger.With().Str(log.KeyBookID, book.ID.String()).Logger()
	logger.Info().Msg("inserted book to database")

	logger = logger.With().Str(log.KeyProcess, "inserting book categories").Logger()
	logger.Info().Msg("inserting book categories")
	for _, categoryId := range param.CategoryIds {
		err = s.queries.WithTx(tx).InsertBookCategory(c, repository.InsertBookCategoryParams{
			BookID:     book.ID,
			CategoryID: categoryId,
		})
		if err != nil {
			err = fmt.Errorf(
				"failed inserting book category categoryId=%s with error=%w",
				categoryId.String(),
				err,
			)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Book{}, err
		}
	}
	logger.Info().Msg("inserted book categories")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
	}
	logger.Info().Msg("committed transaction")

	return book.Response(param.CategoryIds), nil
}

func (s *BookService) FindBookById(
	c context.Context,
	id uuid.UUID,
) (response.Book, error) {
	c, span := otel.Tracer.Start(c, "BookService FindBookById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookService FindBookById").
		Str(log.KeyBookID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding book by id").Logger()
	logger.Info().Msg("finding book by id")
	book, err := s.queries.FindBookById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("book with id=%s not found", id.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Book{}, err
		}
		err = fmt.Errorf("failed finding book by id=%s with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
	}
	logger.Info().Msg("found book by id")

	logger = logger.With().Str(log.KeyProcess, "finding book categories").Logger()
	logger.Info().Msg("finding book categories")
	categoryIds, err := s.findCategoryIds(c, book.ID)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
	}
	logger.Info().Msg("found book categories")

	return book.Response(categoryIds), nil
}

func (s *BookService) FindBooks(
	c context.Context,
	param request.SearchBooks,
) ([]response.Book, error) {
	c, span := otel.Tracer.Start(c, "BookService FindBooks")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookService FindBooks").
		Logger()

	limit := param.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := param.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	logger = logger.With().Str(log.KeyProcess, "searching books").Logger()
	logger.Info().Msg("searching books")
	var books []repository.Book
	var err error
	if hasFilters(param) {
		books, err = s.queries.SearchBooks(c, repository.SearchBooksParams{
			Title:    pgtype.Text{String: param.Title, Valid: param.Title != ""},
			Authors:  param.Authors,
			MinPrice: numericFromOptional(param.MinPrice),
			MaxPrice: numericFromOptional(param.MaxPrice),
			Limit:    limit,
			Offset:   offset,
		})
	} else {
		books, err = s.queries.FindBooks(c, repository.FindBooksParams{
			Limit:  limit,
			Offset: offset,
		})
	}
	if err != nil {
		err = fmt.Errorf("failed searching books with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d books", len(books))

	responses := make([]response.Book, 0, len(books))
	for _, book := range books {
		categoryIds, err := s.findCategoryIds(c, book.ID)
		if err != nil {
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		responses = append(responses, book.Response(categoryIds))
	}
	return responses, nil
}

func (s *BookService) UpdateBook(
	c context.Context,
	id uuid.UUID,
	param request.UpdateBook,
) (response.Book, error) {
	c, span := otel.Tracer.Start(c, "BookService UpdateBook")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookService UpdateBook").
		Str(log.KeyBookID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding book by id").Logger()
	logger.Info().Msg("finding book by id")
	book, err := s.queries.FindBookById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("book with id=%s not found", id.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Book{}, err
		}
		err = fmt.Errorf("failed finding book by id=%s with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
	}
	logger.Info().Msg("found book by id")

	if param.CategoryIds != nil {
		logger = logger.With().Str(log.KeyProcess, "finding categories").Logger()
		logger.Info().Msg("finding categories")
		if err := s.requireCategories(c, param.CategoryIds); err != nil {
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Book{}, err
		}
		logger.Info().Msg("found categories")
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
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

	logger = logger.With().Str(log.KeyProcess, "updating book").Logger()
	logger.Info().Msg("updating book")
	updated, err := s.queries.WithTx(tx).UpdateBook(c, mergeBook(book, param))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			err = inErrors.NewInvalidOperation("book with isbn=%s already exists", *param.Isbn)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Book{}, err
		}
		err = fmt.Errorf("failed updating book with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
	}
	logger.Info().Msg("updated book")

	if param.CategoryIds != nil {
		logger = logger.With().Str(log.KeyProcess, "replacing book categories").Logger()
		logger.Info().Msg("replacing book categories")
		err = s.queries.WithTx(tx).DeleteBookCategories(c, updated.ID)
		if err != nil {
			err = fmt.Errorf("failed deleting book categories with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Book{}, err
		}
		for _, categoryId := range param.CategoryIds {
			err = s.queries.WithTx(tx).InsertBookCategory(c, repository.InsertBookCategoryParams{
				BookID:     updated.ID,
				CategoryID: categoryId,
			})
			if err != nil {
				err = fmt.Errorf(
					"failed inserting book category categoryId=%s with error=%w",
					categoryId.String(),
					err,
				)
				inErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Book{}, err
			}
		}
		logger.Info().Msg("replaced book categories")
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Book{}, err
	}
	logger.Info().Msg("committed transaction")

	categoryIds := param.CategoryIds
	if categoryIds == nil {
		categoryIds, err = s.findCategoryIds(c, updated.ID)
		if err != nil {
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Book{}, err
		}
	}
	return updated.Response(categoryIds), nil
}

func (s *BookService) RemoveBook(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "BookService RemoveBook")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookService RemoveBook").
		Str(log.KeyBookID, id.String()).
		Str(log.KeyProcess, "deleting book").
		Logger()

	logger.Info().Msg("deleting book")
	affected, err := s.queries.SoftDeleteBook(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting book with id=%s with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if affected == 0 {
		err = inErrors.NewNotFound("book with id=%s not found", id.String())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted book")

	return nil
}

func (s *BookService) findCategoryIds(c context.Context, bookID uuid.UUID) ([]uuid.UUID, error) {
	categories, err := s.queries.FindCategoriesByBookId(c, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed finding book categories with error=%w", err)
	}
	ids := make([]uuid.UUID, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}
	return ids, nil
}

func (s *BookService) requireCategories(c context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	categories, err := s.queries.FindCategoriesByIds(c, ids)
	if err != nil {
		return fmt.Errorf("failed finding categories with error=%w", err)
	}
	found := make(map[uuid.UUID]struct{}, len(categories))
	for _, category := range categories {
		found[category.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return inErrors.NewNotFound("category with id=%s not found", id.String())
		}
	}
	return nil
}

func hasFilters(param request.SearchBooks) bool {
	return param.Title != "" ||
		len(param.Authors) > 0 ||
		param.MinPrice != nil ||
		param.MaxPrice != nil
}

func numericFromOptional(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return repository.NumericFromDecimal(*d)
}
