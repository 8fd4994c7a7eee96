package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	bookResponse "github.com/RedArtelerist/OnlineBookStore/book/pkg/response"
	"github.com/RedArtelerist/OnlineBookStore/category/pkg/request"
	"github.com/RedArtelerist/OnlineBookStore/category/pkg/response"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
)

type CategoryService struct {
	queries *repository.Queries
}

func NewCategoryService(queries *repository.Queries) *CategoryService {
	return &CategoryService{queries: queries}
}

func (s *CategoryService) InsertCategory(
	c context.Context,
	param request.CreateCategory,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService InsertCategory").
		Str("name", param.Name).
		Str(log.KeyProcess, "inserting category").
		Logger()

	logger.Info().Msg("inserting category")
	category, err := s.queries.InsertCategory(c, repository.InsertCategoryParams{
		Name:        param.Name,
		Description: pgtype.Text{String: param.Description, Valid: param.Description != ""},
	})
	if err != nil {
		err = fmt.Errorf("failed inserting category with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Str(log.KeyCategoryID, category.ID.String()).Msg("inserted category")

	return category.Response(), nil
}

func (s *CategoryService) FindCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService FindCategories").
		Str(log.KeyProcess, "finding categories").
		Logger()

	logger.Info().Msg("finding categories")
	categories, err := s.queries.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d categories", len(categories))

	responses := make([]response.Category, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, category.Response())
	}
	return responses, nil
}

func (s *CategoryService) FindCategoryById(
	c context.Context,
	id uuid.UUID,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService FindCategoryById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService FindCategoryById").
		Str(log.KeyCategoryID, id.String()).
		Str(log.KeyProcess, "finding category by id").
		Logger()

	logger.Info().Msg("finding category by id")
	category, err := s.queries.FindCategoryById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("category with id=%s not found", id.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Category{}, err
		}
		err = fmt.Errorf("failed finding category by id=%s with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("found category by id")

	return category.Response(), nil
}

func (s *CategoryService) UpdateCategory(
	c context.Context,
	id uuid.UUID,
	param request.UpdateCategory,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService UpdateCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService UpdateCategory").
		Str(log.KeyCategoryID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding category by id").Logger()
	logger.Info().Msg("finding category by id")
	category, err := s.queries.FindCategoryById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("category with id=%s not found", id.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Category{}, err
		}
		err = fmt.Errorf("failed finding category by id=%s with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("found category by id")

	params := repository.UpdateCategoryParams{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
	if param.Name != nil {
		params.Name = *param.Name
	}
	if param.Description != nil {
		params.Description = pgtype.Text{String: *param.Description, Valid: true}
	}

	logger = logger.With().Str(log.KeyProcess, "updating category").Logger()
	logger.Info().Msg("updating category")
	updated, err := s.queries.UpdateCategory(c, params)
	if err != nil {
		err = fmt.Errorf("failed updating category with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Msg("updated category")

	return updated.Response(), nil
}

func (s *CategoryService) RemoveCategory(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CategoryService RemoveCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService RemoveCategory").
		Str(log.KeyCategoryID, id.String()).
		Str(log.KeyProcess, "deleting category").
		Logger()

	logger.Info().Msg("deleting category")
	affected, err := s.queries.SoftDeleteCategory(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting category with id=%s with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if affected == 0 {
		err = inErrors.NewNotFound("category with id=%s not found", id.String())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted category")

	return nil
}

func (s *CategoryService) FindBooksByCategoryId(
	c context.Context,
	id uuid.UUID,
) ([]bookResponse.Book, error) {
	c, span := otel.Tracer.Start(c, "CategoryService FindBooksByCategoryId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService FindBooksByCategoryId").
		Str(log.KeyCategoryID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding category by id").Logger()
	logger.Info().Msg("finding category by id")
	_, err := s.queries.FindCategoryById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.NewNotFound("category with id=%s not found", id.String())
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		err = fmt.Errorf("failed finding category by id=%s with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("found category by id")

	logger = logger.With().Str(log.KeyProcess, "finding books by category").Logger()
	logger.Info().Msg("finding books by category")
	books, err := s.queries.FindBooksByCategoryId(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding books by categoryId=%s with error=%w", id.String(), err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d books", len(books))

	responses := make([]bookResponse.Book, 0, len(books))
	for _, book := range books {
		categories, err := s.queries.FindCategoriesByBookId(c, book.ID)
		if err != nil {
			err = fmt.Errorf("failed finding book categories with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		categoryIds := make([]uuid.UUID, 0, len(categories))
		for _, category := range categories {
			categoryIds = append(categoryIds, category.ID)
		}
		responses = append(responses, book.Response(categoryIds))
	}
	return responses, nil
}
