package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/RedArtelerist/OnlineBookStore/category/service"
	"github.com/RedArtelerist/OnlineBookStore/category/pkg/request"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	inHttp "github.com/RedArtelerist/OnlineBookStore/internal/http"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
)

type CategoryController struct {
	service *service.CategoryService
}

func AttachCategoryController(router *mux.Router, service *service.CategoryService) {
	controller := CategoryController{service: service}

	categoryRouter := router.PathPrefix("/categories").Subrouter()
	categoryRouter.HandleFunc("", controller.FindCategories).Methods(http.MethodGet)
	categoryRouter.HandleFunc("/{categoryId}", controller.FindCategoryById).Methods(http.MethodGet)
	categoryRouter.HandleFunc("/{categoryId}/books", controller.FindBooksByCategoryId).
		Methods(http.MethodGet)
}

func AttachCategoryAdminController(router *mux.Router, service *service.CategoryService) {
	controller := CategoryController{service: service}

	categoryRouter := router.PathPrefix("/categories").Subrouter()
	categoryRouter.HandleFunc("", controller.InsertCategory).Methods(http.MethodPost)
	categoryRouter.HandleFunc("/{categoryId}", controller.UpdateCategory).Methods(http.MethodPatch)
	categoryRouter.HandleFunc("/{categoryId}", controller.RemoveCategory).Methods(http.MethodDelete)
}

func (t CategoryController) InsertCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController InsertCategory").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.CreateCategory{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = inErrors.NewInvalidOperation("failed decoding request body with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = inErrors.NewInvalidOperation("failed validating request body with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "inserting category").Logger()
	logger.Info().Msg("inserting category")
	c = logger.WithContext(c)
	category, err := t.service.InsertCategory(c, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("inserted category")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"data":       category,
	})
}

func (t CategoryController) FindCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController FindCategories").
		Str(log.KeyProcess, "finding categories").
		Logger()

	logger.Info().Msg("finding categories")
	c = logger.WithContext(c)
	categories, err := t.service.FindCategories(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found categories")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       categories,
	})
}

func (t CategoryController) FindCategoryById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController FindCategoryById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController FindCategoryById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing categoryId").Logger()
	logger.Info().Msg("parsing categoryId")
	categoryId, err := uuid.Parse(mux.Vars(r)["categoryId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing categoryId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryId.String()).Logger()
	logger.Info().Msg("parsed categoryId")

	logger = logger.With().Str(log.KeyProcess, "finding category by id").Logger()
	logger.Info().Msg("finding category by id")
	c = logger.WithContext(c)
	category, err := t.service.FindCategoryById(c, categoryId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found category by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       category,
	})
}

func (t CategoryController) FindBooksByCategoryId(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController FindBooksByCategoryId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController FindBooksByCategoryId").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing categoryId").Logger()
	logger.Info().Msg("parsing categoryId")
	categoryId, err := uuid.Parse(mux.Vars(r)["categoryId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing categoryId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryId.String()).Logger()
	logger.Info().Msg("parsed categoryId")

	logger = logger.With().Str(log.KeyProcess, "finding books by category").Logger()
	logger.Info().Msg("finding books by category")
	c = logger.WithContext(c)
	books, err := t.service.FindBooksByCategoryId(c, categoryId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found books by category")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       books,
	})
}

func (t CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController UpdateCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController UpdateCategory").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing categoryId").Logger()
	logger.Info().Msg("parsing categoryId")
	categoryId, err := uuid.Parse(mux.Vars(r)["categoryId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing categoryId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryId.String()).Logger()
	logger.Info().Msg("parsed categoryId")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateCategory{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = inErrors.NewInvalidOperation("failed decoding request body with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = inErrors.NewInvalidOperation("failed validating request body with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating category").Logger()
	logger.Info().Msg("updating category")
	c = logger.WithContext(c)
	category, err := t.service.UpdateCategory(c, categoryId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("updated category")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       category,
	})
}

func (t CategoryController) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CategoryController RemoveCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryController RemoveCategory").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing categoryId").Logger()
	logger.Info().Msg("parsing categoryId")
	categoryId, err := uuid.Parse(mux.Vars(r)["categoryId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing categoryId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyCategoryID, categoryId.String()).Logger()
	logger.Info().Msg("parsed categoryId")

	logger = logger.With().Str(log.KeyProcess, "deleting category").Logger()
	logger.Info().Msg("deleting category")
	c = logger.WithContext(c)
	if err := t.service.RemoveCategory(c, categoryId); err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("deleted category")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "category deleted",
	})
}
