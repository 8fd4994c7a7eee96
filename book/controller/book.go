package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/RedArtelerist/OnlineBookStore/book/service"
	"github.com/RedArtelerist/OnlineBookStore/book/pkg/request"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	inHttp "github.com/RedArtelerist/OnlineBookStore/internal/http"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
)

type BookController struct {
	service *service.BookService
}

func AttachBookController(router *mux.Router, service *service.BookService) {
	controller := BookController{service: service}

	bookRouter := router.PathPrefix("/books").Subrouter()
	bookRouter.HandleFunc("", controller.FindBooks).Methods(http.MethodGet)
	bookRouter.HandleFunc("/search", controller.FindBooks).Methods(http.MethodGet)
	bookRouter.HandleFunc("/{bookId}", controller.FindBookById).Methods(http.MethodGet)
}

func AttachBookAdminController(router *mux.Router, service *service.BookService) {
	controller := BookController{service: service}

	bookRouter := router.PathPrefix("/books").Subrouter()
	bookRouter.HandleFunc("", controller.InsertBook).Methods(http.MethodPost)
	bookRouter.HandleFunc("/{bookId}", controller.UpdateBook).Methods(http.MethodPatch)
	bookRouter.HandleFunc("/{bookId}", controller.RemoveBook).Methods(http.MethodDelete)
}

func (t BookController) InsertBook(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "BookController InsertBook")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookController InsertBook").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.CreateBook{}
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

	logger = logger.With().Str(log.KeyProcess, "inserting book").Logger()
	logger.Info().Msg("inserting book")
	c = logger.WithContext(c)
	book, err := t.service.InsertBook(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting book with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("inserted book")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"data":       book,
	})
}

func (t BookController) FindBooks(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "BookController FindBooks")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookController FindBooks").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing query params").Logger()
	logger.Info().Msg("parsing query params")
	reqBody, err := searchBooksFromQuery(r)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("parsed query params")

	logger = logger.With().Str(log.KeyProcess, "validating query params").Logger()
	logger.Info().Msg("validating query params")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = inErrors.NewInvalidOperation("failed validating query params with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("validated query params")

	logger = logger.With().Str(log.KeyProcess, "finding books").Logger()
	logger.Info().Msg("finding books")
	c = logger.WithContext(c)
	books, err := t.service.FindBooks(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed finding books with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found books")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       books,
	})
}

func (t BookController) FindBookById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "BookController FindBookById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookController FindBookById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing bookId").Logger()
	logger.Info().Msg("parsing bookId")
	bookId, err := uuid.Parse(mux.Vars(r)["bookId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing bookId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyBookID, bookId.String()).Logger()
	logger.Info().Msg("parsed bookId")

	logger = logger.With().Str(log.KeyProcess, "finding book by id").Logger()
	logger.Info().Msg("finding book by id")
	c = logger.WithContext(c)
	book, err := t.service.FindBookById(c, bookId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found book by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       book,
	})
}

func (t BookController) UpdateBook(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "BookController UpdateBook")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookController UpdateBook").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing bookId").Logger()
	logger.Info().Msg("parsing bookId")
	bookId, err := uuid.Parse(mux.Vars(r)["bookId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing bookId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyBookID, bookId.String()).Logger()
	logger.Info().Msg("parsed bookId")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateBook{}
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

	logger = logger.With().Str(log.KeyProcess, "updating book").Logger()
	logger.Info().Msg("updating book")
	c = logger.WithContext(c)
	book, err := t.service.UpdateBook(c, bookId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("updated book")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       book,
	})
}

func (t BookController) RemoveBook(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "BookController RemoveBook")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "BookController RemoveBook").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing bookId").Logger()
	logger.Info().Msg("parsing bookId")
	bookId, err := uuid.Parse(mux.Vars(r)["bookId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing bookId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyBookID, bookId.String()).Logger()
	logger.Info().Msg("parsed bookId")

	logger = logger.With().Str(log.KeyProcess, "deleting book").Logger()
	logger.Info().Msg("deleting book")
	c = logger.WithContext(c)
	if err := t.service.RemoveBook(c, bookId); err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("deleted book")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "book deleted",
	})
}

func searchBooksFromQuery(r *http.Request) (request.SearchBooks, error) {
	query := r.URL.Query()
	param := request.SearchBooks{
		Title:   query.Get("title"),
		Authors: query["author"],
	}
	if raw := query.Get("min_price"); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return request.SearchBooks{}, inErrors.NewInvalidOperation(
				"failed parsing min_price=%s with error=%s", raw, err.Error(),
			)
		}
		param.MinPrice = &minPrice
	}
	if raw := query.Get("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return request.SearchBooks{}, inErrors.NewInvalidOperation(
				"failed parsing max_price=%s with error=%s", raw, err.Error(),
			)
		}
		param.MaxPrice = &maxPrice
	}
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return request.SearchBooks{}, inErrors.NewInvalidOperation(
				"failed parsing page=%s with error=%s", raw, err.Error(),
			)
		}
		param.Page = int32(page)
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return request.SearchBooks{}, inErrors.NewInvalidOperation(
				"failed parsing limit=%s with error=%s", raw, err.Error(),
			)
		}
		param.Limit = int32(limit)
	}
	return param, nil
}
