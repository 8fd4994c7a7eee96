package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	inHttp "github.com/RedArtelerist/OnlineBookStore/internal/http"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
	"github.com/RedArtelerist/OnlineBookStore/internal/token"
	"github.com/RedArtelerist/OnlineBookStore/order/service"
	"github.com/RedArtelerist/OnlineBookStore/order/pkg/request"
)

type OrderController struct {
	service *service.OrderService
}

func AttachOrderController(router *mux.Router, service *service.OrderService) {
	controller := OrderController{service: service}

	orderRouter := router.PathPrefix("/orders").Subrouter()
	orderRouter.HandleFunc("", controller.CreateOrder).Methods(http.MethodPost)
	orderRouter.HandleFunc("", controller.FindOrders).Methods(http.MethodGet)
	orderRouter.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
	orderRouter.HandleFunc("/{orderId}/items/{orderItemId}", controller.FindOrderItemById).
		Methods(http.MethodGet)
}

func AttachOrderAdminController(router *mux.Router, service *service.OrderService) {
	controller := OrderController{service: service}

	orderRouter := router.PathPrefix("/orders").Subrouter()
	orderRouter.HandleFunc("/{orderId}/status", controller.UpdateStatus).Methods(http.MethodPatch)
}

func (t OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController CreateOrder").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	logger.Info().Msg("getting userId from token")
	userId, err := token.UserIdFromContext(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msg("got userId from token")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.CreateOrder{}
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

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	logger.Info().Msg("creating order")
	c = logger.WithContext(c)
	order, err := t.service.CreateOrder(c, userId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("created order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"data":       order,
	})
}

func (t OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrders").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	logger.Info().Msg("getting userId from token")
	userId, err := token.UserIdFromContext(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msg("got userId from token")

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	c = logger.WithContext(c)
	orders, err := t.service.FindOrders(c, userId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found orders")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       orders,
	})
}

func (t OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	logger.Info().Msg("getting userId from token")
	userId, err := token.UserIdFromContext(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msg("got userId from token")

	logger = logger.With().Str(log.KeyProcess, "parsing orderId").Logger()
	logger.Info().Msg("parsing orderId")
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing orderId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()
	logger.Info().Msg("parsed orderId")

	logger = logger.With().Str(log.KeyProcess, "finding order by id").Logger()
	logger.Info().Msg("finding order by id")
	c = logger.WithContext(c)
	order, err := t.service.FindOrderById(c, userId, orderId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found order by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       order,
	})
}

func (t OrderController) FindOrderItemById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderItemById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderItemById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	logger.Info().Msg("getting userId from token")
	userId, err := token.UserIdFromContext(c)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msg("got userId from token")

	logger = logger.With().Str(log.KeyProcess, "parsing path values").Logger()
	logger.Info().Msg("parsing path values")
	vars := mux.Vars(r)
	orderId, err := uuid.Parse(vars["orderId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing orderId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	orderItemId, err := uuid.Parse(vars["orderItemId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing orderItemId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().
		Str(log.KeyOrderID, orderId.String()).
		Str("orderItemId", orderItemId.String()).
		Logger()
	logger.Info().Msg("parsed path values")

	logger = logger.With().Str(log.KeyProcess, "finding order item by id").Logger()
	logger.Info().Msg("finding order item by id")
	c = logger.WithContext(c)
	item, err := t.service.FindOrderItemById(c, userId, orderId, orderItemId)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found order item by id")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       item,
	})
}

func (t OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController UpdateStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController UpdateStatus").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing orderId").Logger()
	logger.Info().Msg("parsing orderId")
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = inErrors.NewInvalidOperation("failed parsing orderId with error=%s", err.Error())
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()
	logger.Info().Msg("parsed orderId")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateOrderStatus{}
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

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msg("updating order status")
	c = logger.WithContext(c)
	order, err := t.service.UpdateStatus(c, orderId, reqBody)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("updated order status")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"data":       order,
	})
}
