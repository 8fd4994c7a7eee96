package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	bookController "github.com/RedArtelerist/OnlineBookStore/book/controller"
	bookService "github.com/RedArtelerist/OnlineBookStore/book/service"
	cartController "github.com/RedArtelerist/OnlineBookStore/cart/controller"
	cartService "github.com/RedArtelerist/OnlineBookStore/cart/service"
	categoryController "github.com/RedArtelerist/OnlineBookStore/category/controller"
	categoryService "github.com/RedArtelerist/OnlineBookStore/category/service"
	"github.com/RedArtelerist/OnlineBookStore/internal/config"
	"github.com/RedArtelerist/OnlineBookStore/internal/constants"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
	"github.com/RedArtelerist/OnlineBookStore/internal/infra"
	"github.com/RedArtelerist/OnlineBookStore/internal/log"
	"github.com/RedArtelerist/OnlineBookStore/internal/middleware"
	"github.com/RedArtelerist/OnlineBookStore/internal/otel"
	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
	orderController "github.com/RedArtelerist/OnlineBookStore/order/controller"
	orderService "github.com/RedArtelerist/OnlineBookStore/order/service"
	userController "github.com/RedArtelerist/OnlineBookStore/user/controller"
	userService "github.com/RedArtelerist/OnlineBookStore/user/service"
)

func RunBookstore(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunBookstore")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppBookstore).
		Str(log.KeyTag, "main RunBookstore").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppBookstore)
	logger = logger.With().Any(log.KeyConfig, cfg).Logger()
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.AppBookstore, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(c)
		if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer func() {
		logger.Info().Msg("shutting down database")
		db.Close()
		logger.Info().Msg("shutdown database")
	}()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger.Info().Msg("shutting down cache")
		if err := cache.Close(); err != nil {
			err = fmt.Errorf("failed shutting down cache with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(log.KeyProcess, "initializing services").Logger()
	logger.Info().Msg("initializing services")
	queries := repository.New(db)
	users := userService.NewUserService(db, queries, cfg.Application)
	books := bookService.NewBookService(db, queries)
	categories := categoryService.NewCategoryService(queries)
	carts := cartService.NewCartService(db, queries, cache)
	orders := orderService.NewOrderService(db, queries, cache)
	logger.Info().Msg("initialized services")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.AppBookstore),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	userController.AttachUserController(router, users)
	bookController.AttachBookController(router, books)
	categoryController.AttachCategoryController(router, categories)

	authedRouter := router.NewRoute().Subrouter()
	authedRouter.Use(middleware.Auth(cfg.Application.SecretKey))
	userController.AttachProfileController(authedRouter, users)
	cartController.AttachCartController(authedRouter, carts)
	orderController.AttachOrderController(authedRouter, orders)

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.Auth(cfg.Application.SecretKey), middleware.RequireAdmin)
	bookController.AttachBookAdminController(adminRouter, books)
	categoryController.AttachCategoryAdminController(adminRouter, categories)
	orderController.AttachOrderAdminController(adminRouter, orders)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      otelhttp.NewHandler(router, constants.AppBookstore),
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	go func() {
		logger := logger.With().Str(log.KeyProcess, "running server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutting down http server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
