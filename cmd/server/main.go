package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/inventory/internal/cache"
	"github.com/Skotchmaster/inventory/internal/cacheaside"
	"github.com/Skotchmaster/inventory/internal/config"
	"github.com/Skotchmaster/inventory/internal/db"
	"github.com/Skotchmaster/inventory/internal/es"
	"github.com/Skotchmaster/inventory/internal/handlers"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/middleware/loggingmw"
	"github.com/Skotchmaster/inventory/internal/mykafka"
	"github.com/Skotchmaster/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/internal/seed"
	httpserver "github.com/Skotchmaster/inventory/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()
	gdb, err := db.Open(ctx, configuration.DatabaseDSN())
	if err != nil {
		logger.Error("db open failed", "error", err)
		os.Exit(1)
	}
	if err := config.Migrate(gdb); err != nil {
		logger.Error("db migrate failed", "error", err)
		os.Exit(1)
	}
	if configuration.Seed {
		if err := seed.Run(gdb); err != nil {
			logger.Error("seed failed", "error", err)
			os.Exit(1)
		}
	}

	var store cache.Store
	if configuration.REDIS_ADDR != "" {
		redisStore, err := cache.NewRedis(configuration.REDIS_ADDR, configuration.REDIS_PASSWORD, configuration.REDIS_DB)
		if err != nil {
			logger.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		memStore := cache.NewMemory()
		defer memStore.Close()
		store = memStore
	}
	accessor := cacheaside.New(store)

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		defer producer.Close()
	}

	productHandler := &handlers.ProductHandler{
		Repo:     repo.NewProductRepo(gdb, accessor),
		Producer: producer,
		Index:    "product",
	}
	var searchHandler *handlers.SearchHandler
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			logger.Error("elasticsearch connect failed", "error", err)
			os.Exit(1)
		}
		productHandler.ES = client
		searchHandler = &handlers.SearchHandler{ES: client, Index: "product"}
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	if len(jwtSecret) == 0 {
		logger.Error("missing required env JWT_SECRET")
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		JWTSecret:       jwtSecret,
		AuthHandler:     &handlers.AuthHandler{DB: gdb, JWTSecret: jwtSecret},
		ProductHandler:  productHandler,
		CategoryHandler: &handlers.CategoryHandler{Repo: repo.NewCategoryRepo(gdb, accessor)},
		ProfileHandler:  &handlers.ProfileHandler{Repo: repo.NewProfileRepo(gdb, accessor)},
		SaleHandler:     &handlers.SaleHandler{Repo: repo.NewSaleRepo(gdb, accessor), Producer: producer},
		SearchHandler:   searchHandler,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", configuration.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
