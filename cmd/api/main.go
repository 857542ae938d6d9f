package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"tamilsociety/internal/adapter/api"
	"tamilsociety/internal/adapter/api/handler"
	apimiddleware "tamilsociety/internal/adapter/api/middleware"
	"tamilsociety/internal/adapter/api/router"
	"tamilsociety/internal/adapter/repository"
	"tamilsociety/internal/domain/entity"
	"tamilsociety/internal/domain/service"
	"tamilsociety/internal/infrastructure/auth"
	"tamilsociety/internal/infrastructure/imaging"
	"tamilsociety/internal/infrastructure/ratelimit"
	"tamilsociety/internal/infrastructure/storage"
	"tamilsociety/internal/infrastructure/websocket"
	"tamilsociety/internal/usecase"
	"tamilsociety/pkg/config"
	"tamilsociety/pkg/logger"
	"tamilsociety/pkg/response"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

// run wires the server and blocks until a shutdown signal or a fatal server
// error.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %v", err)
	}
	logger.SetDebug(cfg.IsDevelopment())
	response.ExposeInternalErrors(!cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("Failed to disconnect from MongoDB: %v", err)
		}
	}()
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to create indexes: %v", err)
	}
	logger.Info("Connected to MongoDB database %s", cfg.MongoDatabase)

	e := echo.New()
	e.HideBanner = true

	var store service.FileStorage
	switch cfg.StorageDriver {
	case "gcs":
		gcsStore, err := storage.NewGCSStore(ctx, cfg.StorageBucket, cfg.GCSCredentialsPath, cfg.CORSOrigins)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloud Storage: %v", err)
		}
		defer gcsStore.Close()
		store = gcsStore
	default:
		localStore, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize upload directory: %v", err)
		}
		e.Static(cfg.PublicBaseURL, localStore.Root())
		store = localStore
	}

	userRepo := repository.NewMongoUserRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	counterRepo := repository.NewMongoCounterRepository(db)
	settingsRepo := repository.NewMongoPaymentSettingsRepository(db)
	contentRepo := repository.NewMongoWebsiteContentRepository(db)
	applicationRepo := repository.NewMongoApplicationRepository(db)
	cartRepo := repository.NewMongoCartRepository(db)
	activityRepo := repository.NewMongoActivityRepository(db)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultPolicies(cfg.RateLimitPerMinute))
	limiter.StartCleanupRoutine(ctx, 10*time.Minute)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)

	activityUseCase := usecase.NewActivityUseCase(activityRepo, wsManager)
	authUseCase := usecase.NewAuthUseCase(userRepo, tokens)
	settingsUseCase := usecase.NewPaymentSettingsUseCase(settingsRepo, activityUseCase)
	catalogUseCase := usecase.NewCatalogUseCase(
		repository.NewMongoBookRepository(db),
		repository.NewMongoEbookRepository(db),
		repository.NewMongoPosterRepository(db),
		activityUseCase,
	)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, counterRepo, catalogUseCase, settingsUseCase, activityUseCase)
	contentUseCase := usecase.NewWebsiteContentUseCase(contentRepo, activityUseCase)
	fileUseCase := usecase.NewFileUseCase(store, settingsUseCase, activityUseCase)
	applicationUseCase := usecase.NewApplicationUseCase(applicationRepo, store, activityUseCase)
	cartUseCase := usecase.NewCartUseCase(cartRepo, catalogUseCase)

	var programUseCases []*usecase.ProgramUseCase
	for _, kind := range []entity.ProgramKind{entity.ProgramKindProject, entity.ProgramKindActivity, entity.ProgramKindInitiative} {
		programUseCases = append(programUseCases, usecase.NewProgramUseCase(
			repository.NewMongoProgramRepository(db, kind),
			repository.NewMongoProgramImageRepository(db, kind),
			store,
			imaging.Thumbnail,
			activityUseCase,
		))
	}
	dashboardUseCase := usecase.NewDashboardUseCase(orderUseCase, catalogUseCase, contentUseCase, applicationUseCase, programUseCases...)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authUseCase.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			return fmt.Errorf("failed to seed admin account: %v", err)
		}
	}

	handler.Setup(handler.UseCases{
		Auth:            authUseCase,
		Orders:          orderUseCase,
		Catalog:         catalogUseCase,
		Programs:        programUseCases,
		Content:         contentUseCase,
		PaymentSettings: settingsUseCase,
		Files:           fileUseCase,
		Applications:    applicationUseCase,
		Cart:            cartUseCase,
		Dashboard:       dashboardUseCase,
		Activity:        activityUseCase,
	}, wsManager, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}, cfg.IsProduction())

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: !containsWildcard(cfg.CORSOrigins),
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler

	authMiddleware := apimiddleware.NewAuthMiddleware(tokens)
	accessMiddleware := apimiddleware.NewAccessMiddleware(userRepo)

	router.Setup(e, authMiddleware, accessMiddleware, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server stopped: %v", err)
	case <-ctx.Done():
	}
	logger.Info("Shutting down...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
