package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/soporteit/helpdesk-service/internal/api/http"
	"github.com/soporteit/helpdesk-service/internal/api/http/handlers"
	"github.com/soporteit/helpdesk-service/internal/auth"
	"github.com/soporteit/helpdesk-service/internal/config"
	"github.com/soporteit/helpdesk-service/internal/events"
	"github.com/soporteit/helpdesk-service/internal/observability"
	"github.com/soporteit/helpdesk-service/internal/persistence"
	"github.com/soporteit/helpdesk-service/internal/repository"
	"github.com/soporteit/helpdesk-service/internal/service"
	"github.com/soporteit/helpdesk-service/internal/storage"
	"github.com/soporteit/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var blob storage.Blob
	if cfg.Upload.ExternalBaseURL != "" {
		blob, err = storage.NewExternal(cfg.Upload.ExternalBaseURL)
	} else {
		blob, err = storage.NewLocal(cfg.Upload.Dir)
	}
	if err != nil {
		logger.Fatal("failed to init upload storage", zap.Error(err))
	}

	store := repository.NewPostgresStore(pg.PoolHandle())
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	lifecycleService := service.NewLifecycleService(service.LifecycleDependencies{
		Store:      store,
		Dispatcher: dispatcher,
	})
	ticketService := service.NewTicketService(store)
	attachmentService := service.NewAttachmentService(service.AttachmentDependencies{
		Store:      store,
		Blob:       blob,
		Dispatcher: dispatcher,
	})
	catalogService := service.NewCatalogService(store.Categories())
	authService := service.NewAuthService(*cfg, store.Users())
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, dispatcher, metrics)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager, store.Users())

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(service.MaxAttachmentBytes) * (service.MaxBatchFiles + 1),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(lifecycleService, ticketService),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
