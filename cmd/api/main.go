package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/zendesk-dashboard/internal/api/http"
	"github.com/spec-kit/zendesk-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/config"
	"github.com/spec-kit/zendesk-dashboard/internal/events"
	"github.com/spec-kit/zendesk-dashboard/internal/observability"
	"github.com/spec-kit/zendesk-dashboard/internal/service"
	"github.com/spec-kit/zendesk-dashboard/internal/worker"
	"github.com/spec-kit/zendesk-dashboard/internal/zendesk"
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

	if !cfg.Zendesk.Configured() {
		logger.Warn("zendesk credentials missing; dashboard will render the configuration panel")
	}

	store := newCacheStore(cfg, logger)
	defer store.Close()

	metrics := observability.NewMetrics()
	client := zendesk.NewClient(cfg.Zendesk, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		Source:      client,
		Store:       store,
		Metrics:     metrics,
		Logger:      logger,
		RecentCount: cfg.Zendesk.RecentCount,
		TicketTTL:   cfg.Cache.TicketTTL,
		UserTTL:     cfg.Cache.UserTTL,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		Source:     client,
		Store:      store,
		Metrics:    metrics,
		Logger:     logger,
		CommentTTL: cfg.Cache.CommentTTL,
	})
	statsService := service.NewStatsService(service.StatsDependencies{
		Source:   client,
		Store:    store,
		Metrics:  metrics,
		Logger:   logger,
		StatsTTL: cfg.Cache.StatsTTL,
		UserTTL:  cfg.Cache.UserTTL,
	})

	dispatcher := events.NewInMemoryDispatcher()
	webhookService := service.NewWebhookService(dispatcher, store, logger, cfg.Webhook.InvalidateTickets)
	worker.StartWebhookWorker(webhookService)

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, cfg.Zendesk),
		Dashboard: handlers.NewDashboardHandler(ticketService, statsService, cfg.Zendesk, cfg.Display),
		Comments:  handlers.NewCommentsHandler(commentService, cfg.Display),
		Webhook:   handlers.NewWebhookHandler(webhookService),
		Debug:     handlers.NewDebugHandler(client, store, metrics, cfg.Zendesk),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newCacheStore(cfg *config.Config, logger *zap.Logger) cache.Store {
	if cfg.Cache.Backend == config.CacheBackendRedis {
		return cache.NewRedisStore(cfg.Redis, logger)
	}
	return cache.NewMemoryStore(cache.WithMaxEntries(cfg.Cache.MaxEntries))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
