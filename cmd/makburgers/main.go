// Package main запускает бота заказов Makburgers и его веб-сервис.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/makburgers-bot/internal/catalog"
	"github.com/mmeshcher/makburgers-bot/internal/config"
	"github.com/mmeshcher/makburgers-bot/internal/handler"
	"github.com/mmeshcher/makburgers-bot/internal/metrics"
	"github.com/mmeshcher/makburgers-bot/internal/middleware"
	"github.com/mmeshcher/makburgers-bot/internal/model"
	"github.com/mmeshcher/makburgers-bot/internal/order"
	"github.com/mmeshcher/makburgers-bot/internal/outbox"
	"github.com/mmeshcher/makburgers-bot/internal/repository"
	"github.com/mmeshcher/makburgers-bot/internal/service"
	"github.com/mmeshcher/makburgers-bot/internal/session"
	"github.com/mmeshcher/makburgers-bot/internal/telegram"
	"github.com/mmeshcher/makburgers-bot/internal/webhook"
)

type snapshotStore interface {
	Load(ctx context.Context) (map[int64]model.UserProfile, error)
	Save(ctx context.Context, profiles map[int64]model.UserProfile) error
	Close() error
}

func main() {
	envErr := godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		sugar.Warnw(".env load error", "error", envErr.Error())
	}

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openSnapshots(cfg)
	if err != nil {
		sugar.Fatalw("snapshot store initialization error", "error", err.Error())
	}
	defer store.Close()

	profiles, err := store.Load(ctx)
	if err != nil {
		sugar.Warnw("snapshot load error, starting with loaded part", "error", err.Error())
	}
	sugar.Infow("profiles loaded", "count", len(profiles))

	queue, err := openOutbox(ctx, cfg)
	if err != nil {
		sugar.Fatalw("outbox initialization error", "error", err.Error())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	botMetrics := metrics.NewBotMetrics(reg)

	tgbotapi.SetLogger(zap.NewStdLog(logger.Named("tgbotapi")))
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		sugar.Fatalw("telegram bot initialization error", "error", err.Error())
	}
	sugar.Infow("authorized", "bot", bot.Self.UserName)

	notifier := telegram.NewAdminNotifier(bot, cfg.AdminID, logger)
	menu := catalog.Default()

	svc := service.NewService(service.Deps{
		Store:     session.NewMemory(profiles),
		Catalog:   menu,
		Engine:    order.NewEngine(menu),
		Snapshots: store,
		Notifier:  notifier,
		Queue:     queue,
		Metrics:   botMetrics,
		Logger:    logger,
	})

	gw := telegram.NewGateway(svc, telegram.NewSender(bot, logger), logger, cfg.Workers)
	dispatcher := outbox.NewDispatcher(queue, notifier, logger, botMetrics, cfg.OutboxInterval)
	hooks := webhook.NewClient(bot)

	h := handler.NewHandler(gw, logger, middleware.NewSecretMiddleware(cfg.WebhookSecret),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return gw.Run(ctx)
	})

	g.Go(func() error {
		return dispatcher.Run(ctx)
	})

	// Приём обновлений: вебхук при заданном WEB_HOST, иначе длинный опрос
	g.Go(func() error {
		if cfg.Webhook() {
			endpoint := webhook.Endpoint(cfg.WebHost)
			if err := hooks.SetWebhook(ctx, endpoint, cfg.WebhookSecret); err != nil {
				return fmt.Errorf("set webhook: %w", err)
			}
			sugar.Infow("webhook registered", "url", endpoint)
			return nil
		}

		if err := hooks.DeleteWebhook(ctx, false); err != nil {
			return fmt.Errorf("delete webhook: %w", err)
		}
		sugar.Info("starting long polling")
		return telegram.Poll(ctx, bot, gw, logger)
	})

	g.Go(func() error {
		sugar.Infow("starting makburgers web service", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		if err := svc.Persist(shutdownCtx); err != nil {
			sugar.Errorw("final snapshot save error", "error", err.Error())
		}

		if n, err := queue.Len(shutdownCtx); err == nil && n > 0 {
			sugar.Warnw("undelivered tickets left in outbox", "count", n)
		}
		if closer, ok := queue.(interface{ Close() error }); ok {
			closer.Close()
		}

		sugar.Info("stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

func openSnapshots(cfg *config.Config) (snapshotStore, error) {
	if cfg.DatabaseURI != "" {
		return repository.NewPostgresRepository(cfg.DatabaseURI)
	}
	return repository.NewFileStore(cfg.UserDataFile), nil
}

func openOutbox(ctx context.Context, cfg *config.Config) (outbox.Queue, error) {
	if cfg.RedisURL == "" {
		return outbox.NewMemoryQueue(), nil
	}
	return outbox.NewRedisQueue(ctx, cfg.RedisURL)
}
