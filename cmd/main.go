// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/cache"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/config"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/database"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/handler"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/logging"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/queue"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Init(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
	logrus.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg.Database().DSN())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	logrus.Info("connected to PostgreSQL")

	if cfg.Migrate {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		logrus.Info("schema applied")
	}

	// ── 2. Optional infrastructure ───────────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("redis unavailable, session cache stays cold until it recovers")
		}
	}
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionCacheTTL)

	var notifier service.Notifier = queue.Discard{}
	if cfg.AMQPURL != "" {
		publisher := queue.NewPublisher(cfg.AMQPURL)
		defer publisher.Close()
		notifier = publisher
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	bookingRepo := repository.NewBookingRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	bookingSvc := service.NewBookingService(bookingRepo, sessionCache, notifier)
	sessionSvc := service.NewSessionService(sessionRepo, bookingRepo, sessionCache, notifier,
		repository.CancelPolicy(cfg.SessionCancelPolicy))
	ticketSvc := service.NewTicketService(ticketRepo, planRepo, orderRepo)

	router := handler.NewRouter(handler.Handlers{
		Bookings:  handler.NewBookingHandler(bookingSvc),
		Sessions:  handler.NewSessionHandler(sessionSvc),
		Tickets:   handler.NewTicketHandler(ticketSvc, cfg.WebhookSecret),
		JWTSecret: []byte(cfg.JWTSecret),
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if cfg.AMQPURL != "" {
		g.Go(func() error {
			return queue.NewConsumer(cfg.AMQPURL).Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("shutting down server…")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
