package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lerex702/elorank/internal/board"
	"github.com/Lerex702/elorank/internal/changefeed"
	"github.com/Lerex702/elorank/internal/config"
	"github.com/Lerex702/elorank/internal/database"
	server "github.com/Lerex702/elorank/internal/http"
	"github.com/Lerex702/elorank/internal/leaderboard"
	"github.com/Lerex702/elorank/internal/metrics"
	"github.com/Lerex702/elorank/internal/notifier"
	"github.com/Lerex702/elorank/internal/notifier/slack"
	"github.com/Lerex702/elorank/internal/player"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dbTeardown, err := database.InitDB(cfg.DB.Driver, cfg.DSN())
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	instanceID := uuid.NewString()
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	store := player.New(db, database.Placeholder(cfg.DB.Driver))

	// Local subscribers hear every change through the broker. Remote feeds
	// carry changes between instances and are forwarded into it.
	broker := changefeed.NewBroker()
	publishers := changefeed.Multi{broker}
	var remotes []changefeed.Subscriber

	if cfg.DB.Driver == database.DriverPostgres {
		pg := changefeed.NewPGNotify(db, cfg.DB.URL, cfg.DB.NotifyChannel)
		publishers = append(publishers, pg)
		remotes = append(remotes, pg)
		log.Info("Postgres change notifications enabled", "channel", cfg.DB.NotifyChannel)
	}
	if cfg.PubSub.Enabled() {
		subscription := changefeed.SubscriptionID(cfg.PubSub.Subscription, instanceID)
		ps, err := changefeed.NewPubSub(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic, subscription)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer ps.Close()
		publishers = append(publishers, ps)
		remotes = append(remotes, ps)
		log.Info("Pubsub change feed enabled", "topic", cfg.PubSub.Topic, "subscription", subscription)
	}

	svc := leaderboard.New(store, publishers, metricsSvc, leaderboard.Options{
		DefaultLimit: cfg.Leaderboard.DefaultLimit,
		MaxLimit:     cfg.Leaderboard.MaxLimit,
		QueryTimeout: cfg.Leaderboard.QueryTimeout,
		Source:       instanceID,
	})
	liveBoard := board.New(svc, metricsSvc, board.Options{
		Limit:          cfg.Leaderboard.DefaultLimit,
		RefreshTimeout: cfg.Leaderboard.RefreshTimeout,
	})
	s := server.NewServer(svc, liveBoard, metricsHandler, cfg)

	g, gctx := errgroup.WithContext(ctx)

	events, err := broker.Subscribe(gctx)
	if err != nil {
		log.Fatalf("Failed to subscribe to change feed: %s", err)
	}
	g.Go(func() error {
		return liveBoard.Run(gctx, events)
	})
	for _, remote := range remotes {
		g.Go(func() error {
			return changefeed.Forward(gctx, remote, broker, instanceID)
		})
	}
	if cfg.Slack.NotificationsEnabled() {
		n := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
		g.Go(func() error {
			notifier.WatchLeader(gctx, liveBoard, n, false)
			return nil
		})
		log.Info("Slack leader announcements enabled", "channel", cfg.Slack.ChannelID)
	}

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
		// Requests inherit gctx so open event streams end on shutdown.
		BaseContext: func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		log.Info("Server started", "port", cfg.Port, "instance", instanceID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return err
		}
		log.Info("Server gracefully stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server error", "error", err)
	}
	log.Info("Server process shutting down")
}
