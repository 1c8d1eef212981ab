package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ferryops/internal/adapters/out/kafka"
	"ferryops/internal/adapters/out/postgres"
	redisadapter "ferryops/internal/adapters/out/redis"
	"ferryops/internal/core/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	kafkaRetries    = 3
	shutdownTimeout = 10 * time.Second
)

// Serve runs the service until ctx is cancelled or a component fails.
func Serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	gormDB, err := postgres.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	readDB, err := postgres.OpenReader(cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open read pool: %w", err)
	}
	defer readDB.Close()

	var listeners []ports.CommitListener
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewSyncProducer(cfg.KafkaBrokers, kafkaRetries)
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		publisher := kafka.NewPublisher(producer, kafka.Topics{
			OrderChanged:   cfg.KafkaOrderChangedTopic,
			BookingChanged: cfg.KafkaBookingChangedTopic,
		}, logger)
		defer publisher.Close()
		listeners = append(listeners, publisher)
		logger.Info("publishing domain events", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	root := NewCompositionRoot(cfg, gormDB, readDB, logger, listeners...)
	g, gctx := errgroup.WithContext(ctx)

	if cfg.RedisAddr != "" {
		client, err := redisadapter.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer client.Close()

		relay := redisadapter.NewChatRelay(client, redisadapter.DefaultChatChannel, root.Hub(), logger)
		ps, err := relay.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to chat channel: %w", err)
		}

		root.UseChatBroadcaster(relay)
		g.Go(func() error { return relay.Forward(gctx, ps) })
		logger.Info("chat fan-out through redis", zap.String("addr", cfg.RedisAddr))
	}

	e, err := root.NewRouter(ctx)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	jobManager := root.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
