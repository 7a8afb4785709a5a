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
	_ "time/tzdata"

	"standingorders/cmd"
	httpin "standingorders/internal/adapters/in/http"
	"standingorders/internal/adapters/out/postgres"
	"standingorders/internal/jobs"
	"standingorders/internal/pkg/clock"
	"standingorders/internal/pkg/logger"
	"standingorders/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "standing-orders",
		Level:       logger.ParseLevel(configs.LogLevel),
		Format:      configs.LogFormat,
	})

	location, err := clock.New(configs.TimeZone)
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	gormDB, err := postgres.Open(ctx, configs.DBOptions())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	if configs.DBAutoMigrate {
		if err := postgres.Migrate(ctx, sqlDB, "up"); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		location,
		location.Zone(),
		logg,
		metrics.NewJobMetrics(registry),
		metrics.NewScheduleMetrics(registry),
	)

	lockStore, closeRedis, err := redisLockStore(ctx, configs.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer closeRedis()

	jobManager, err := app.CreateJobManager(lockStore)
	if err != nil {
		log.Fatalf("jobs: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("jobs: %v", err)
	}
	defer jobManager.StopAll()

	router, err := httpin.NewRouter(ctx, app.CreateHTTPServer(), registry, logg)
	if err != nil {
		log.Fatalf("http: %v", err)
	}

	startWebServer(ctx, router, configs.HTTPPort, logg)
}

// redisLockStore returns a nil store when no Redis URL is configured.
func redisLockStore(ctx context.Context, url string) (jobs.LockStore, func(), error) {
	if url == "" {
		return nil, func() {}, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	return jobs.NewRedisStore(client), func() { _ = client.Close() }, nil
}

type webServer interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

func startWebServer(ctx context.Context, e webServer, port string, logg *logger.Logger) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()
	logg.Info(logg.WithField(ctx, "port", port), "http server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "http shutdown", err)
		}
	}
}
