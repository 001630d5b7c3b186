package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-codex/internal/config"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	codexv1alpha1 "github.com/KirkDiggler/rpg-codex/internal/handlers/codex/v1alpha1"
	"github.com/KirkDiggler/rpg-codex/internal/metrics"
	"github.com/KirkDiggler/rpg-codex/internal/orchestrators/codex"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-codex/internal/redis"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/hero_inventory"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/profile"
	"github.com/KirkDiggler/rpg-codex/internal/services/profileview"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the codex gRPC server with the local store, the optional remote store and the metrics endpoint.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().Int("port", 50051, "gRPC server port")
	serverCmd.Flags().Int("metrics-port", 9090, "Prometheus metrics port, 0 disables")
	serverCmd.Flags().String("storage-path", "codex.db", "SQLite database file")
	serverCmd.Flags().String("redis-endpoint", "", "Remote store Redis endpoint, empty runs local only")
	serverCmd.Flags().Bool("ensure-main-hand-weapon", false, "Give prepared heroes their class weapon when they lack one")
	serverCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

func loadServerConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	bindings := map[string]string{
		"server.port":                   "port",
		"server.metrics_port":           "metrics-port",
		"storage.path":                  "storage-path",
		"redis.endpoint":                "redis-endpoint",
		"codex.ensure_main_hand_weapon": "ensure-main-hand-weapon",
		"log.level":                     "log-level",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, errors.Wrapf(err, "failed to bind flag %s", flag)
		}
	}
	return config.Load(v, configPath)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServerConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	db, err := profile.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer closeDB(db)

	sqliteRepo, err := profile.NewSQLite(&profile.SQLiteConfig{DB: db})
	if err != nil {
		return fmt.Errorf("failed to create profile repository: %w", err)
	}
	profileRepo, err := profile.NewCached(&profile.CachedConfig{
		Repository: sqliteRepo,
		Size:       cfg.Storage.CacheSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create profile cache: %w", err)
	}

	var remoteRepo hero_inventory.Repository
	if cfg.RemoteEnabled() {
		redisClient, err := redis.NewClient(cfg.Redis.Endpoint, &redis.Options{
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
		})
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		remoteRepo, err = hero_inventory.NewRedis(&hero_inventory.RedisConfig{Client: redisClient})
		if err != nil {
			return fmt.Errorf("failed to create remote repository: %w", err)
		}
	} else {
		slog.Warn("No remote store configured, running local only")
	}

	bus := events.NewBus()
	collector := metrics.NewEventMetricsCollector()
	collector.Register(bus)
	defer collector.Unregister(bus)

	codexService, err := codex.NewOrchestrator(&codex.Config{
		ProfileRepo:          profileRepo,
		RemoteRepo:           remoteRepo,
		EventBus:             bus,
		IDGenerator:          idgen.NewUUID("op"),
		Clock:                clock.New(),
		Collection:           cfg.Remote.Collection,
		RemoteTimeout:        cfg.Remote.Timeout,
		EnsureMainHandWeapon: cfg.Codex.EnsureMainHandWeapon,
	})
	if err != nil {
		return fmt.Errorf("failed to create codex orchestrator: %w", err)
	}

	if _, err := codexService.SeedReferenceData(ctx, &codex.SeedReferenceDataInput{}); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	presenter, err := profileview.New(&profileview.Config{
		Service:  codexService,
		EventBus: bus,
	})
	if err != nil {
		return fmt.Errorf("failed to create profile presenter: %w", err)
	}
	defer presenter.Close()

	codexHandler, err := codexv1alpha1.NewHandler(&codexv1alpha1.HandlerConfig{
		Presenter: presenter,
	})
	if err != nil {
		return fmt.Errorf("failed to create codex handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	codexv1alpha1.RegisterCodexServiceServer(srv, codexHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(codexv1alpha1.CodexService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Server.Port)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.Server.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("Metrics server starting", "port", cfg.Server.MetricsPort)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("failed to serve metrics: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		healthServer.Shutdown()
		if metricsServer != nil {
			_ = metricsServer.Shutdown(shutdownCtx)
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("Failed to close profile database", "error", err)
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
