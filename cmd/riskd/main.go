package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/churnwatch/risk-service/internal/application/usecase"
	"github.com/churnwatch/risk-service/internal/domain/port"
	"github.com/churnwatch/risk-service/internal/domain/service"
	"github.com/churnwatch/risk-service/internal/infrastructure/artifact"
	"github.com/churnwatch/risk-service/internal/infrastructure/config"
	"github.com/churnwatch/risk-service/internal/infrastructure/messaging"
	"github.com/churnwatch/risk-service/internal/infrastructure/postgres"
	grpcpresentation "github.com/churnwatch/risk-service/internal/presentation/grpc"
	"github.com/churnwatch/risk-service/internal/presentation/rest"
	"github.com/churnwatch/risk-service/pkg/auth"
	"github.com/churnwatch/risk-service/pkg/kafka"
	"github.com/churnwatch/risk-service/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "risk-service",
	})

	logger.Info("starting risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: "risk-service",
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Metrics endpoint and scoring instruments.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "risk-service",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	scoringMetrics := observability.NewScoringMetrics(prometheus.DefaultRegisterer)

	// Artifact source: the Postgres model registry when configured, the
	// on-disk bundle otherwise.
	var loader port.ArtifactLoader
	if cfg.RegistryURL != "" {
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dbCancel()

		pool, err := pgxpool.New(dbCtx, cfg.RegistryURL)
		if err != nil {
			logger.Error("failed to connect to model registry", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(dbCtx); err != nil {
			logger.Error("model registry ping failed", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to model registry")
		loader = postgres.NewModelRegistry(pool)
	} else {
		loader = artifact.NewFileLoader(cfg.ArtifactPath)
	}

	provider, err := artifact.NewProvider(ctx, loader, logger)
	if err != nil {
		logger.Error("failed to load model artifact", "error", err)
		os.Exit(1)
	}

	// Automatic reload on file change only makes sense for the file source.
	if cfg.WatchArtifact && cfg.RegistryURL == "" {
		watcher := artifact.NewWatcher(provider, cfg.ArtifactPath, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("artifact watcher stopped", "error", err)
			}
		}()
	}

	// Event publishing.
	producer := kafka.NewProducer(kafka.Config{Brokers: cfg.KafkaBrokers}, cfg.EventsTopic)
	defer producer.Close()
	eventPublisher := messaging.NewKafkaPublisher(producer, logger)

	// Wire the scoring pipeline.
	defaults, err := service.NewDefaultsTable(service.TelcoDefaults(), provider.Current().Columns())
	if err != nil {
		logger.Error("defaults table does not cover the model columns", "error", err)
		os.Exit(1)
	}
	estimator, err := service.NewCategoryRiskEstimator(
		service.TelcoCategorySpecs(), cfg.HighBillThreshold, logger,
	)
	if err != nil {
		logger.Error("failed to compile category rules", "error", err)
		os.Exit(1)
	}
	pipeline := service.NewScoringPipeline(
		service.NewFieldValidator(service.TelcoRuleSet()),
		defaults,
		service.NewCategoricalNormalizer(logger, scoringMetrics),
		service.NewFeatureAssembler(),
		estimator,
		service.NewRiskAggregator(),
		logger,
	)

	// Wire use cases.
	scoreCustomerUC := usecase.NewScoreCustomer(provider, eventPublisher, pipeline, scoringMetrics, logger)
	getModelInfoUC := usecase.NewGetModelInfo(provider)
	reloadModelUC := usecase.NewReloadModel(provider, logger)

	// Authentication.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: time.Hour,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(scoreCustomerUC, getModelInfoUC, reloadModelUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.TLSCertFile,
		TLSKeyFile:  cfg.TLSKeyFile,
	}, logger, jwtService)

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(provider, logger)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("risk-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"model_version", provider.Current().Version(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down risk-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("risk-service stopped")
}
