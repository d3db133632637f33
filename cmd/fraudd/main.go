package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/jayanth2212/AgriSure/internal/application/usecase"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/archive"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/cache"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/config"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/imagery"
	infrakafka "github.com/jayanth2212/AgriSure/internal/infrastructure/kafka"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/ledger"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/metrics"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/postgres"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/sink"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/static"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/weather"
	grpcpresentation "github.com/jayanth2212/AgriSure/internal/presentation/grpc"
	"github.com/jayanth2212/AgriSure/internal/presentation/rest"
	"github.com/jayanth2212/AgriSure/pkg/auth"
	"github.com/jayanth2212/AgriSure/pkg/events"
	pkgkafka "github.com/jayanth2212/AgriSure/pkg/kafka"
	"github.com/jayanth2212/AgriSure/pkg/observability"
	pkgpostgres "github.com/jayanth2212/AgriSure/pkg/postgres"
	"github.com/jayanth2212/AgriSure/pkg/tlsutil"
)

const serviceName = "fraud-service"

func main() {
	if err := run(); err != nil {
		slog.Error("fraud-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})
	logger.Info("starting fraud-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"environment", cfg.Environment,
	)

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
		SampleRatio: 1,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: serviceName,
		Registry:    registry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()
	observer, err := metrics.NewObserver(registry)
	if err != nil {
		return fmt.Errorf("failed to register fraud metrics: %w", err)
	}

	// Database.
	if err := pkgpostgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{URL: cfg.DatabaseURL})
	dbCancel()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	readiness := map[string]rest.Check{
		"database": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}

	// Providers, with the Redis cache in front when configured.
	var (
		weatherProvider   port.WeatherProvider   = static.NewWeather()
		satelliteProvider port.SatelliteProvider = static.NewSatellite()
	)
	if cfg.WeatherBaseURL != "" {
		weatherProvider = weather.NewClient(weather.Config{BaseURL: cfg.WeatherBaseURL, APIKey: cfg.WeatherAPIKey, Timeout: cfg.ProviderTimeout})
	} else {
		logger.Warn("WEATHER_BASE_URL not set, weather checks will fall back")
	}
	if cfg.ImageryBaseURL != "" {
		satelliteProvider = imagery.NewClient(imagery.Config{BaseURL: cfg.ImageryBaseURL, APIKey: cfg.ImageryAPIKey, Timeout: cfg.ProviderTimeout})
	} else {
		logger.Warn("IMAGERY_BASE_URL not set, satellite checks will fall back")
	}
	if cfg.RedisAddr != "" {
		redisClient, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		store := cache.NewRedisStore(redisClient)
		weatherProvider = cache.NewWeather(weatherProvider, store, cfg.RedisCacheTTL, logger)
		satelliteProvider = cache.NewSatellite(satelliteProvider, store, cfg.RedisCacheTTL, logger)
		readiness["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info("provider cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisCacheTTL)
	}

	// Infrastructure adapters.
	assessmentRepo := postgres.NewAssessmentRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	fieldRegistry := postgres.NewFieldRegistry(pool, logger)
	outbox := postgres.NewOutboxStore(pool)

	var reportSink port.ReportSink = postgres.NewReportStore(pool)
	if cfg.MinioEndpoint != "" {
		minioClient, err := archive.NewClient(archive.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return err
		}
		archiveSink := archive.NewReportSink(minioClient, cfg.MinioBucket, logger)
		if err := archiveSink.EnsureBucket(ctx); err != nil {
			return err
		}
		reportSink = sink.NewFanout(logger, reportSink, archiveSink)
		logger.Info("report archive enabled", "endpoint", cfg.MinioEndpoint, "bucket", cfg.MinioBucket)
	}

	// Domain service and use cases.
	engine := service.NewFraudEngine(service.EngineDeps{
		Weather:         weatherProvider,
		Satellite:       satelliteProvider,
		Geo:             fieldRegistry,
		Observer:        observer,
		Logger:          logger,
		ProviderTimeout: cfg.ProviderTimeout,
	})

	assessClaimUC := usecase.NewAssessClaim(usecase.AssessClaimDeps{
		Engine:    engine,
		Repo:      assessmentRepo,
		History:   historyRepo,
		Locations: fieldRegistry,
		Hasher:    ledger.NewKeccakHasher(),
		Sink:      reportSink,
		Publisher: outbox,
		Logger:    logger,
	})
	getAssessmentUC := usecase.NewGetAssessment(assessmentRepo)
	listFarmerUC := usecase.NewListFarmerAssessments(assessmentRepo)
	registerFieldUC := usecase.NewRegisterField(fieldRegistry)

	// Presentation.
	jwtService, err := newJWTService(cfg, logger)
	if err != nil {
		return err
	}

	grpcServer, err := grpcpresentation.NewServer(
		grpcpresentation.NewFraudServiceHandler(assessClaimUC, getAssessmentUC, listFarmerUC, logger),
		grpcpresentation.ServerConfig{
			Address:     cfg.GRPCAddress(),
			TLSCertFile: cfg.TLSCertFile,
			TLSKeyFile:  cfg.TLSKeyFile,
			Reflection:  cfg.GRPCReflection,
		},
		logger,
		jwtService,
	)
	if err != nil {
		return err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := rest.NewRouter(rest.RouterConfig{
		Assessments: rest.NewAssessmentHandler(assessClaimUC, getAssessmentUC, listFarmerUC, logger),
		Fields:      rest.NewFieldHandler(registerFieldUC, logger),
		Health:      rest.NewHealthHandler(logger, readiness),
		Metrics:     metricsHandler,
		JWT:         jwtService,
		Logger:      logger,
	})
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if cfg.TLSEnabled() {
		if httpServer.TLSConfig, err = tlsutil.ServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Start(); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		var err error
		if cfg.TLSEnabled() {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Messaging: the outbox relay and the claim intake consumer.
	if len(cfg.KafkaBrokers) > 0 {
		kafkaCfg := pkgkafka.Config{Brokers: cfg.KafkaBrokers, ConsumerGroup: cfg.KafkaConsumerGroup}
		producer, err := pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		defer producer.Close()

		publisher := infrakafka.NewPublisher(producer, cfg.KafkaEventsTopic, logger)
		relay := events.NewRelay(outbox, publisher.Deliver, cfg.OutboxInterval, cfg.OutboxBatchSize, logger)
		g.Go(func() error { return relay.Run(gctx) })

		consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.KafkaClaimsTopic,
			infrakafka.NewClaimsHandler(assessClaimUC, logger).Handle, logger)
		if err != nil {
			return fmt.Errorf("failed to create kafka consumer: %w", err)
		}
		defer consumer.Close()
		g.Go(func() error { return consumer.Start(gctx) })
	} else {
		logger.Warn("KAFKA_BROKERS not set, events stay in the outbox")
	}

	logger.Info("fraud-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
	)

	// Graceful shutdown once a signal arrives or any component fails.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down fraud-service")

		grpcServer.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("fraud-service stopped")
	return err
}

// newJWTService requires JWT_SECRET outside development. In development an
// ephemeral secret is generated, which leaves /v1 closed to outside tokens.
func newJWTService(cfg *config.Config, logger *slog.Logger) (*auth.JWTService, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logger.Warn("JWT_SECRET not set, using an ephemeral secret")
	}
	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: secret, Issuer: cfg.JWTIssuer, Expiration: time.Hour})
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt service: %w", err)
	}
	return svc, nil
}
