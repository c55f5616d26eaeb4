package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	healthcheck "github.com/vladislavdragonenkov/burger-oms/internal/health"
	"github.com/vladislavdragonenkov/burger-oms/internal/metrics"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/catalog"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/idempotency"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/ordering"
	"github.com/vladislavdragonenkov/burger-oms/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/burger-oms/internal/version"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Run поднимает HTTP API, gRPC health, сервер метрик и фоновые воркеры
// и блокируется до отмены ctx или падения одного из серверов.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close()

	assemblerOpts := []ordering.Option{
		ordering.WithTimeline(deps.timelineRepo),
		ordering.WithMetrics(metrics.NewOrderMetrics()),
		ordering.WithLogger(logger.WithField("component", "ordering")),
	}

	// Без Kafka события в outbox не пишутся: публиковать их некому.
	// Ошибка подключения уже залогирована, сервис работает без событий.
	producer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(producer, logger)
	if producer != nil {
		assemblerOpts = append(assemblerOpts, ordering.WithOutbox(deps.outboxRepo))
	}
	assembler := ordering.NewAssembler(deps.productRepo, deps.orderRepo, assemblerOpts...)

	guard := idempotency.NewGuard(deps.idempotencyRepo, cfg.IdempotencyTTL, logger.WithField("component", "idempotency"))
	router := httpapi.NewRouter(assembler, catalog.NewService(deps.productRepo), httpapi.Config{
		Logger:         logger.WithField("component", "http"),
		Guard:          guard,
		RequestTimeout: cfg.RequestTimeout,
	})

	cleanup := idempotency.NewCleanupWorker(deps.idempotencyRepo,
		idempotency.WithLogger(logger.WithField("component", "idempotency-cleanup")),
		idempotency.WithInterval(cfg.IdempotencyCleanupInterval),
		idempotency.WithBatchSize(cfg.IdempotencyCleanupBatchSize),
	)
	stopCleanup := startBackground(ctx, cleanup.Run)
	defer stopCleanup()

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("storage", deps.storageChecker)
	if producer != nil {
		worker := newOutboxWorker(deps.outboxRepo, producer, cfg, logger)
		stopOutbox := startBackground(ctx, worker.Run)
		// Воркер останавливается раньше, чем закрывается producer.
		defer stopOutbox()
		healthHandler.RegisterChecker("outbox", healthcheck.NewOutboxChecker(deps.outboxRepo, cfg.OutboxMaxPending))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	defer shutdownHTTP(metricsSrv, logger)

	errCh := make(chan error, 2)

	httpLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen http %s: %w", cfg.HTTPAddr, err)
	}
	apiSrv := &http.Server{Handler: router, ReadHeaderTimeout: readHeaderTimeout}
	go func() {
		logger.Infof("HTTP API listening on %s", httpLis.Addr())
		if err := apiSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	defer shutdownHTTP(apiSrv, logger)

	grpcServer, healthServer, err := startGRPCServer(cfg.GRPCAddr, logger, errCh)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		stopGRPCServer(grpcServer, healthServer, logger)
		return ctx.Err()
	case err := <-errCh:
		stopGRPCServer(grpcServer, healthServer, logger)
		return err
	}
}

// startGRPCServer поднимает gRPC health и reflection для проб оркестратора.
// Пустой адрес отключает сервер.
func startGRPCServer(addr string, logger *log.Entry, errCh chan<- error) (*grpc.Server, *health.Server, error) {
	if addr == "" {
		return nil, nil, nil
	}

	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(grpcMetrics.StreamServerInterceptor()),
	)
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	grpcMetrics.InitializeMetrics(grpcServer)

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen grpc %s: %w", addr, err)
	}
	go func() {
		logger.Infof("gRPC health server listening on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	return grpcServer, healthServer, nil
}

func stopGRPCServer(grpcServer *grpc.Server, healthServer *health.Server, logger *log.Entry) {
	if grpcServer == nil {
		return
	}
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	stoppedCh := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedCh)
	}()
	select {
	case <-stoppedCh:
	case <-time.After(shutdownTimeout):
		logger.Warn("grpc graceful stop timed out, forcing stop")
		grpcServer.Stop()
	}
}

// startMetricsServer запускает HTTP-обработчики /metrics, /healthz, /readyz и /livez.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: readHeaderTimeout}
	go func() {
		logger.Infof("metrics available at %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http server shutdown with error")
	}
}
