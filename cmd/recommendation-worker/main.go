// cmd/recommendation-worker/main.go
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dining-concierge/internal/bootstrap"
	"dining-concierge/internal/common/camunda"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/workers/recommendation"
)

func main() {
	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting recommendation worker...", zap.String("trigger", cfg.Worker.Trigger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := bootstrap.Connect(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("backend setup failed", zap.Error(err))
	}
	defer backends.Close()

	queue, err := backends.Queue(ctx)
	if err != nil {
		zapLog.Fatal("reservation queue unavailable", zap.Error(err))
	}
	search, err := backends.Search(ctx)
	if err != nil {
		zapLog.Fatal("search index unavailable", zap.Error(err))
	}
	store, err := backends.RestaurantStore(ctx)
	if err != nil {
		zapLog.Fatal("restaurant store unavailable", zap.Error(err))
	}

	handler, err := recommendation.NewHandler(recommendation.HandlerOptions{
		Config: &recommendation.Config{
			Recommendations:   cfg.Worker.Recommendations,
			SearchSize:        cfg.Worker.SearchSize,
			VisibilityTimeout: config.GetDuration(cfg.Queue.VisibilityTimeout),
			WaitTime:          config.GetDuration(cfg.Queue.WaitTime),
			Timeout:           config.GetDuration(cfg.Worker.Timeout),
			Subject:           cfg.AWS.SES.Subject,
		},
		Queue:  queue,
		Search: search,
		Store:  store,
		Email:  backends.EmailSender(),
		Logger: log,
	})
	if err != nil {
		zapLog.Fatal("failed to create recommendation handler", zap.Error(err))
	}

	metricsSrv := startMetricsServer(cfg.Server.MetricsPort, backends, zapLog)

	switch cfg.Worker.Trigger {
	case config.TriggerZeebe:
		runZeebe(ctx, cfg, handler, log, zapLog)
	default:
		runPoll(ctx, config.GetDuration(cfg.Worker.Interval), config.GetDuration(cfg.Worker.Timeout), handler, zapLog)
	}

	// --- Graceful Shutdown ---
	zapLog.Info("Shutdown signal received, stopping worker...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down metrics server", zap.Error(err))
	}

	zapLog.Info("Recommendation worker stopped gracefully")
}

// runPoll executes one run immediately and then on every tick until ctx is
// cancelled. A run in progress is allowed to finish.
func runPoll(ctx context.Context, interval, timeout time.Duration, handler *recommendation.Handler, zapLog *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		runOnce(timeout, handler, zapLog)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runOnce(timeout time.Duration, handler *recommendation.Handler, zapLog *zap.Logger) {
	runCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	output, err := handler.Execute(runCtx)
	if err != nil {
		zapLog.Error("recommendation run failed",
			zap.Error(err),
			zap.String("errorCode", string(errors.CodeOf(err))),
			zap.Bool("retryable", errors.IsRetryable(err)),
		)
		return
	}
	zapLog.Info("recommendation run finished",
		zap.String("runId", output.RunID),
		zap.String("status", output.Status),
	)
}

func runZeebe(ctx context.Context, cfg *config.Config, handler *recommendation.Handler, log logger.Logger, zapLog *zap.Logger) {
	var client *camunda.Client
	err := bootstrap.RetryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClient(cfg.Camunda)
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	jobWorker := camunda.NewWorker(client.GetClient(), camunda.WorkerOptions{
		JobType:        cfg.Camunda.JobType,
		Name:           cfg.Queue.Consumer,
		MaxJobsActive:  cfg.Camunda.MaxJobsActive,
		Timeout:        config.GetDuration(cfg.Camunda.Timeout),
		RequestTimeout: config.GetDuration(cfg.Camunda.RequestTimeout),
	}, handler, log)

	<-ctx.Done()

	jobWorker.Stop()
	if err := client.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
}

func startMetricsServer(port int, backends *bootstrap.Backends, zapLog *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := backends.Ready(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
