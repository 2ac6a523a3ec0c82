// cmd/concierge-api/main.go
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dining-concierge/internal/bootstrap"
	"dining-concierge/internal/bot/dialog"
	"dining-concierge/internal/bot/dispatch"
	"dining-concierge/internal/bot/forwarder"
	"dining-concierge/internal/bot/slotvalidation"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/observability"
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

	zapLog.Info("Starting concierge API...", zap.String("environment", cfg.App.Environment))

	obs := observability.New("concierge-api", log)
	defer obs.Shutdown()

	ctx := context.Background()

	backends, err := bootstrap.Connect(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("backend setup failed", zap.Error(err))
	}
	defer backends.Close()

	queue, err := backends.Queue(ctx)
	if err != nil {
		zapLog.Fatal("reservation queue unavailable", zap.Error(err))
	}

	validatorCfg := slotvalidation.DefaultConfig()
	validatorCfg.Location = cfg.Bot.Location()
	validator := slotvalidation.NewValidator(validatorCfg, slotvalidation.SystemClock, log)

	dialogCfg := dialog.DefaultConfig()
	for slot, prompt := range cfg.Bot.DefaultPrompts {
		dialogCfg.DefaultPrompts[slot] = prompt
	}
	if err := dialogCfg.Validate(); err != nil {
		zapLog.Fatal("invalid dialog config", zap.Error(err))
	}
	controller, err := dialog.NewController(dialogCfg, validator, queue, log)
	if err != nil {
		zapLog.Fatal("failed to build dialog controller", zap.Error(err))
	}
	dispatcher := dispatch.NewDispatcher(controller, log)

	fwdCfg := &forwarder.Config{UserID: cfg.Bot.UserID}
	if err := fwdCfg.Validate(); err != nil {
		zapLog.Fatal("invalid forwarder config", zap.Error(err))
	}
	fwd := forwarder.NewForwarder(fwdCfg, backends.DialogEngine(), log)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), obs.Middleware())

	v1 := router.Group("/v1")
	v1.POST("/chat", forwarder.HandleChat(fwd))
	v1.POST("/dialog/hook", dispatch.HandleDialogHook(dispatcher))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/ready", func(c *gin.Context) {
		if err := backends.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Concierge API stopped gracefully")
}
