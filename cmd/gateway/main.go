package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/minimart/backend/internal/adapter/handler"
	"github.com/minimart/backend/internal/config"
	"github.com/minimart/backend/internal/logger"
)

func main() {
	cfg, err := config.Load[config.Gateway]()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	gatewayHandler := handler.NewGatewayHandler(cfg.IdentityURL, zlog)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", gatewayHandler.Home)
	mux.HandleFunc("GET /health", gatewayHandler.HealthCheck)
	mux.HandleFunc("GET /users/{id}", gatewayHandler.GetUser)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		zlog.Info("gateway listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			zlog.Error("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	zlog.Info("stopped")
}
