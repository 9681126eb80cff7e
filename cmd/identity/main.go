package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/minimart/backend/internal/adapter/handler"
	"github.com/minimart/backend/internal/adapter/storage"
	"github.com/minimart/backend/internal/adapter/token"
	"github.com/minimart/backend/internal/config"
	"github.com/minimart/backend/internal/core/service"
	"github.com/minimart/backend/internal/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load[config.Identity]()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		zlog.Fatal("failed to connect mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		zlog.Fatal("failed to ping mysql", zap.Error(err))
	}
	zlog.Info("connected to mysql")

	store := storage.NewMySQLAdapter(db)
	jwtManager := token.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	identityService := service.NewIdentityService(store, jwtManager, zlog, cfg.AllowRoleSignup)
	identityHandler := handler.NewIdentityHandler(identityService, zlog)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("POST /register", identityHandler.Register)
	mux.HandleFunc("POST /login", identityHandler.Login)
	mux.HandleFunc("GET /users/{id}", identityHandler.GetUser)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		zlog.Info("identity service listening", zap.String("addr", cfg.HTTPAddr))
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

	db.Close()
	zlog.Info("stopped")
}
