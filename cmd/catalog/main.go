package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
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

	cfg, err := config.Load[config.Catalog]()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		zlog.Fatal("failed to connect mongo", zap.Error(err))
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		zlog.Fatal("failed to ping mongo", zap.Error(err))
	}
	zlog.Info("connected to mongo")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zlog.Fatal("failed to connect redis", zap.Error(err))
	}
	zlog.Info("connected to redis")

	// Writes go through the cache layer so stale entries are invalidated
	// for the cart service's read path.
	mongoAdapter := storage.NewMongoAdapter(mongoClient.Database(cfg.MongoDB))
	catalogStore := storage.NewCatalogCache(rdb, mongoAdapter, zlog)

	catalogService := service.NewCatalogService(catalogStore, zlog)
	catalogHandler := handler.NewCatalogHandler(catalogService, zlog)

	jwtManager := token.NewJWTManager(cfg.JWTSecret, 0)
	requireAuth := handler.RequireAuth(jwtManager, zlog)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("GET /products", requireAuth(http.HandlerFunc(catalogHandler.List)))
	mux.Handle("POST /products", requireAuth(http.HandlerFunc(catalogHandler.Create)))
	mux.Handle("PUT /products/{id}", requireAuth(http.HandlerFunc(catalogHandler.Update)))
	mux.Handle("DELETE /products/{id}", requireAuth(http.HandlerFunc(catalogHandler.Delete)))

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		zlog.Info("catalog service listening", zap.String("addr", cfg.HTTPAddr))
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

	rdb.Close()
	mongoClient.Disconnect(shutdownCtx)
	zlog.Info("stopped")
}
