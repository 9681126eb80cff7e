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

	cfg, err := config.Load[config.Cart]()
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

	ownershipStore := storage.NewMySQLAdapter(db)
	mongoAdapter := storage.NewMongoAdapter(mongoClient.Database(cfg.MongoDB))
	catalogStore := storage.NewCatalogCache(rdb, mongoAdapter, zlog)

	cartService := service.NewCartService(ownershipStore, catalogStore, zlog, cfg.MaxConcurrent)
	cartHandler := handler.NewCartHandler(cartService, zlog)

	jwtManager := token.NewJWTManager(cfg.JWTSecret, 0)
	requireAuth := handler.RequireAuth(jwtManager, zlog)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("GET /cart", requireAuth(http.HandlerFunc(cartHandler.GetCart)))
	mux.Handle("POST /cart/items", requireAuth(http.HandlerFunc(cartHandler.AddItem)))
	mux.Handle("DELETE /cart/items/{id}", requireAuth(http.HandlerFunc(cartHandler.RemoveItem)))

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		zlog.Info("cart service listening", zap.String("addr", cfg.HTTPAddr))
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
	db.Close()
	zlog.Info("stopped")
}
