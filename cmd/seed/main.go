// Seeds local stores for development: schema plus a demo admin, a demo user,
// a few catalog entries, and a cart that exercises the aggregation path.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/minimart/backend/internal/adapter/storage"
	"github.com/minimart/backend/internal/config"
	"github.com/minimart/backend/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(80) NOT NULL UNIQUE,
	email VARCHAR(120) NOT NULL,
	password_hash VARCHAR(128) NOT NULL,
	role VARCHAR(16) NOT NULL DEFAULT 'user',
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS cart_items (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	product_id VARCHAR(64) NOT NULL,
	quantity INT NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);`

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load[config.Cart]()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN+"&multiStatements=true")
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	log.Println("schema ready")

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect mongo: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	users := storage.NewMySQLAdapter(db)
	products := storage.NewMongoAdapter(mongoClient.Database(cfg.MongoDB))

	seedUser(ctx, users, "admin", "admin@minimart.local", "admin123", domain.RoleAdmin)
	aliceID := seedUser(ctx, users, "alice", "alice@minimart.local", "alice123", domain.RoleUser)

	widgetID, err := products.Insert(ctx, domain.CatalogEntry{Name: "Widget", Price: 9.99, Description: "A reliable widget"})
	if err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}
	gadgetID, err := products.Insert(ctx, domain.CatalogEntry{Name: "Gadget", Price: 24.50})
	if err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}
	log.Printf("seeded products: %s, %s", widgetID, gadgetID)

	for _, rec := range []domain.OwnershipRecord{
		{UserID: aliceID, ProductRef: widgetID, Quantity: 2},
		{UserID: aliceID, ProductRef: gadgetID, Quantity: 1},
	} {
		if _, err := users.AddOwnershipRecord(ctx, rec); err != nil {
			log.Fatalf("failed to seed cart item: %v", err)
		}
	}
	log.Println("seeded cart for alice")
}

func seedUser(ctx context.Context, store *storage.MySQLAdapter, username, email, password string, role domain.Role) int64 {
	existing, err := store.FindUserByUsername(ctx, username)
	if err != nil {
		log.Fatalf("failed to look up %s: %v", username, err)
	}
	if existing != nil {
		log.Printf("user %s already present", username)
		return existing.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	id, err := store.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", username, err)
	}

	log.Printf("seeded user %s", username)
	return id
}
