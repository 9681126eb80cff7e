package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Identity struct {
	Env             string        `env:"APP_ENV" envDefault:"dev"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8081"`
	MySQLDSN        string        `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/minimart?parseTime=true"`
	JWTSecret       string        `env:"JWT_SECRET" envDefault:"dev-only-secret"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	AllowRoleSignup bool          `env:"ALLOW_ROLE_SIGNUP" envDefault:"false"`
}

type Catalog struct {
	Env       string `env:"APP_ENV" envDefault:"dev"`
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8082"`
	MongoURI  string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB   string `env:"MONGO_DB" envDefault:"minimart"`
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-only-secret"`
}

type Cart struct {
	Env           string `env:"APP_ENV" envDefault:"dev"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8083"`
	MySQLDSN      string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/minimart?parseTime=true"`
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB       string `env:"MONGO_DB" envDefault:"minimart"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-only-secret"`
	MaxConcurrent int    `env:"CART_MAX_CONCURRENT" envDefault:"8"`
}

type Gateway struct {
	Env         string `env:"APP_ENV" envDefault:"dev"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	IdentityURL string `env:"IDENTITY_URL" envDefault:"http://localhost:8081"`
}

func Load[T any]() (T, error) {
	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
