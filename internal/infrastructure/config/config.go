package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Signin  SigninConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,   default=24h"`
	BcryptCost   int           `env:"BCRYPT_COST,   default=15"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type SigninConfig struct {
	MaxAttempts int           `env:"SIGNIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"SIGNIN_WINDOW,       default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=helpdesk"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether the service runs with developer defaults
// (pretty logs, non-secure cookies allowed).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves the configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StoreConfig is the subset used by offline tools that only talk to MongoDB.
type StoreConfig struct {
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Mongo   MongoConfig
}

// LoadStore reads an optional .env file and resolves StoreConfig. It does not
// require JWT_SECRET.
func LoadStore(ctx context.Context, lookuper envconfig.Lookuper) (*StoreConfig, error) {
	_ = godotenv.Load()

	var cfg StoreConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
