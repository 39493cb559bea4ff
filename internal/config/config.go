// Package config loads runtime settings from flags, the environment and an
// optional .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/database"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port     string `long:"port" env:"PORT" default:"8080" description:"HTTP listen port"`
	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"logrus level"`
	Migrate  bool   `long:"migrate" description:"apply the database schema before serving"`

	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"postgres"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"postgres"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"booking"`
	DBSSLMode  string `long:"db-sslmode" env:"DB_SSLMODE" default:"disable"`

	JWTSecret     string `long:"jwt-secret" env:"JWT_SECRET" description:"HMAC key for access tokens"`
	WebhookSecret string `long:"webhook-secret" env:"WEBHOOK_SECRET" description:"shared secret expected in X-Webhook-Secret"`

	RedisAddr       string        `long:"redis-addr" env:"REDIS_ADDR" description:"session cache, disabled when empty"`
	SessionCacheTTL time.Duration `long:"session-cache-ttl" env:"SESSION_CACHE_TTL" default:"30s"`

	AMQPURL string `long:"amqp-url" env:"AMQP_URL" description:"booking notifications, disabled when empty"`

	SessionCancelPolicy string `long:"session-cancel-policy" env:"SESSION_CANCEL_POLICY" default:"keep" choice:"keep" choice:"refund"`
}

// Load parses args (without the program name) into a Config.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

// Database returns the PostgreSQL connection settings.
func (c Config) Database() database.Config {
	return database.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}
