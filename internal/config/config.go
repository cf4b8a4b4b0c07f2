package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token strategies accepted by AUTH_STRATEGY.
const (
	AuthStrategyJWT  = "jwt"
	AuthStrategyHMAC = "hmac"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	AuthSecret      string
	AuthStrategy    string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration

	AdminLogin    string
	AdminPassword string

	NotifyOnDeliveryUpdate bool

	KafkaBrokers     []string
	OrderEventsTopic string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxWorkers      int
	OutboxMaxAttempts  int

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel string
	AppEnv   string
}

const (
	defaultRunAddress         = ":8080"
	defaultAuthSecret         = "change-me-in-production"
	defaultTokenTTL           = 24 * time.Hour
	defaultShutdownTimeout    = 10 * time.Second
	defaultOrderEventsTopic   = "webstudio.order-events"
	defaultOutboxPollInterval = 2 * time.Second
	defaultOutboxBatchSize    = 32
	defaultOutboxWorkers      = 2
	defaultOutboxMaxAttempts  = 5
	defaultRateLimitRPS       = 10
	defaultRateLimitBurst     = 20
	defaultLogLevel           = "info"
	defaultAppEnv             = "production"
)

// Load parses configuration from flags and environment variables.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		AuthSecret:             getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AuthStrategy:           getString(lookup, "AUTH_STRATEGY", AuthStrategyJWT),
		AdminLogin:             getString(lookup, "ADMIN_LOGIN", ""),
		AdminPassword:          getString(lookup, "ADMIN_PASSWORD", ""),
		NotifyOnDeliveryUpdate: getBool(lookup, "NOTIFY_ON_DELIVERY_UPDATE", false),
		KafkaBrokers:           splitList(getString(lookup, "KAFKA_BROKERS", "")),
		OrderEventsTopic:       getString(lookup, "KAFKA_ORDER_EVENTS_TOPIC", defaultOrderEventsTopic),
		OutboxBatchSize:        getInt(lookup, "OUTBOX_BATCH_SIZE", defaultOutboxBatchSize),
		OutboxWorkers:          getInt(lookup, "OUTBOX_WORKERS", defaultOutboxWorkers),
		OutboxMaxAttempts:      getInt(lookup, "OUTBOX_MAX_ATTEMPTS", defaultOutboxMaxAttempts),
		RateLimitRPS:           getFloat(lookup, "RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:         getInt(lookup, "RATE_LIMIT_BURST", defaultRateLimitBurst),
		LogLevel:               getString(lookup, "LOG_LEVEL", defaultLogLevel),
		AppEnv:                 getString(lookup, "APP_ENV", defaultAppEnv),
	}

	fs := flag.NewFlagSet("webstudio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = getString(lookup, "TOKEN_TTL", defaultTokenTTL.String())
		shutdownTimeoutStr = getString(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())
		pollIntervalStr    = getString(lookup, "OUTBOX_POLL_INTERVAL", defaultOutboxPollInterval.String())
		brokersStr         = strings.Join(cfg.KafkaBrokers, ",")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token format: jwt or hmac")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.NotifyOnDeliveryUpdate, "notify-delivery", cfg.NotifyOnDeliveryUpdate, "Notify owners when delivery metadata changes")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers")
	fs.StringVar(&cfg.OrderEventsTopic, "kafka-topic", cfg.OrderEventsTopic, "Topic for order events")
	fs.StringVar(&pollIntervalStr, "outbox-poll-interval", pollIntervalStr, "Interval between outbox polls")
	fs.IntVar(&cfg.OutboxBatchSize, "outbox-batch", cfg.OutboxBatchSize, "Maximum events per outbox batch")
	fs.IntVar(&cfg.OutboxWorkers, "outbox-workers", cfg.OutboxWorkers, "Number of concurrent outbox workers")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.OutboxPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid outbox poll interval: %w", err)
	}

	cfg.KafkaBrokers = splitList(brokersStr)

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	cfg.AuthStrategy = strings.ToLower(cfg.AuthStrategy)
	if cfg.AuthStrategy != AuthStrategyJWT && cfg.AuthStrategy != AuthStrategyHMAC {
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.OutboxPollInterval <= 0 {
		cfg.OutboxPollInterval = defaultOutboxPollInterval
	}

	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = defaultOutboxBatchSize
	}

	if cfg.OutboxWorkers <= 0 {
		cfg.OutboxWorkers = defaultOutboxWorkers
	}

	if cfg.OutboxMaxAttempts <= 0 {
		cfg.OutboxMaxAttempts = defaultOutboxMaxAttempts
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateLimitRPS
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if (cfg.AdminLogin == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("admin login and password must be provided together")
	}

	return cfg, nil
}

// KafkaEnabled reports whether order events are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
