package config

import (
	"fmt"
	"time"

	"arena-booking/internal/domain/revenue"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Ledger      LedgerConfig
	Settlement  SettlementConfig
	Outbox      OutboxConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	AMQP        AMQPConfig
	Idempotency IdempotencyConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// DBConfig describes the pool. LockTimeout bounds how long a transaction
// waits on a wallet or reservation row lock before failing.
type DBConfig struct {
	Host             string        `envconfig:"DB_HOST" default:"localhost"`
	Port             string        `envconfig:"DB_PORT" default:"5432"`
	User             string        `envconfig:"DB_USER" required:"true"`
	Password         string        `envconfig:"DB_PASSWORD" required:"true"`
	DBName           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode          string        `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone         string        `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns         int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns         int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	LockTimeout      time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"5s"`
	StatementTimeout time.Duration `envconfig:"DB_STATEMENT_TIMEOUT" default:"30s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-RateLimit-Limit,X-RateLimit-Remaining"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig describes the tokens the identity provider signs. Duration only
// matters for tokens minted locally.
type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string        `envconfig:"JWT_ISSUER" default:"arena-booking"`
	Leeway   time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

// LedgerConfig holds the money-movement settings. FeeRate is validated while
// decoding, so an out-of-range value stops the process at startup.
type LedgerConfig struct {
	FeeRate           revenue.FeeRate `envconfig:"ADMIN_FEE_RATE" default:"0.1"`
	PlatformAccountID uuid.UUID       `envconfig:"PLATFORM_ACCOUNT_ID" required:"true"`
}

type SettlementConfig struct {
	PollInterval time.Duration `envconfig:"SETTLEMENT_POLL_INTERVAL" default:"30s"`
	BatchSize    int32         `envconfig:"SETTLEMENT_BATCH_SIZE" default:"20"`
	RetryBackoff time.Duration `envconfig:"SETTLEMENT_RETRY_BACKOFF" default:"10m"`
	MaxAttempts  int32         `envconfig:"SETTLEMENT_MAX_ATTEMPTS" default:"12"`
	LeaseTimeout time.Duration `envconfig:"SETTLEMENT_LEASE_TIMEOUT" default:"5m"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts  int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"20"`
}

type IdempotencyConfig struct {
	SweepInterval time.Duration `envconfig:"IDEMPOTENCY_SWEEP_INTERVAL" default:"1h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// RateLimitConfig drives the Redis token bucket. KeyStrategy is one of ip,
// user, route, ip_user, ip_route, user_route or ip_user_route.
type RateLimitConfig struct {
	Enabled        bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Capacity       int           `envconfig:"RATE_LIMIT_CAPACITY" default:"60"`
	RefillTokens   int           `envconfig:"RATE_LIMIT_REFILL_TOKENS" default:"1"`
	RefillInterval time.Duration `envconfig:"RATE_LIMIT_REFILL_INTERVAL" default:"1s"`
	TTL            time.Duration `envconfig:"RATE_LIMIT_TTL" default:"10m"`
	KeyStrategy    string        `envconfig:"RATE_LIMIT_KEY_STRATEGY" default:"ip_user_route"`
	Prefix         string        `envconfig:"RATE_LIMIT_PREFIX" default:"rl"`
}

// AMQPConfig configures the outbox relay. An empty URL falls back to the log publisher.
type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL" default:""`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"arena.events"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *RateLimitConfig) normalize() {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Ledger.PlatformAccountID == uuid.Nil {
		return Config{}, fmt.Errorf("PLATFORM_ACCOUNT_ID must not be the nil uuid")
	}
	cfg.RateLimit.normalize()
	return cfg, nil
}

// LoadDBConfig reads only the database section, for tools such as the
// migrator that must not require the API secrets.
func LoadDBConfig() (DBConfig, error) {
	var cfg DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return DBConfig{}, fmt.Errorf("failed to process db env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Issuer:   "arena-booking",
			Duration: time.Hour,
		},
		Ledger: LedgerConfig{
			FeeRate:           revenue.MustFeeRate("0.1"),
			PlatformAccountID: uuid.MustParse("00000000-0000-0000-0000-00000000a0a0"),
		},
		Settlement: SettlementConfig{
			PollInterval: time.Second,
			BatchSize:    10,
			RetryBackoff: 10 * time.Minute,
			MaxAttempts:  3,
			LeaseTimeout: time.Minute,
		},
		Outbox: OutboxConfig{
			PollInterval: time.Second,
			BatchSize:    10,
			MaxAttempts:  3,
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
		},
		Idempotency: IdempotencyConfig{
			SweepInterval: time.Minute,
		},
	}
}
