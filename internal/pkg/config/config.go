package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config carries every tunable of the catalog server. Secrets and expiry
// windows live here so rotating them is a configuration change, not a code
// change.
type Config struct {
	Port      int    `env:"PORT,       default=3000"`
	AdminAddr string `env:"ADMIN_ADDR, default=:8081"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL, default=10m"`

	// DeleteRequiresAdmin restricts DELETE to the ADMIN role; disable to let
	// any authenticated role delete.
	DeleteRequiresAdmin bool `env:"DELETE_REQUIRES_ADMIN, default=true"`

	CacheSize          int           `env:"CACHE_SIZE,           default=15"`
	CacheTTL           time.Duration `env:"CACHE_TTL,            default=90s"`
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL, default=1m"`

	HubBuffer int `env:"HUB_BUFFER, default=64"`

	// CSVPath, when set, is bulk-imported into the store before the server
	// starts accepting connections.
	CSVPath string `env:"CSV_PATH"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=funko_catalog"`
}

// RedisConfig enables the mutation relay when Addr is non-empty.
type RedisConfig struct {
	Addr    string `env:"REDIS_ADDR"`
	DB      int    `env:"REDIS_DB,      default=0"`
	Channel string `env:"REDIS_CHANNEL, default=funko:mutations"`
}

// Load reads configuration from environment variables and checks the fields
// that have no usable default.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.TLSCertFile == "" || cfg.TLSKeyFile == "" {
		return nil, errors.New("config: TLS_CERT_FILE and TLS_KEY_FILE are required")
	}
	if cfg.TokenSecret == "" {
		return nil, errors.New("config: TOKEN_SECRET is required")
	}
	return &cfg, nil
}
