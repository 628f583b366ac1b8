package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Cart     CartStoreConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SAHAJ_APP_ENV" required:"true"`
	Port         string `envconfig:"SAHAJ_APP_PORT" required:"true"`
	TerminalID   string `envconfig:"SAHAJ_TERMINAL_ID" default:"counter-1"`
	LogLevel     string `envconfig:"SAHAJ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SAHAJ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the GST billing backend this gateway fronts.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"SAHAJ_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"SAHAJ_UPSTREAM_TIMEOUT" default:"5s"`
}

// CartStoreConfig selects where the terminal's cart snapshot lives.
type CartStoreConfig struct {
	Backend    string `envconfig:"SAHAJ_CART_STORE" default:"sqlite"`
	SQLitePath string `envconfig:"SAHAJ_CART_SQLITE_PATH" default:"sahajbill-cart.db"`
}

func (c CartStoreConfig) UseRedis() bool {
	return strings.EqualFold(c.Backend, CartStoreRedis)
}

func (c *CartStoreConfig) validate() error {
	backend := strings.ToLower(strings.TrimSpace(c.Backend))
	switch backend {
	case CartStoreSQLite, CartStoreRedis:
		c.Backend = backend
		return nil
	}
	return fmt.Errorf("unsupported cart store backend %q", c.Backend)
}

type RedisConfig struct {
	URL          string        `envconfig:"SAHAJ_REDIS_URL"`
	Address      string        `envconfig:"SAHAJ_REDIS_ADDR"`
	Password     string        `envconfig:"SAHAJ_REDIS_PASSWORD"`
	DB           int           `envconfig:"SAHAJ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SAHAJ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SAHAJ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SAHAJ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SAHAJ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SAHAJ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"SAHAJ_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"SAHAJ_JWT_ISSUER" required:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SAHAJ_CORS_ORIGINS" default:"http://localhost:3000"`
}
