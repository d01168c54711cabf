package shared

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	HTTPAddr           string `mapstructure:"HTTP_ADDR"`
	ManagementHTTPAddr string `mapstructure:"MANAGEMENT_HTTP_ADDR"`
	FrontendURL        string `mapstructure:"FRONTEND_URL"`
	RequestTimeoutSec  int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	RateLimitRPS       int    `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst     int    `mapstructure:"RATE_LIMIT_BURST"`

	SessionSecret       string `mapstructure:"SESSION_SECRET"`
	SessionCookieSecure bool   `mapstructure:"SESSION_COOKIE_SECURE"`

	MySQLDSN           string `mapstructure:"MYSQL_DSN"`
	DBMaxOpenConns     int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetimeS int    `mapstructure:"DB_CONN_MAX_LIFETIME_SECONDS"`
	AutoMigrate        bool   `mapstructure:"AUTO_MIGRATE"`

	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	RedisPass       string `mapstructure:"REDIS_PASSWORD"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`

	PricingVariableMarkup string `mapstructure:"PRICING_VARIABLE_MARKUP"`
	BookingVerifyPrice    bool   `mapstructure:"BOOKING_VERIFY_PRICE"`

	CatalogFeedURL string `mapstructure:"CATALOG_FEED_URL"`
	CatalogFeedKey string `mapstructure:"CATALOG_FEED_KEY"`
	CatalogFeedRPS int    `mapstructure:"CATALOG_FEED_RPS"`
	SyncWorkers    int    `mapstructure:"SYNC_WORKERS"`
}

var defaults = map[string]any{
	"APP_ENV":                      "prod",
	"LOG_LEVEL":                    "info",
	"HTTP_ADDR":                    ":5000",
	"MANAGEMENT_HTTP_ADDR":         ":5001",
	"FRONTEND_URL":                 "http://localhost:3000",
	"REQUEST_TIMEOUT_SECONDS":      15,
	"RATE_LIMIT_RPS":               10,
	"RATE_LIMIT_BURST":             20,
	"SESSION_SECRET":               "",
	"SESSION_COOKIE_SECURE":        false,
	"MYSQL_DSN":                    "root:root@tcp(localhost:3306)/resort?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
	"DB_MAX_OPEN_CONNS":            10,
	"DB_CONN_MAX_LIFETIME_SECONDS": 300,
	"AUTO_MIGRATE":                 false,
	"REDIS_ADDR":                   "localhost:6379",
	"REDIS_DB":                     0,
	"REDIS_PASSWORD":               "",
	"CACHE_TTL_SECONDS":            300,
	"PRICING_VARIABLE_MARKUP":      "1.2",
	"BOOKING_VERIFY_PRICE":         false,
	"CATALOG_FEED_URL":             "",
	"CATALOG_FEED_KEY":             "",
	"CATALOG_FEED_RPS":             5,
	"SYNC_WORKERS":                 8,
}

// Load reads an optional config.yaml (./ or ./config) overlaid by environment variables.
func Load() Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			log.Warn().Err(err).Msg("config file unreadable, using environment only")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatal().Err(err).Msg("config unmarshal failed")
	}
	if c.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET is empty; sessions will not survive a restart")
	}
	return c
}

func (c Config) CacheTTL() time.Duration { return time.Duration(c.CacheTTLSeconds) * time.Second }

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

func (c Config) DBConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeS) * time.Second
}

// VariableMarkup parses PRICING_VARIABLE_MARKUP; a zero result means "use the default".
func (c Config) VariableMarkup() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(c.PricingVariableMarkup))
	if err != nil {
		log.Warn().Str("value", c.PricingVariableMarkup).Msg("invalid PRICING_VARIABLE_MARKUP, using default")
		return decimal.Zero
	}
	return d
}

// AllowedOrigins splits FRONTEND_URL on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
