package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload" // loads .env into the process env when present
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "TRAVEL_"

type Config struct {
	AppEnv         string        `koanf:"app_env" validate:"required"`
	HTTPAddr       string        `koanf:"http_addr" validate:"required"`
	MetricsAddr    string        `koanf:"metrics_addr"`
	LogLevel       string        `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFile        string        `koanf:"log_file"`
	CatalogSource  string        `koanf:"catalog_source" validate:"oneof=embedded file mysql"`
	CatalogFile    string        `koanf:"catalog_file" validate:"required_if=CatalogSource file"`
	MySQLDSN       string        `koanf:"mysql_dsn" validate:"required_if=CatalogSource mysql"`
	RedisAddr      string        `koanf:"redis_addr"`
	RedisPass      string        `koanf:"redis_password"`
	RedisDB        int           `koanf:"redis_db" validate:"gte=0"`
	RateLimit      string        `koanf:"rate_limit" validate:"required"`
	MaxRPS         int           `koanf:"max_rps" validate:"gte=0"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
	SeedWorkers    int           `koanf:"seed_workers" validate:"gte=1"`
}

func Default() Config {
	return Config{
		AppEnv:         "prod",
		HTTPAddr:       ":8080",
		LogLevel:       "info",
		CatalogSource:  "embedded",
		MySQLDSN:       "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		RateLimit:      "120-M",
		MaxRPS:         200,
		RequestTimeout: 15 * time.Second,
		SeedWorkers:    4,
	}
}

// Load overlays TRAVEL_* environment variables on Default and validates
// the result. TRAVEL_HTTP_ADDR maps to http_addr, and so on.
func Load() (Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	c := Default()
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.CatalogSource = strings.ToLower(c.CatalogSource)

	if err := validator.New().Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
