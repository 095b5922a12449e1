package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	Port             string
	DBDriver         string // sqlite|postgres
	DBPath           string
	DatabaseURL      string
	JWTSecret        string `json:"-"`
	EnableDevLogin   bool
	PredictDelay     time.Duration
	OrderBannerDelay time.Duration
	CatalogPath      string
	LogLevel         string
	CORSOrigins      []string
}

// Load reads .env (if present) and the process environment.
func Load() AppConfig {
	envErr := godotenv.Load()

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	dur := func(k string, def time.Duration) time.Duration {
		if v := os.Getenv(k); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d >= 0 {
				return d
			}
		}
		return def
	}
	var origins []string
	for _, o := range strings.Split(get("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		DBDriver:         strings.ToLower(get("DB_DRIVER", "sqlite")),
		DBPath:           get("DB_PATH", "landlink.db"),
		DatabaseURL:      get("DATABASE_URL", ""),
		JWTSecret:        get("JWT_SECRET", ""),
		EnableDevLogin:   get("ENABLE_DEV_LOGIN", "false") == "true",
		PredictDelay:     dur("PREDICT_DELAY", 1500*time.Millisecond),
		OrderBannerDelay: dur("ORDER_BANNER_DELAY", 3*time.Second),
		CatalogPath:      get("STORE_CATALOG_PATH", ""),
		LogLevel:         strings.ToLower(get("LOG_LEVEL", "info")),
		CORSOrigins:      origins,
	}
	if envErr != nil {
		zap.L().Debug("[cfg] no .env file loaded", zap.Error(envErr))
	}
	return cfg
}

// Fields renders the config for a start-up log line without the JWT secret.
func (c AppConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("db_driver", c.DBDriver),
		zap.String("db_path", c.DBPath),
		zap.Bool("jwt_configured", c.JWTSecret != ""),
		zap.Bool("dev_login", c.EnableDevLogin),
		zap.Duration("predict_delay", c.PredictDelay),
		zap.Duration("order_banner_delay", c.OrderBannerDelay),
		zap.String("catalog_path", c.CatalogPath),
		zap.Strings("cors_origins", c.CORSOrigins),
	}
}
