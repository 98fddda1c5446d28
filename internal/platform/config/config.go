package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	StorageDriver  string
	DatabaseURL    string
	DBMaxConns     int32
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string
	BoltPath       string

	Port            string
	IsProduction    bool
	LogLevel        string
	ShutdownTimeout time.Duration

	JWTSecret          string
	JWTIssuer          string
	CORSAllowedOrigins []string
	RateLimit          string
	RedisURL           string

	MetricsEnabled  bool
	PosthogAPIKey   string
	PosthogEndpoint string

	// Ledger rules
	BalanceTolerance  decimal.Decimal
	AllowPostedCancel bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("BOLT_PATH", "ledger.db")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "erp-ledger")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("LEDGER_BALANCE_TOLERANCE", "0.01")
	v.SetDefault("LEDGER_ALLOW_POSTED_CANCEL", true)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.StorageDriver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StoragePostgres && cfg.StorageDriver != StorageBolt {
		log.Printf("Warning: Invalid value for STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.DBMaxConns = v.GetInt32("DB_MAX_CONNS")
	if cfg.DBMaxConns <= 0 {
		log.Printf("Warning: Invalid value for DB_MAX_CONNS (%d). Defaulting to 10.\n", cfg.DBMaxConns)
		cfg.DBMaxConns = 10
	}

	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = v.GetBool("RUN_MIGRATIONS")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.BoltPath = v.GetString("BOLT_PATH")

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.LogLevel = strings.ToLower(v.GetString("LOG_LEVEL"))

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil || shutdown <= 0 {
		shutdown = 10 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdown)
	}
	cfg.ShutdownTimeout = shutdown

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	} else if cfg.JWTSecret == defaultJWTSecret && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET is the default insecure key in production.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.RedisURL = v.GetString("REDIS_URL")

	cfg.MetricsEnabled = v.GetBool("METRICS_ENABLED")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")

	tolStr := v.GetString("LEDGER_BALANCE_TOLERANCE")
	tol, err := decimal.NewFromString(tolStr)
	if err != nil || !tol.IsPositive() {
		tol = decimal.RequireFromString("0.01")
		log.Printf("Warning: Invalid value for LEDGER_BALANCE_TOLERANCE ('%s'). Defaulting to %s.\n", tolStr, tol)
	}
	cfg.BalanceTolerance = tol
	cfg.AllowPostedCancel = v.GetBool("LEDGER_ALLOW_POSTED_CANCEL")

	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
