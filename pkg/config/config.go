package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// CORSAllowedOrigins is the explicit origin allowlist used in production.
	CORSAllowedOrigins []string

	// UploadRateLimit caps upload submissions per IP, in ulule/limiter
	// formatted notation (e.g. "10-M" for ten per minute).
	UploadRateLimit string

	// Ingestion pipeline tuning.
	ParserMaxRows          int
	MatcherAcceptThreshold float64

	// Stock thresholds applied to items created on first purchase.
	DefaultMinStockLevel int64
	DefaultMaxStockLevel int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("UPLOAD_RATE_LIMIT", "10-M")
	viper.SetDefault("PARSER_MAX_ROWS", 50000)
	viper.SetDefault("MATCHER_ACCEPT_THRESHOLD", 0.75)
	viper.SetDefault("DEFAULT_MIN_STOCK_LEVEL", 10)
	viper.SetDefault("DEFAULT_MAX_STOCK_LEVEL", 1000)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if origins := strings.TrimSpace(viper.GetString("CORS_ALLOWED_ORIGINS")); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	}

	cfg.UploadRateLimit = viper.GetString("UPLOAD_RATE_LIMIT")

	cfg.ParserMaxRows = viper.GetInt("PARSER_MAX_ROWS")
	cfg.MatcherAcceptThreshold = viper.GetFloat64("MATCHER_ACCEPT_THRESHOLD")
	if cfg.MatcherAcceptThreshold <= 0 || cfg.MatcherAcceptThreshold > 1 {
		log.Printf("Warning: Invalid MATCHER_ACCEPT_THRESHOLD (%v). Defaulting to 0.75.\n", cfg.MatcherAcceptThreshold)
		cfg.MatcherAcceptThreshold = 0.75
	}

	cfg.DefaultMinStockLevel = viper.GetInt64("DEFAULT_MIN_STOCK_LEVEL")
	cfg.DefaultMaxStockLevel = viper.GetInt64("DEFAULT_MAX_STOCK_LEVEL")

	return cfg, nil
}
