package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string `mapstructure:"REFRESH_TOKEN_COOKIE_PATH"`

	// Overdue sweep
	OverdueSweepSchedule string // cron spec for the nightly status sweep
	DefaultAfterDays     int    // days past maturity before a loan is defaulted
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
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "loan-management-app")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("OVERDUE_SWEEP_SCHEDULE", "0 1 * * *")
	viper.SetDefault("DEFAULT_AFTER_DAYS", 90)

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

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "loan-management-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	refreshTokenExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshTokenExpiryDuration, err := time.ParseDuration(refreshTokenExpiryStr)
	if err != nil {
		refreshTokenExpiryDuration = time.Hour * 24 * 7
		if refreshTokenExpiryStr != "" {
			log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshTokenExpiryStr, refreshTokenExpiryDuration.String())
		} else {
			log.Printf("Warning: REFRESH_TOKEN_EXPIRY_DURATION not set. Defaulting to %s.\n", refreshTokenExpiryDuration.String())
		}
	}

	refreshTokenCookieName := viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	if refreshTokenCookieName == "" {
		refreshTokenCookieName = "rtid"
		log.Printf("Warning: REFRESH_TOKEN_COOKIE_NAME not set. Defaulting to %s.\n", refreshTokenCookieName)
	}

	refreshTokenCookiePath := viper.GetString("REFRESH_TOKEN_COOKIE_PATH")
	if refreshTokenCookiePath == "" {
		refreshTokenCookiePath = "/api/v1/auth"
		log.Printf("Warning: REFRESH_TOKEN_COOKIE_PATH not set. Defaulting to %s.\n", refreshTokenCookiePath)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.RefreshTokenExpiryDuration = refreshTokenExpiryDuration
	cfg.RefreshTokenCookieName = refreshTokenCookieName
	cfg.RefreshTokenCookiePath = refreshTokenCookiePath
	cfg.OverdueSweepSchedule = viper.GetString("OVERDUE_SWEEP_SCHEDULE")
	cfg.DefaultAfterDays = viper.GetInt("DEFAULT_AFTER_DAYS")
	if cfg.DefaultAfterDays <= 0 {
		cfg.DefaultAfterDays = 90
		log.Printf("Warning: DEFAULT_AFTER_DAYS must be positive. Defaulting to %d.\n", cfg.DefaultAfterDays)
	}

	return cfg, nil
}
