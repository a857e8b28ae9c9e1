package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Bcrypt hash of the installation password; empty disables login.
	AuthPasswordHash string

	// Sync
	SyncInterval    time.Duration
	SyncConcurrency int
	RemoteSyncURL   string

	// Calendar conventions for period containment.
	Timezone         string
	FirstDayOfWeek   time.Weekday
	FirstMonthOfYear time.Month

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "coinkeep-backend")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("SYNC_INTERVAL", "5m")
	viper.SetDefault("SYNC_CONCURRENCY", 4)
	viper.SetDefault("REMOTE_SYNC_URL", "")
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("FIRST_DAY_OF_WEEK", "MONDAY")
	viper.SetDefault("FIRST_MONTH_OF_YEAR", 1)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AuthPasswordHash = viper.GetString("AUTH_PASSWORD_HASH")
	if cfg.AuthPasswordHash == "" {
		log.Println("Warning: AUTH_PASSWORD_HASH not set. Login endpoint is disabled.")
	}

	syncIntervalStr := viper.GetString("SYNC_INTERVAL")
	syncInterval, err := time.ParseDuration(syncIntervalStr)
	if err != nil {
		syncInterval = 5 * time.Minute
		log.Printf("Warning: Invalid value for SYNC_INTERVAL ('%s'). Defaulting to %s.\n", syncIntervalStr, syncInterval)
	}
	cfg.SyncInterval = syncInterval

	cfg.SyncConcurrency = viper.GetInt("SYNC_CONCURRENCY")
	if cfg.SyncConcurrency < 1 {
		cfg.SyncConcurrency = 1
	}
	cfg.RemoteSyncURL = viper.GetString("REMOTE_SYNC_URL")

	cfg.Timezone = viper.GetString("TIMEZONE")
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	cfg.FirstDayOfWeek, err = parseWeekday(viper.GetString("FIRST_DAY_OF_WEEK"))
	if err != nil {
		return nil, err
	}

	firstMonth := viper.GetInt("FIRST_MONTH_OF_YEAR")
	if firstMonth < 1 || firstMonth > 12 {
		return nil, fmt.Errorf("invalid FIRST_MONTH_OF_YEAR %d: must be 1..12", firstMonth)
	}
	cfg.FirstMonthOfYear = time.Month(firstMonth)

	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")

	return cfg, nil
}

// Location returns the configured timezone. LoadConfig has already
// validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToUpper(s) {
	case "SUNDAY":
		return time.Sunday, nil
	case "MONDAY":
		return time.Monday, nil
	case "TUESDAY":
		return time.Tuesday, nil
	case "WEDNESDAY":
		return time.Wednesday, nil
	case "THURSDAY":
		return time.Thursday, nil
	case "FRIDAY":
		return time.Friday, nil
	case "SATURDAY":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("invalid FIRST_DAY_OF_WEEK %q", s)
}
