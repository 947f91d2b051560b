package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Demo     DemoConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// DemoConfig holds demo-data generation configuration.
// UpgradeChance and PaidChance are probabilities in [0,1]; Seed of 0
// means derive one from the clock.
type DemoConfig struct {
	Enabled       bool
	ClearFirst    bool
	CustomerCount int
	UpgradeChance float64
	PaidChance    float64
	BatchSize     int
	BatchPauseMs  int
	Seed          int64
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Demo:     loadDemoConfig(appMode),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "kencana_crm"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadDemoConfig loads demo-data generation config.
// Generation is never enabled in prod regardless of the env value.
func loadDemoConfig(mode string) DemoConfig {
	enabled, _ := strconv.ParseBool(getEnv("DEMO_ENABLED", "false"))
	if mode == "prod" {
		enabled = false
	}

	clearFirst, _ := strconv.ParseBool(getEnv("DEMO_CLEAR_FIRST", "false"))
	customerCount, _ := strconv.Atoi(getEnv("DEMO_CUSTOMER_COUNT", "10"))
	upgradeChance, _ := strconv.ParseFloat(getEnv("DEMO_UPGRADE_CHANCE", "0.3"), 64)
	paidChance, _ := strconv.ParseFloat(getEnv("DEMO_PAID_CHANCE", "0.7"), 64)
	batchSize, _ := strconv.Atoi(getEnv("DEMO_BATCH_SIZE", "50"))
	batchPauseMs, _ := strconv.Atoi(getEnv("DEMO_BATCH_PAUSE_MS", "0"))
	seed, _ := strconv.ParseInt(getEnv("DEMO_SEED", "0"), 10, 64)

	if customerCount < 1 {
		customerCount = 10
	}
	if batchSize < 1 {
		batchSize = 50
	}

	return DemoConfig{
		Enabled:       enabled,
		ClearFirst:    clearFirst,
		CustomerCount: customerCount,
		UpgradeChance: upgradeChance,
		PaidChance:    paidChance,
		BatchSize:     batchSize,
		BatchPauseMs:  batchPauseMs,
		Seed:          seed,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://crm.kencana.co.id"
	}
	return origins
}
