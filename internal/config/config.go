package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	OpsHero   OpsHeroConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret           string
	AdminSessionMinutes int // admin sessions are short-lived
	KioskSessionMinutes int // checkout-kiosk sessions last for weeks
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
	LoginRPS     float64
	LoginBurst   int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// OpsHeroConfig holds the Operations Hero helpdesk account identifiers.
// Category/requester/workflow are fixed routing configuration, not logic.
type OpsHeroConfig struct {
	BaseURL           string
	AccountID         string
	APIKey            string
	ReportingCategory string
	Requester         string
	Workflow          string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	viper.SetDefault("ADMIN_SESSION_MINUTES", 30)
	viper.SetDefault("KIOSK_SESSION_MINUTES", 20160) // 14 days
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 100)
	viper.SetDefault("RATE_LIMIT_LOGIN_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_LOGIN_BURST", 5)
	viper.SetDefault("OPSHERO_BASE_URL", "https://api.operationshero.com/v1")

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Auth: AuthConfig{
			JWTSecret:           viper.GetString("JWT_SECRET"),
			AdminSessionMinutes: viper.GetInt("ADMIN_SESSION_MINUTES"),
			KioskSessionMinutes: viper.GetInt("KIOSK_SESSION_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
			LoginRPS:     viper.GetFloat64("RATE_LIMIT_LOGIN_RPS"),
			LoginBurst:   viper.GetInt("RATE_LIMIT_LOGIN_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		OpsHero: OpsHeroConfig{
			BaseURL:           viper.GetString("OPSHERO_BASE_URL"),
			AccountID:         viper.GetString("OPSHERO_ACCOUNT_ID"),
			APIKey:            viper.GetString("OPSHERO_API_KEY"),
			ReportingCategory: viper.GetString("OPSHERO_REPORTING_CATEGORY"),
			Requester:         viper.GetString("OPSHERO_REQUESTER"),
			Workflow:          viper.GetString("OPSHERO_WORKFLOW"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
