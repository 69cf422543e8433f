package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Face     FaceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int
	Env             string
	Timezone        string
	DefaultPassword string
	FrontendURL     string
}

// FaceConfig holds the embedding-extractor collaborator configuration.
// When ExtractorURL is empty the face verification capability is reported
// unavailable instead of being toggled through a mutable global.
type FaceConfig struct {
	ExtractorURL      string
	ModelName         string
	DistanceThreshold float64
	ExtractTimeout    time.Duration
}

// Enabled reports whether an extractor is configured for this deployment.
func (f FaceConfig) Enabled() bool {
	return f.ExtractorURL != ""
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timekeep"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		Timezone:        getEnv("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
		DefaultPassword: getEnv("DEFAULT_PASSWORD", "12345678"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Face verification configuration
	threshold, err := strconv.ParseFloat(getEnv("FACE_DISTANCE_THRESHOLD", "0.40"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_DISTANCE_THRESHOLD: %w", err)
	}
	extractTimeout, err := time.ParseDuration(getEnv("FACE_EXTRACT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_EXTRACT_TIMEOUT: %w", err)
	}

	config.Face = FaceConfig{
		ExtractorURL:      getEnv("FACE_EXTRACTOR_URL", ""),
		ModelName:         getEnv("FACE_MODEL_NAME", "VGG-Face"),
		DistanceThreshold: threshold,
		ExtractTimeout:    extractTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Face.DistanceThreshold <= 0 || c.Face.DistanceThreshold >= 2 {
		return fmt.Errorf("FACE_DISTANCE_THRESHOLD must be in (0, 2)")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
