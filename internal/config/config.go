package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pawtrails/pkg/logger"
)

type Config struct {
	HTTPPort    string
	Env         string
	CORSOrigins []string
	JWT         JWTConfig
	Neo4j       Neo4jConfig
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type Neo4jConfig struct {
	URI                string
	User               string
	Password           string
	Database           string
	MaxConnPoolSize    int
	MaxConnLifetime    time.Duration
	ConnAcquireTimeout time.Duration
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
		},
		Neo4j: Neo4jConfig{
			URI:                getEnv("NEO4J_URI", "bolt://localhost:7687"),
			User:               getEnv("NEO4J_USER", "neo4j"),
			Password:           getEnv("NEO4J_PASSWORD", "test"),
			Database:           getEnv("NEO4J_DATABASE", "neo4j"),
			MaxConnPoolSize:    getEnvInt("NEO4J_MAX_CONN_POOL_SIZE", 50),
			MaxConnLifetime:    getEnvDuration("NEO4J_MAX_CONN_LIFETIME", 100*time.Second),
			ConnAcquireTimeout: getEnvDuration("NEO4J_CONN_ACQUIRE_TIMEOUT", 10*time.Second),
		},
	}

	if cfg.JWT.Secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	return result
}
