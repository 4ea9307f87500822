// Package config loads server configuration from the environment so main
// stays lean. A .env file in the working directory is honored when present.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	Redis         RedisConfig
	KafkaBrokers  []string
	JWTSigningKey string
	SessionTTL    time.Duration
	ClientOrigin  string
}

// RedisConfig holds connection settings for the token revocation list.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Sessions live four days; the cookie max age tracks this value.
const defaultSessionTTL = 4 * 24 * time.Hour

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	// Best effort; absence of a .env file is not an error.
	_ = godotenv.Load()

	addr := os.Getenv("STACKIT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development fallback; must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = strings.Split(v, ",")
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis:         redisFromEnv(),
		KafkaBrokers:  brokers,
		JWTSigningKey: jwtSigningKey,
		SessionTTL:    defaultSessionTTL,
		ClientOrigin:  os.Getenv("CLIENT_URL"),
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
