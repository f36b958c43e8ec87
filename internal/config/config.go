package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process settings. Defaults match a local MongoDB with the
// dreamnotes database and collection.
type Config struct {
	Port           string
	MongoURI       string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Config{
		Port:       getEnv("PORT", "3000"),
		MongoURI:   getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:   getEnv("MONGODB_DATABASE", "dreamnotes"),
		Collection: getEnv("MONGODB_COLLECTION", "dreamnotes"),
	}

	timeout, err := time.ParseDuration(getEnv("CONNECT_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CONNECT_TIMEOUT: %w", err)
	}
	cfg.ConnectTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late, after connecting.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.MongoURI == "" {
		return fmt.Errorf("mongo URI is required")
	}
	if c.Database == "" || c.Collection == "" {
		return fmt.Errorf("database and collection names are required")
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got %s", c.ConnectTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
