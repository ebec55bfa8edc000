package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port         string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	TokenTTL     time.Duration
	GinMode      string
	AllowOrigins []string
}

// Load reads the environment, loading a .env file first if one exists.
// MONGODB_URI and JWT_SECRET are required; everything else has defaults.
func Load() (*Config, error) {
	// Best effort: a missing .env file is fine in production.
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		MongoURI:  os.Getenv("MONGODB_URI"),
		MongoDB:   getEnv("MONGODB_NAME", "isoko"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  7 * 24 * time.Hour,
		GinMode:   getEnv("GIN_MODE", "debug"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, errors.New("TOKEN_TTL must be a valid duration")
		}
		cfg.TokenTTL = d
	}

	origins := getEnv("ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
