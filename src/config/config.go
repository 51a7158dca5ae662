package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"spendbook-server/src/auth"
)

type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    auth.DefaultTokenTTL,
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if v := getEnv("TOKEN_TTL_MINUTES", ""); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			log.Fatalf("invalid TOKEN_TTL_MINUTES: %q", v)
		}
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
