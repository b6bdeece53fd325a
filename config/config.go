package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	Env       string // development|production
	DBPath    string
	ClientURL string

	JWTSecret string
	TokenTTL  time.Duration

	// Rate limit on /api/*
	RateWindow time.Duration
	RateMax    int

	// Support-ticket mail alerts
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	AdminEmail string

	// Hosts the subsidy importer may fetch from
	SubsidyAllowedDomains []string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}

	var domains []string
	for _, h := range strings.Split(get("SUBSIDY_ALLOWED_DOMAINS", ""), ",") {
		h = strings.TrimSpace(strings.ToLower(h))
		if h != "" {
			domains = append(domains, h)
		}
	}

	cfg := AppConfig{
		Port:                  get("PORT", "5000"),
		Env:                   get("GREENLANDS_ENV", "development"),
		DBPath:                get("DB_PATH", "greenlands.db"),
		ClientURL:             get("CLIENT_URL", "http://localhost:3000"),
		JWTSecret:             get("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:              time.Duration(getInt("TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		RateWindow:            time.Duration(getInt("RATE_WINDOW_MINUTES", 15)) * time.Minute,
		RateMax:               getInt("RATE_MAX_REQUESTS", 100),
		SMTPHost:              get("SMTP_HOST", ""),
		SMTPPort:              get("SMTP_PORT", "587"),
		SMTPUser:              get("SMTP_USER", ""),
		SMTPPass:              get("SMTP_PASS", ""),
		AdminEmail:            get("ADMIN_EMAIL", "admin@example.com"),
		SubsidyAllowedDomains: domains,
	}
	log.Printf("[cfg] port=%s env=%s db=%s client=%s rate=%d/%s ttl=%s",
		cfg.Port, cfg.Env, cfg.DBPath, cfg.ClientURL, cfg.RateMax, cfg.RateWindow, cfg.TokenTTL)
	return cfg
}
