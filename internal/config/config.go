package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr          = ":8080"
	defaultDatabaseURL   = "podstudio.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTTTL        = "24h"
	defaultOTPTTL        = "10m"
	defaultSMTPPort      = "587"
	defaultRedisAddr     = ""
	defaultAvailCacheTTL = "60s"
)

type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration
	OTPTTL    time.Duration

	// SMTP is optional; without a host the mail sender degrades to log-only.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Redis is optional; without an address the availability cache is off.
	RedisAddr     string
	RedisPassword string
	AvailCacheTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = getEnv("ADDR", defaultAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.OTPTTL, err = parseDurationEnv("OTP_TTL", defaultOTPTTL)
	if err != nil {
		return nil, err
	}
	cfg.AvailCacheTTL, err = parseDurationEnv("AVAILABILITY_CACHE_TTL", defaultAvailCacheTTL)
	if err != nil {
		return nil, err
	}

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	if _, err := fmt.Sscanf(getEnv("SMTP_PORT", defaultSMTPPort), "%d", &cfg.SMTPPort); err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.MailFrom = getEnv("MAIL_FROM", "no-reply@podstudio.local")

	cfg.RedisAddr = strings.TrimSpace(getEnv("REDIS_ADDR", defaultRedisAddr))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
