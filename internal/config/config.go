// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// SMTPConfig carries the outbound mail settings.
type SMTPConfig struct {
	Host        string
	Port        int
	FromEmail   string
	AppPassword string
}

// OwnerConfig is the signature block appended to outbound emails.
type OwnerConfig struct {
	Name        string
	Title       string
	DirectPhone string
	WebsiteURL  string
}

// Config is the process-wide configuration.
type Config struct {
	Environment string
	HTTPAddr    string
	DatabaseURL string
	SMTP        SMTPConfig
	Owner       OwnerConfig
	LogoPath    string
	Timezone    string
}

// Load reads configuration from the environment. A .env file is honored
// when present so local runs match the legacy deployment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SMTP: SMTPConfig{
			Host:        getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:        getenvInt("SMTP_PORT", 465),
			FromEmail:   getenv("FROM_EMAIL", ""),
			AppPassword: strings.TrimSpace(os.Getenv("SMTP_APP_PASSWORD")),
		},
		Owner: OwnerConfig{
			Name:        getenv("OWNER_NAME", "Arturo Arreola"),
			Title:       getenv("OWNER_TITLE", "Owner"),
			DirectPhone: getenv("OWNER_PHONE", "(630) 849-0385"),
			WebsiteURL:  getenv("OWNER_WEBSITE", "https://jihchr.com"),
		},
		LogoPath: getenv("LOGO_PATH", "logo.png"),
		Timezone: getenv("TIMEZONE", "America/Chicago"),
	}
	return cfg, nil
}

// IsProduction reports whether the process runs against the live database.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
