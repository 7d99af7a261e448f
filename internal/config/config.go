package config

import (
	"os"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Env                string
	Port               string
	DatabaseURL        string
	DatabaseServiceKey string
	RSVPDataFile       string
	SiteContentFile    string
	SendGridAPIKey     string
	NotificationEmail  string
	NotifyTo           string
}

// LoadConfig loads configuration from environment variables or defaults
func LoadConfig() *Config {
	return &Config{
		Env:                getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DatabaseServiceKey: os.Getenv("DATABASE_SERVICE_KEY"),
		RSVPDataFile:       getEnv("RSVP_DATA_FILE", "rsvp-data.json"),
		SiteContentFile:    getEnv("SITE_CONTENT_FILE", "content/site.json"),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		NotificationEmail:  os.Getenv("NOTIFICATION_EMAIL"),
		NotifyTo:           getEnv("RSVP_NOTIFY_TO", os.Getenv("NOTIFICATION_EMAIL")),
	}
}

// IsDevelopment reports whether the development-only endpoints are enabled.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DatabaseConfigured reports whether the remote database backend should be
// used. Placeholder values left over from an unconfigured deployment
// ("your_database_url_here" and the like) do not count as configured.
func (c *Config) DatabaseConfigured() bool {
	if c.DatabaseURL == "" || c.DatabaseServiceKey == "" {
		return false
	}
	if !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return false
	}
	for _, v := range []string{c.DatabaseURL, c.DatabaseServiceKey} {
		if strings.Contains(v, "placeholder") || strings.Contains(v, "your_") {
			return false
		}
	}
	return true
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
