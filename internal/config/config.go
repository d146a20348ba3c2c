// internal/config/config.go
package config

import (
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string

	// ScrapeCron is the cron schedule for automatic runs when the process
	// is started in daemon mode.
	ScrapeCron string

	// BandsFile is the JSON allowlist of {name, genre} pairs seeded into
	// the catalog at startup.
	BandsFile string

	// SourcesFile points at the YAML file describing venue feeds.
	SourcesFile string

	// EventbriteToken is the bearer token for the Eventbrite API.
	EventbriteToken string

	// DigestTo, when set, receives an email digest after runs that
	// persisted new shows.
	DigestTo string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func Load() *Config {
	// Exported variables win over a local .env file.
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "postgres")
		dbName := getEnv("PSQL_DB_NAME", "showscraper")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabaseURL:     databaseURL,
		ScrapeCron:      getEnv("SCRAPE_CRON", "0 */6 * * *"),
		BandsFile:       getEnv("BANDS_FILE", "bands.json"),
		SourcesFile:     getEnv("SOURCES_FILE", "sources.yaml"),
		EventbriteToken: os.Getenv("EVENTBRITE_TOKEN"),
		DigestTo:        os.Getenv("DIGEST_TO"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		SMTPFrom:        os.Getenv("SMTP_FROM"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
