package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string
	OwnerID        string

	// Database configuration
	DatabaseURL string

	// Leveling configuration
	XPPerMessage int64

	// Sweeper configuration
	SweepInterval time.Duration
	SweepGrace    time.Duration

	// Web dashboard configuration
	WebEnabled        bool
	WebAddr           string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectURL  string
	SessionSecret     string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables.
// A .env file in the working directory is read first if present.
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),
		OwnerID:        os.Getenv("OWNER_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Defaults
		XPPerMessage:  1,
		SweepInterval: 60 * time.Minute,
		SweepGrace:    48 * time.Hour,

		// Web dashboard
		WebEnabled:        os.Getenv("WEB_ENABLED") == "true",
		WebAddr:           ":8080",
		OAuthClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
		OAuthRedirectURL:  "http://localhost:8080/callback",
		SessionSecret:     os.Getenv("SESSION_SECRET"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if xp := os.Getenv("XP_PER_MESSAGE"); xp != "" {
		if parsed, err := strconv.ParseInt(xp, 10, 64); err == nil && parsed > 0 {
			config.XPPerMessage = parsed
		}
	}
	if minutes := os.Getenv("SWEEP_INTERVAL_MINUTES"); minutes != "" {
		if parsed, err := strconv.Atoi(minutes); err == nil && parsed > 0 {
			config.SweepInterval = time.Duration(parsed) * time.Minute
		}
	}
	if hours := os.Getenv("SWEEP_GRACE_HOURS"); hours != "" {
		if parsed, err := strconv.Atoi(hours); err == nil && parsed > 0 {
			config.SweepGrace = time.Duration(parsed) * time.Hour
		}
	}
	if addr := os.Getenv("WEB_ADDR"); addr != "" {
		config.WebAddr = addr
	}
	if redirect := os.Getenv("OAUTH_REDIRECT_URL"); redirect != "" {
		config.OAuthRedirectURL = redirect
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.WebEnabled {
			if config.OAuthClientID == "" || config.OAuthClientSecret == "" {
				return nil, fmt.Errorf("OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET are required when WEB_ENABLED=true")
			}
			if config.SessionSecret == "" {
				return nil, fmt.Errorf("SESSION_SECRET is required when WEB_ENABLED=true")
			}
		}
	}

	return config, nil
}
