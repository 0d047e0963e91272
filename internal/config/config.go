package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Vertesia API settings
	VertesiaAPIKey  string `json:"-"` // Don't expose in JSON
	VertesiaBaseURL string `json:"vertesia_base_url"`
	EnvironmentID   string `json:"environment_id"`
	Model           string `json:"model"`
	InteractionName string `json:"interaction_name"`

	// API auth settings
	APIAuthToken string `json:"-"` // Don't expose in JSON

	// Slack settings (notifier is disabled when the token is empty)
	SlackBotToken string `json:"-"` // Don't expose in JSON
	SlackChannel  string `json:"slack_channel"`

	// Schedule settings
	ScheduleHours    []int          `json:"schedule_hours"`
	ScheduleWeekdays []time.Weekday `json:"schedule_weekdays"`

	// Generation settings
	LookbackDays     int           `json:"lookback_days"`
	PriorityExposure float64       `json:"priority_exposure"`
	PollInterval     time.Duration `json:"poll_interval"`
	PollAttempts     int           `json:"poll_attempts"`
	MinContentLength int           `json:"min_content_length"`

	// Storage settings
	StorageBucket string `json:"storage_bucket"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Host:            getEnvOrDefault("HOST", "0.0.0.0"),
		VertesiaAPIKey:  getEnvOrDefault("VERTESIA_API_KEY", ""),
		VertesiaBaseURL: getEnvOrDefault("VERTESIA_API_BASE", "https://api.vertesia.io/api/v1"),
		EnvironmentID:   getEnvOrDefault("VERTESIA_ENVIRONMENT_ID", ""),
		Model:           getEnvOrDefault("VERTESIA_MODEL", "publishers/anthropic/models/claude-3-7-sonnet"),
		InteractionName: "PortfolioPulse",
		APIAuthToken:    getEnvOrDefault("API_AUTH_TOKEN", ""),
		SlackBotToken:   getEnvOrDefault("SLACK_BOT_TOKEN", ""),
		SlackChannel:    getEnvOrDefault("SLACK_CHANNEL", "#portfolio-pulse"),
		ScheduleHours:   []int{8, 14, 20},
		ScheduleWeekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		LookbackDays:     getEnvOrDefaultInt("NEWS_LOOKBACK_DAYS", 7),
		PriorityExposure: 10,
		PollInterval:     time.Duration(getEnvOrDefaultInt("GENERATION_POLL_SECONDS", 10)) * time.Second,
		PollAttempts:     getEnvOrDefaultInt("GENERATION_POLL_ATTEMPTS", 18),
		MinContentLength: getEnvOrDefaultInt("MIN_CONTENT_LENGTH", 80),
		StorageBucket:    getEnvOrDefault("STORAGE_BUCKET", "portfolio-pulse-store"),
	}

	return config, config.validate()
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	if c.VertesiaAPIKey == "" {
		return &ConfigError{Field: "VERTESIA_API_KEY", Message: "Vertesia API key is required"}
	}
	if !strings.HasPrefix(c.VertesiaAPIKey, "sk-") {
		return &ConfigError{Field: "VERTESIA_API_KEY", Message: "must start with sk-"}
	}
	if c.EnvironmentID == "" {
		return &ConfigError{Field: "VERTESIA_ENVIRONMENT_ID", Message: "Vertesia environment id is required"}
	}
	if c.PollAttempts < 1 {
		return &ConfigError{Field: "GENERATION_POLL_ATTEMPTS", Message: "must be at least 1"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
