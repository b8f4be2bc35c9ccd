package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"

	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
)

type Config struct {
	// Server settings
	ServerPort      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	Debug           bool

	// Logging
	LogDir   string
	LogLevel string

	// Rate limiting for the generate endpoints
	RateLimitRPM   int
	RateLimitBurst int

	// Sessions
	SessionStore string
	SessionTTL   time.Duration
	DBPath       string

	Captions CaptionsConfig
	Blog     BlogConfig
}

type CaptionsConfig struct {
	Languages   []string
	MaxBytes    int64
	HTTPTimeout time.Duration
}

type BlogConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	CharBudget  int
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("Failed to load .env file")
	}

	cfg := &Config{
		ServerPort:      GetEnv("SERVER_PORT", "8080"),
		ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 3*time.Minute),
		IdleTimeout:     getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 2*time.Minute),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Debug:           getEnvAsBool("DEBUG", false),

		LogDir:   GetEnv("LOG_DIR", "./logs"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		RateLimitRPM:   getEnvAsInt("RATE_LIMIT_RPM", 30),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 5),

		SessionStore: GetEnv("SESSION_STORE", SessionStoreMemory),
		SessionTTL:   getEnvAsDuration("SESSION_TTL", 2*time.Hour),
		DBPath:       GetEnv("DB_PATH", "./data/sessions.db"),

		Captions: CaptionsConfig{
			Languages:   getEnvAsStringSlice("CAPTION_LANGUAGES", []string{"en", "en-US", "en-GB"}),
			MaxBytes:    getEnvAsInt64("CAPTION_MAX_BYTES", 8<<20),
			HTTPTimeout: getEnvAsDuration("CAPTION_HTTP_TIMEOUT", 30*time.Second),
		},

		Blog: BlogConfig{
			APIKey:      strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
			BaseURL:     GetEnv("GROQ_BASE_URL", DefaultGroqBaseURL),
			Model:       GetEnv("GROQ_MODEL", "llama3-8b-8192"),
			Temperature: getEnvAsFloat32("BLOG_TEMPERATURE", 0.3),
			MaxTokens:   getEnvAsInt("BLOG_MAX_TOKENS", 2000),
			CharBudget:  getEnvAsInt("TRANSCRIPT_CHAR_BUDGET", 5000),
			HTTPTimeout: getEnvAsDuration("GROQ_HTTP_TIMEOUT", 90*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HasAPIKey reports whether blog generation can run at all.
func (c *Config) HasAPIKey() bool {
	return c.Blog.APIKey != ""
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return errors.New("server port is required")
	}
	if c.ReadTimeout <= 0 {
		return errors.New("read timeout must be greater than 0")
	}
	if c.WriteTimeout <= 0 {
		return errors.New("write timeout must be greater than 0")
	}
	if c.IdleTimeout <= 0 {
		return errors.New("idle timeout must be greater than 0")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be greater than 0")
	}
	if c.RateLimitRPM <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit must be greater than 0")
	}
	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreSQLite:
		if c.DBPath == "" {
			return errors.New("database path is required for the sqlite session store")
		}
	default:
		return errors.Errorf("unknown session store %q", c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be greater than 0")
	}
	if len(c.Captions.Languages) == 0 {
		return errors.New("at least one caption language is required")
	}
	if c.Captions.MaxBytes <= 0 {
		return errors.New("caption max bytes must be greater than 0")
	}
	if c.Blog.Model == "" {
		return errors.New("model is required")
	}
	if c.Blog.CharBudget <= 0 {
		return errors.New("transcript char budget must be greater than 0")
	}
	if c.Blog.MaxTokens <= 0 {
		return errors.New("max tokens must be greater than 0")
	}
	if c.Blog.Temperature < 0 || c.Blog.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		warnInvalid(key, value, defaultValue, "Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		warnInvalid(key, value, defaultValue, "Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
		warnInvalid(key, value, defaultValue, "Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
		warnInvalid(key, value, defaultValue, "Invalid float, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		warnInvalid(key, value, defaultValue, "Invalid boolean, using default")
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func warnInvalid(key, value string, defaultValue interface{}, msg string) {
	logrus.WithFields(logrus.Fields{
		"key":          key,
		"value":        value,
		"defaultValue": defaultValue,
	}).Warn(msg)
}
