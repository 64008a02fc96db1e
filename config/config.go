package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-gia/events"
)

const (
	FallbackUnavailable = events.ModeUnavailable
	FallbackSamples     = events.ModeSamples

	DefaultNewsAPIURL    = "https://newsapi.org/v2"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
)

// DefaultGeminiModels is ordered from most to least capable.
var DefaultGeminiModels = []string{"gemini-2.5-pro", "gemini-2.5-flash", "gemini-2.0-flash"}

type Config struct {
	Port string     `yaml:"port"`
	News NewsConfig `yaml:"news"`
	AI   AIConfig   `yaml:"ai"`
	Log  LogConfig  `yaml:"log"`
	// GinMode is passed to gin.SetMode; empty keeps gin's default.
	GinMode string `yaml:"gin_mode"`
}

type NewsConfig struct {
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Fallback string        `yaml:"fallback"`
}

type AIConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	Models            []string      `yaml:"models"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() Config {
	return Config{
		Port: "5000",
		News: NewsConfig{
			BaseURL:  DefaultNewsAPIURL,
			Timeout:  10 * time.Second,
			Fallback: FallbackUnavailable,
		},
		AI: AIConfig{
			BaseURL: DefaultGeminiBaseURL,
			Models:  append([]string(nil), DefaultGeminiModels...),
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, an optional YAML file, a .env
// file in the working directory and finally the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)

	cfg.News.APIKey = getEnv("NEWS_API_KEY", cfg.News.APIKey)
	cfg.News.BaseURL = getEnv("NEWS_API_URL", cfg.News.BaseURL)
	cfg.News.Timeout = getEnvAsDuration("NEWS_TIMEOUT", cfg.News.Timeout)
	cfg.News.Fallback = getEnv("EVENTS_FALLBACK", cfg.News.Fallback)

	cfg.AI.APIKey = getEnv("GEMINI_API_KEY", cfg.AI.APIKey)
	cfg.AI.BaseURL = getEnv("GEMINI_BASE_URL", cfg.AI.BaseURL)
	cfg.AI.Models = getEnvAsList("GEMINI_MODELS", cfg.AI.Models)
	cfg.AI.Timeout = getEnvAsDuration("AI_TIMEOUT", cfg.AI.Timeout)
	cfg.AI.RequestsPerMinute = getEnvAsInt("AI_REQUESTS_PER_MINUTE", cfg.AI.RequestsPerMinute)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	switch c.News.Fallback {
	case FallbackUnavailable, FallbackSamples:
	default:
		return fmt.Errorf("unknown events fallback mode %q", c.News.Fallback)
	}
	if c.News.Timeout <= 0 {
		return fmt.Errorf("news timeout must be positive, got %s", c.News.Timeout)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai timeout must be positive, got %s", c.AI.Timeout)
	}
	if len(c.AI.Models) == 0 {
		return errors.New("at least one gemini model is required")
	}
	if c.AI.RequestsPerMinute < 0 {
		return fmt.Errorf("ai requests per minute must not be negative, got %d", c.AI.RequestsPerMinute)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
