package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the board frontend and the terminal client.
type Config struct {
	UsersBaseURL   string        `yaml:"users_base_url"`
	NotesBaseURL   string        `yaml:"notes_base_url"`
	Port           string        `yaml:"port"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	NotifyTimeout  time.Duration `yaml:"notify_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	LogLevel       string        `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		UsersBaseURL:   "http://localhost:5000",
		NotesBaseURL:   "http://localhost:5001",
		Port:           "3000",
		PollInterval:   15 * time.Second,
		NotifyTimeout:  5 * time.Second,
		RequestTimeout: 10 * time.Second,
		SessionTTL:     30 * time.Minute,
		LogLevel:       "info",
	}
}

// Load builds a Config from defaults, an optional YAML file, an optional .env
// file and the process environment, in that order of precedence (last wins).
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("NOTESBOARD_CONFIG")
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}

	// .env is optional; variables already set in the environment are kept.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.UsersBaseURL = GetEnv("USERS_API_URL", c.UsersBaseURL)
	c.NotesBaseURL = GetEnv("NOTES_API_URL", c.NotesBaseURL)
	c.Port = GetEnv("PORT", c.Port)
	c.LogLevel = GetEnv("LOG_LEVEL", c.LogLevel)

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"POLL_INTERVAL", &c.PollInterval},
		{"NOTIFY_TIMEOUT", &c.NotifyTimeout},
		{"REQUEST_TIMEOUT", &c.RequestTimeout},
		{"SESSION_TTL", &c.SessionTTL},
	}
	for _, d := range durations {
		val := os.Getenv(d.key)
		if val == "" {
			continue
		}
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

// Validate reports settings that would leave the board unusable.
func (c Config) Validate() error {
	if c.UsersBaseURL == "" {
		return errors.New("users base URL is required")
	}
	if c.NotesBaseURL == "" {
		return errors.New("notes base URL is required")
	}
	if c.PollInterval < time.Second {
		return fmt.Errorf("poll interval must be at least 1s, got %s", c.PollInterval)
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("notify timeout must be positive, got %s", c.NotifyTimeout)
	}
	return nil
}

// GetEnv returns the value of key, or defaultVal when it is unset or empty.
func GetEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// NewLogger builds the text logger every binary writes to stdout.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
}
