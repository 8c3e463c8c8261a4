package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the application configuration.
type Config struct {
	Server ServerConfig
	Family FamilyConfig
	Data   DataConfig
	Log    LogConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port string
	Mode string
}

// FamilyConfig points at the family document used to seed an empty store.
type FamilyConfig struct {
	FilePath string
}

// DataConfig configures person storage.
type DataConfig struct {
	RootPath  string
	Namespace string
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Mode: getEnv("SERVER_MODE", "debug"),
		},
		Family: FamilyConfig{
			FilePath: getEnv("FAMILY_FILE_PATH", "./family/family.yaml"),
		},
		Data: DataConfig{
			RootPath:  getEnv("DATA_ROOT_PATH", "./data"),
			Namespace: getEnv("DATA_NAMESPACE", "default"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if _, err := config.Log.SlogLevel(); err != nil {
		return nil, err
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT '%s'", config.Log.Format)
	}
	return config, nil
}

// SlogLevel converts the configured level name.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Level))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL '%s': %w", c.Level, err)
	}
	return level, nil
}

// NewLogger builds the process logger.
func (c LogConfig) NewLogger() *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
