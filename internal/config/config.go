// Package config provides application configuration management with support
// for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Logger  LoggerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 3030)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// StorageConfig holds content database configuration.
type StorageConfig struct {
	DBPath string // SQLite database file (default: inkwell.db)
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// Load builds the configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("inkwelld", flag.ContinueOnError)

	port := fs.String("port", "", "Server port (default: 3030)")
	dbPath := fs.String("db-path", "", "Path to the SQLite database file")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		Server: ServerConfig{
			Port: getConfigValue(*port, "INKWELL_PORT", "3030"),
		},
		Storage: StorageConfig{
			DBPath: getConfigValue(*dbPath, "INKWELL_DB_PATH", "inkwell.db"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "INKWELL_LOG_LEVEL", "info"),
		},
	}

	var err error
	cfg.Server.ReadTimeout, err = parseDuration(*readTimeout, "INKWELL_READ_TIMEOUT", "15s")
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout: %w", err)
	}
	cfg.Server.WriteTimeout, err = parseDuration(*writeTimeout, "INKWELL_WRITE_TIMEOUT", "15s")
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout: %w", err)
	}
	cfg.Server.IdleTimeout, err = parseDuration(*idleTimeout, "INKWELL_IDLE_TIMEOUT", "60s")
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// parseDuration resolves a duration setting through the usual precedence.
func parseDuration(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments). Values already present
// in the environment win over the file.
func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return scanner.Err()
}
