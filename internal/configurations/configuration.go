package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/zdziszkee/swift-registry/internal/database"
)

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ServerConfig struct {
	Address         string        `koanf:"address"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DataConfig struct {
	SwiftCodesFile string        `koanf:"swift_codes_file"`
	AutoLoad       bool          `koanf:"auto_load"`
	LoadTimeout    time.Duration `koanf:"load_timeout"`
}

type PaginationConfig struct {
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

type Config struct {
	AppName    string           `koanf:"app_name"`
	Log        LogConfig        `koanf:"log"`
	Server     ServerConfig     `koanf:"server"`
	Database   database.Config  `koanf:"database"`
	Data       DataConfig       `koanf:"data"`
	Pagination PaginationConfig `koanf:"pagination"`
}

// DefaultConfig returns the default configuration for swift-codes
func DefaultConfig() *Config {
	return &Config{
		AppName: "swift-codes",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: database.Config{
			Type:            database.TypeTrino,
			Host:            "trino",
			Port:            8080,
			User:            "test",
			Catalog:         "swift_catalog",
			Schema:          "default_schema",
			TableName:       "swift_banks",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 1 * time.Hour,
		},
		Data: DataConfig{
			SwiftCodesFile: "/app/swift_codes.xlsx",
			AutoLoad:       true,
			LoadTimeout:    5 * time.Minute,
		},
		Pagination: PaginationConfig{
			DefaultLimit: 100,
			MaxLimit:     1000,
		},
	}
}

var commonPaths = []string{
	"./config.toml",
	"./config/config.toml",
	"/etc/swift-codes/config.toml",
}

// Load loads the configuration from defaults, a TOML file and APP_ prefixed
// environment variables, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading TOML config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error checking config file: %w", err)
		}
	} else {
		for _, path := range commonPaths {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("error loading TOML config file from %s: %w", path, err)
				}
				break
			}
		}
	}

	// APP_DATABASE__HOST -> database.host
	callback := func(s string) string {
		s = strings.TrimPrefix(s, "APP_")
		parts := strings.Split(s, "__")
		for i, part := range parts {
			parts[i] = strings.ToLower(part)
		}
		return strings.Join(parts, ".")
	}
	if err := k.Load(env.Provider("APP_", ".", callback), nil); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

var (
	validLogLevels = map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}
	validLogFormats = map[string]bool{
		"text": true,
		"json": true,
	}
)

// validateConfig checks required fields.
func validateConfig(config *Config) error {
	db := config.Database
	switch db.Type {
	case database.TypeTrino:
		if db.Catalog == "" {
			return errors.New("database catalog cannot be empty")
		}
		if db.Schema == "" {
			return errors.New("database schema cannot be empty")
		}
	case database.TypePostgres:
		if db.Catalog == "" {
			return errors.New("database catalog cannot be empty: it names the postgres database")
		}
	default:
		return fmt.Errorf("database type must be %q or %q, got %q", database.TypeTrino, database.TypePostgres, db.Type)
	}
	if db.Host == "" {
		return errors.New("database host cannot be empty")
	}
	if db.Port <= 0 {
		return fmt.Errorf("database port must be positive, got %d", db.Port)
	}

	if db.MaxOpenConns < 0 {
		return errors.New("max open connections cannot be negative")
	}
	if db.MaxIdleConns < 0 {
		return errors.New("max idle connections cannot be negative")
	}
	if db.ConnMaxLifetime < 0 {
		return errors.New("connection max lifetime cannot be negative")
	}

	if config.Server.Address == "" {
		return errors.New("server address cannot be empty")
	}
	if config.Server.ReadTimeout < 0 || config.Server.WriteTimeout < 0 || config.Server.ShutdownTimeout < 0 {
		return errors.New("server timeouts cannot be negative")
	}

	if config.Log.Level == "" {
		return errors.New("log level cannot be empty")
	}
	if !validLogLevels[strings.ToLower(config.Log.Level)] {
		return errors.New("invalid log level: must be one of debug, info, warn, error, fatal")
	}
	if !validLogFormats[strings.ToLower(config.Log.Format)] {
		return errors.New("invalid log format: must be text or json")
	}

	if config.Data.SwiftCodesFile == "" {
		return errors.New("data.swift_codes_file cannot be empty")
	}
	if config.Data.LoadTimeout < 0 {
		return errors.New("data.load_timeout cannot be negative")
	}

	if config.Pagination.DefaultLimit <= 0 || config.Pagination.MaxLimit <= 0 {
		return errors.New("pagination limits must be positive")
	}
	if config.Pagination.DefaultLimit > config.Pagination.MaxLimit {
		return fmt.Errorf("pagination.default_limit %d exceeds pagination.max_limit %d",
			config.Pagination.DefaultLimit, config.Pagination.MaxLimit)
	}

	return nil
}
