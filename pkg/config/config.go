// Package config loads the node host configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = 9095
	DefaultDatabaseURL = "file://./data"
	DefaultEventBus    = "gochannel"
	DefaultLogLevel    = "info"
	DefaultServiceName = "lexal-node"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config represents the structure of the lexal-node YAML file.
type Config struct {
	Port        int         `yaml:"port"`
	DatabaseURL string      `yaml:"database_url"`
	EventBus    string      `yaml:"event_bus"`
	DefaultNode string      `yaml:"default_node"`
	LogLevel    string      `yaml:"log_level"`
	ServiceName string      `yaml:"service_name"`
	Tracing     bool        `yaml:"tracing"`
	Redis       RedisConfig `yaml:"redis"`
}

// RedisConfig tunes the redis run store.
type RedisConfig struct {
	Prefix string        `yaml:"prefix"`
	TTL    time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Port:        DefaultPort,
		DatabaseURL: DefaultDatabaseURL,
		EventBus:    DefaultEventBus,
		LogLevel:    DefaultLogLevel,
		ServiceName: DefaultServiceName,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(filepath string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(filepath)
	if err != nil {
		return config, fmt.Errorf("failed to read config file %s: %w", filepath, err)
	}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return config, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return config, config.Validate()
}

// Validate checks the values that cannot be corrected later.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}

	switch c.EventBus {
	case "gochannel", "kafka", "none":
	default:
		return fmt.Errorf("%w: unsupported event bus '%s'", ErrInvalidConfig, c.EventBus)
	}

	if c.Redis.TTL < 0 {
		return fmt.Errorf("%w: negative redis ttl", ErrInvalidConfig)
	}

	return nil
}
