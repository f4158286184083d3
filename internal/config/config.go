// Package config loads path planner configuration from YAML with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Graph   GraphConfig   `yaml:"graph"`
	Planner PlannerConfig `yaml:"planner"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr           string        `yaml:"addr" validate:"required"`
	AllowedOrigins []string      `yaml:"allowedOrigins" validate:"min=1,dive,required"`
	ReadTimeout    time.Duration `yaml:"readTimeout" validate:"gt=0"`
	WriteTimeout   time.Duration `yaml:"writeTimeout" validate:"gt=0"`
}

// GraphConfig points at the position graph snapshot
type GraphConfig struct {
	// File is loaded on startup; empty means the graph is posted over HTTP.
	File  string `yaml:"file"`
	Watch bool   `yaml:"watch"`
}

// PlannerConfig bounds planning requests
type PlannerConfig struct {
	MaxWaypoints int `yaml:"maxWaypoints" validate:"gte=2,lte=1000"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// MetricsConfig controls the prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required,startswith=/"`
}

var validate = validator.New()

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
		},
		Graph: GraphConfig{
			File: "graph.json",
		},
		Planner: PlannerConfig{
			MaxWaypoints: 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	return validate.Struct(c)
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("PATHPLANNER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PATHPLANNER_GRAPH_FILE"); v != "" {
		cfg.Graph.File = v
	}
	if v := os.Getenv("PATHPLANNER_GRAPH_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Graph.Watch = b
		}
	}
	if v := os.Getenv("PATHPLANNER_MAX_WAYPOINTS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Planner.MaxWaypoints = i
		}
	}
	if v := os.Getenv("PATHPLANNER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PATHPLANNER_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
