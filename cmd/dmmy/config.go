package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/dmmy/internal/logger"
)

// Config represents the dmmy configuration file (~/.config/dmmy/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Output    string `yaml:"output"`

	// Server
	ServerAddress    string `yaml:"server_address"`
	MaxDocumentBytes *int64 `yaml:"max_document_bytes"`
	StoreLimit       *int64 `yaml:"store_limit"`
}

// loadedConfig is populated by setup before any command runs.
var loadedConfig Config

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dmmy", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero
// Config; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyGlobalConfig applies config file defaults to global flag variables
// when the corresponding flag was not explicitly set.
func applyGlobalConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	if cfg.Output != "" && !c.IsSet("output") {
		outputFormat = cfg.Output
	}
}

// setup loads the config file and installs the logger into the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := configFile
	if path == "" {
		path = configPath()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return ctx, err
	}
	loadedConfig = cfg
	applyGlobalConfig(cmd, cfg)

	switch outputFormat {
	case outputText, outputJSON:
	default:
		return ctx, fmt.Errorf("unknown output format %q (want text or json)", outputFormat)
	}

	level := logger.ParseLevel(logLevel)
	if debug {
		level = logger.ParseLevel("debug")
	}
	log, err := logger.ForFormat(cmd.Root().ErrWriter, logFormat, level)
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, log), nil
}
