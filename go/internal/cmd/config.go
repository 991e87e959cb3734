package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Broker struct {
		URL string `yaml:"url"`
	} `yaml:"broker"`
	Storage struct {
		Root    string `yaml:"root"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"storage"`
	Playback struct {
		PruneInterval time.Duration `yaml:"prune_interval"`
		DeviceTTL     time.Duration `yaml:"device_ttl"`
	} `yaml:"playback"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// loadConfig reads the YAML config file and layers environment overrides on
// top. A missing file is fine; everything has a default.
func loadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if config.Server.Port == "" {
		config.Server.Port = getEnv("PORT", "8080")
	}
	if config.Broker.URL == "" {
		config.Broker.URL = getEnv("NATS_URL", "nats://localhost:4222")
	}
	if config.Storage.Root == "" {
		config.Storage.Root = getEnv("STORAGE_ROOT", "./uploads")
	}
	if config.Storage.BaseURL == "" {
		config.Storage.BaseURL = getEnv("STORAGE_BASE_URL", "/api/files")
	}
	if config.Playback.PruneInterval == 0 {
		config.Playback.PruneInterval = getEnvAsDuration("PLAYBACK_PRUNE_INTERVAL", 5*time.Minute)
	}
	if config.Playback.DeviceTTL == 0 {
		config.Playback.DeviceTTL = getEnvAsDuration("PLAYBACK_DEVICE_TTL", 0)
	}

	return &config, nil
}
