package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location relative to the service
// working directory.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port           string `yaml:"port"`
	LogLevel       string `yaml:"logLevel"`
	DatabaseURL    string `yaml:"databaseURL"`
	UserServiceURL string `yaml:"userServiceURL"`
	CloudWorkerURL string `yaml:"cloudWorkerURL"`
	LocalWorkerURL string `yaml:"localWorkerURL"`
	JWTSecret      string `yaml:"jwtSecret"`
}

// Load reads config from path (defaults to config.yaml).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Override with environment variables
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("USER_SERVICE_URL"); v != "" {
		cfg.UserServiceURL = v
	}
	if v := os.Getenv("GENAI_CLOUD_URL"); v != "" {
		cfg.CloudWorkerURL = v
	}
	if v := os.Getenv("GENAI_LOCAL_URL"); v != "" {
		cfg.LocalWorkerURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if cfg.UserServiceURL == "" {
		return errors.New("config: userServiceURL is required (set in config.yaml or USER_SERVICE_URL)")
	}
	if cfg.CloudWorkerURL == "" && cfg.LocalWorkerURL == "" {
		return errors.New("config: at least one of cloudWorkerURL or localWorkerURL is required")
	}
	if cfg.JWTSecret == "" {
		return errors.New("config: jwtSecret is required (set in config.yaml or JWT_SECRET)")
	}
	return nil
}
