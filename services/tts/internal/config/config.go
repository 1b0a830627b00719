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

// MinioConfig configures optional object storage for generated clips.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"useSSL"`
}

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port                  string      `yaml:"port"`
	LogLevel              string      `yaml:"logLevel"`
	GoogleCredentialsFile string      `yaml:"googleCredentialsFile"`
	DefaultVoice          string      `yaml:"defaultVoice"`
	DefaultLanguage       string      `yaml:"defaultLanguage"`
	Minio                 MinioConfig `yaml:"minio"`
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
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.GoogleCredentialsFile = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.Minio.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.Minio.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.Minio.SecretKey = v
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
	if cfg.Minio.Endpoint != "" && cfg.Minio.Bucket == "" {
		return errors.New("config: minio.bucket is required when minio.endpoint is set")
	}
	return nil
}
