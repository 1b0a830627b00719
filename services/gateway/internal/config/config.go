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

// FileConfig represents configuration loaded from YAML. The route table is
// static: each downstream service has a fixed base URL.
type FileConfig struct {
	Port                       string `yaml:"port"`
	LogLevel                   string `yaml:"logLevel"`
	UserServiceURL             string `yaml:"userServiceURL"`
	PlanServiceURL             string `yaml:"planServiceURL"`
	TTSServiceURL              string `yaml:"ttsServiceURL"`
	RedisAddr                  string `yaml:"redisAddr"`
	RedisPassword              string `yaml:"redisPassword"`
	RegisterRateLimitPerMinute int    `yaml:"registerRateLimitPerMinute"`
	LoginRateLimitPerMinute    int    `yaml:"loginRateLimitPerMinute"`
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
	if v := os.Getenv("USER_SERVICE_URL"); v != "" {
		cfg.UserServiceURL = v
	}
	if v := os.Getenv("PLAN_SERVICE_URL"); v != "" {
		cfg.PlanServiceURL = v
	}
	if v := os.Getenv("TTS_SERVICE_URL"); v != "" {
		cfg.TTSServiceURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
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
	if cfg.UserServiceURL == "" {
		return errors.New("config: userServiceURL is required (set in config.yaml or USER_SERVICE_URL)")
	}
	if cfg.PlanServiceURL == "" {
		return errors.New("config: planServiceURL is required (set in config.yaml or PLAN_SERVICE_URL)")
	}
	if cfg.TTSServiceURL == "" {
		return errors.New("config: ttsServiceURL is required (set in config.yaml or TTS_SERVICE_URL)")
	}
	if cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required (set in config.yaml or REDIS_ADDR)")
	}
	return nil
}
