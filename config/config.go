package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sirupsen/logrus"
)

type Config struct {
	// Default provider selector, overridable per invocation
	Provider string

	// Language codes to request, in preference order
	Languages []string

	// Timeout applied to captioning and generation HTTP calls
	HTTPTimeout time.Duration

	LogDir string
	Debug  bool
}

func Load() *Config {
	return &Config{
		Provider:    GetEnv("SUMMARY_PROVIDER", "ollama"),
		Languages:   getEnvAsList("SUMMARY_LANGUAGES", []string{"en"}),
		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 2*time.Minute),
		LogDir:      GetEnv("LOG_DIR", "./logs"),
		Debug:       getEnvAsBool("DEBUG", false),
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "1", "true", "yes":
			return true
		case "0", "false", "no":
			return false
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid boolean, using default")
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func ValidateConfig(cfg *Config) error {
	if cfg.Provider == "" {
		return errors.New("provider is required")
	}
	if len(cfg.Languages) == 0 {
		return errors.New("at least one language code is required")
	}
	if cfg.HTTPTimeout <= 0 {
		return errors.New("HTTP timeout must be greater than 0")
	}
	return nil
}
