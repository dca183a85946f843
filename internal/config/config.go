// Package config loads and validates application configuration from
// the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"3001"`
	DataDir   string `env:"DATA_DIR" default:"./data"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	InferenceURL     string        `env:"INFERENCE_URL" default:"http://localhost:8000/classify"`
	InferenceToken   string        `env:"INFERENCE_TOKEN"`
	InferenceTimeout time.Duration `env:"INFERENCE_TIMEOUT" default:"60s"`

	// Simulator settings
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIModel       string `env:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	RefreshURL        string `env:"REFRESH_URL" default:"http://localhost:3001/api/sentiment/refresh"`
	SimulatorSchedule string `env:"SIMULATOR_SCHEDULE" default:"@every 2m"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	for name, value := range map[string]string{
		"INFERENCE_URL": cfg.InferenceURL,
		"REFRESH_URL":   cfg.RefreshURL,
	} {
		if _, err := url.ParseRequestURI(value); err != nil {
			return fmt.Errorf("%s must be a valid URL: %w", name, err)
		}
	}

	return nil
}
