package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	Shopify ShopifyConfig
	API     APIConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
}

// OpenAIConfig configures the language model provider. APIKey is optional:
// when empty the service runs with deterministic fallbacks only.
type OpenAIConfig struct {
	Provider       string `envconfig:"OPENAI_PROVIDER" default:"openai"`
	APIKey         string `envconfig:"OPENAI_API_KEY"`
	APIEndpoint    string `envconfig:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1"`
	Model          string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	DeploymentName string `envconfig:"OPENAI_DEPLOYMENT" default:"gpt-4o"`
	APIVersion     string `envconfig:"OPENAI_API_VERSION" default:"2023-05-15"`
}

// ShopifyConfig configures the storefront data source. AccessToken is
// optional: when empty the service answers from the built-in fixture data.
type ShopifyConfig struct {
	AccessToken string        `envconfig:"SHOPIFY_ACCESS_TOKEN"`
	APIVersion  string        `envconfig:"SHOPIFY_API_VERSION" default:"2024-01"`
	Timeout     time.Duration `envconfig:"SHOPIFY_TIMEOUT" default:"30s"`
}

type APIConfig struct {
	Key string `envconfig:"API_KEY" default:"default-key"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
