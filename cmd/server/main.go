// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"storelens/internal/analyzer"
	"storelens/internal/config"
	"storelens/internal/llm"
	"storelens/internal/server"
	"storelens/internal/shopify"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var model analyzer.Model = analyzer.Disabled{}
	if cfg.OpenAI.APIKey != "" {
		provider, err := llm.NewOpenAI(&cfg.OpenAI)
		if err != nil {
			log.Fatalf("failed to create LLM provider: %v", err)
		}
		model = analyzer.NewModel(provider)
	} else {
		slog.Warn("no model API key configured, running with deterministic fallbacks only")
	}

	var source analyzer.Source
	if cfg.Shopify.AccessToken != "" {
		source = shopify.NewClient(&cfg.Shopify)
	} else {
		slog.Warn("no storefront access token configured, serving fixture data")
		source = shopify.NewStaticSource()
	}

	pipeline := analyzer.New(model, source)

	srv := server.New(*cfg, pipeline)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
