package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	aws_pkg "github.com/vendora-platform/backend/pkg/aws"
)

// Config holds all configuration for the shipping service.
type Config struct {
	Port            string
	Env             string
	StallionAPIKey  string
	StallionBaseURL string
	FallbackEnabled bool
}

// LoadConfig reads configuration from the environment with an optional
// Secrets Manager override for the carrier API key. The service can run
// with no carrier key at all: every request is then served by the
// fallback estimator.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8091"),
		Env:             getEnv("APP_ENV", "development"),
		StallionAPIKey:  os.Getenv("STALLION_API_KEY"),
		StallionBaseURL: os.Getenv("STALLION_BASE_URL"),
		FallbackEnabled: getEnv("SHIPPING_FALLBACK_ENABLED", "true") == "true",
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)
			if v, err := sm.GetSecret(context.Background(), "shipping/STALLION_API_KEY"); err == nil && v != "" {
				cfg.StallionAPIKey = v
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
