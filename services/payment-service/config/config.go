package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	Env                 string
	PostgresUser        string
	PostgresPassword    string
	PostgresDB          string
	PostgresHost        string
	PostgresPort        string
	PostgresSSLMode     string
	PostgresTimeZone    string
	StripeSecretKey     string
	StripeAccountID     string // target account for organization-scoped keys
	StripeWebhookSecret string
	PaymentSNSTopicARN  string
	Currency            string
}

// LoadConfig reads configuration once at startup. Guessing at missing
// payment credentials could mis-route charges, so anything incomplete is
// a startup failure with an explanatory message.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8087"),
		Env:                 getEnv("APP_ENV", "development"),
		PostgresUser:        os.Getenv("POSTGRES_USER"),
		PostgresPassword:    os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:          os.Getenv("POSTGRES_DB"),
		PostgresHost:        os.Getenv("POSTGRES_HOST"),
		PostgresPort:        getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:     getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:    getEnv("POSTGRES_TIMEZONE", "America/Toronto"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeAccountID:     os.Getenv("STRIPE_ACCOUNT_ID"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PaymentSNSTopicARN:  os.Getenv("PAYMENT_SNS_TOPIC_ARN"),
		Currency:            getEnv("PAYMENT_CURRENCY", "cad"),
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY must be set")
	}
	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete: POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB and POSTGRES_HOST must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
