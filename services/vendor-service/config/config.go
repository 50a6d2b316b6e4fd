package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	Env                   string
	PostgresUser          string
	PostgresPassword      string
	PostgresDB            string
	PostgresHost          string
	PostgresPort          string
	PostgresSSLMode       string
	PostgresTimeZone      string
	WithdrawalSNSTopicARN string
	Currency              string
}

// LoadConfig reads configuration once at startup and fails fast when the
// database settings are incomplete.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", "8088"),
		Env:                   getEnv("APP_ENV", "development"),
		PostgresUser:          os.Getenv("POSTGRES_USER"),
		PostgresPassword:      os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:            os.Getenv("POSTGRES_DB"),
		PostgresHost:          os.Getenv("POSTGRES_HOST"),
		PostgresPort:          getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:       getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:      getEnv("POSTGRES_TIMEZONE", "America/Toronto"),
		WithdrawalSNSTopicARN: os.Getenv("WITHDRAWAL_SNS_TOPIC_ARN"),
		Currency:              getEnv("WITHDRAWAL_CURRENCY", "cad"),
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
