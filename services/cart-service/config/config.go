package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	MongoURL     string
	MongoDBName  string
	RedisURL     string
	KafkaBrokers string
	KafkaTopic   string
	CacheTTL     time.Duration
}

// Load reads configuration once at startup. Missing required values are a
// startup failure, never a silent default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8086"),
		Env:          getEnv("APP_ENV", "development"),
		MongoURL:     os.Getenv("MONGO_DB_URL"),
		MongoDBName:  getEnv("MONGO_DB_NAME", "vendora"),
		RedisURL:     getEnv("REDIS_URL", "redis://redis:6379"),
		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "checkout.requested"),
		CacheTTL:     15 * time.Minute,
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_DB_URL must be set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
