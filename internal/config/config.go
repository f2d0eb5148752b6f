// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Database struct {
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Name     string `env:"DB_NAME"`
}

// DSN returns the lib/pq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

type TextGen struct {
	// Empty BaseURL disables the external generator; sequence generation
	// then always uses the static templates and semantic scoring degrades
	// to local analyzers only.
	BaseURL string `env:"TEXTGEN_BASE_URL"`
	APIKey  string `env:"TEXTGEN_API_KEY"`
	Model   string `env:"TEXTGEN_MODEL" envDefault:"gpt-4o-mini"`
}

type Config struct {
	HTTPAddr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	AMQPURL          string        `env:"AMQP_URL"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"30s"`
	SweepBatchSize   int           `env:"SWEEP_BATCH_SIZE" envDefault:"50"`
	SweepConcurrency int           `env:"SWEEP_CONCURRENCY" envDefault:"4"`
	SendFailureRate  float64       `env:"SEND_FAILURE_RATE" envDefault:"0"`
	Database         Database
	TextGen          TextGen
}

// Load reads .env (when present) and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
