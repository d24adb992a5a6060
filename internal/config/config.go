package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StrategyOffsetRewrite = "offset-rewrite"
	StrategySearchBased   = "search-based"
)

type Config struct {
	GitHubToken     string        `env:"GITHUB_TOKEN"`
	GitHubAPIURL    string        `env:"GITHUB_API_URL, default=https://api.github.com"`
	ServerPort      string        `env:"SERVER_PORT, default=:8081"`
	Strategy        string        `env:"STRATEGY, default=offset-rewrite"`
	ResolveTimeout  time.Duration `env:"RESOLVE_TIMEOUT, default=10s"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT, default=30s"`
	DBURL           string        `env:"DB_PATH"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH, default=file://migrations"`
	RabbitMQURL     string        `env:"RABBITMQ_URL"`
	LookupRetention time.Duration `env:"LOOKUP_RETENTION, default=720h"`
	PurgeInterval   time.Duration `env:"PURGE_INTERVAL, default=1h"`
	Debug           bool          `env:"DEBUG, default=false"`
}

// * LoadConfiguration reads the .env file (if any) and the process environment into a Config
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}

// * Validate fails fast on configuration errors so they never surface per request
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return errors.New("GITHUB_TOKEN is required")
	}

	strategy, err := ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}
	c.Strategy = strategy

	if c.ResolveTimeout <= 0 {
		return errors.New("RESOLVE_TIMEOUT must be positive")
	}

	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}

	if c.DBURL != "" && c.PurgeInterval <= 0 {
		return errors.New("PURGE_INTERVAL must be positive when DB_PATH is set")
	}

	return nil
}

// * ParseStrategy normalizes a strategy name, the empty string meaning the primary strategy
func ParseStrategy(name string) (string, error) {
	switch name {
	case "", StrategyOffsetRewrite:
		return StrategyOffsetRewrite, nil
	case StrategySearchBased:
		return StrategySearchBased, nil
	}
	return "", fmt.Errorf("unknown strategy %q, expected %s or %s", name, StrategyOffsetRewrite, StrategySearchBased)
}
