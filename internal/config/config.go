// Package config содержит логику чтения конфигурации бота.
package config

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	defaultRunAddress   = "localhost:8080"
	defaultUserDataFile = "user_data_cache.json"
)

// Config содержит параметры конфигурации бота.
type Config struct {
	BotToken       string        `env:"BOT_TOKEN" validate:"required"`
	AdminID        int64         `env:"ADMIN_ID" validate:"required"`
	WebHost        string        `env:"WEB_HOST" validate:"omitempty,url,startswith=https://"`
	RunAddress     string        `env:"RUN_ADDRESS" validate:"required"`
	UserDataFile   string        `env:"USER_DATA_FILE"`
	DatabaseURI    string        `env:"DATABASE_URI"`
	RedisURL       string        `env:"REDIS_URL" validate:"omitempty,url"`
	WebhookSecret  string        `env:"WEBHOOK_SECRET" validate:"omitempty,tgsecret"`
	OutboxInterval time.Duration `env:"OUTBOX_INTERVAL" envDefault:"30s" validate:"min=1s"`
	Workers        int           `env:"WORKERS" envDefault:"8" validate:"min=1,max=256"`
}

var secretPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,256}$`)

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fromEnv := map[string]string{}
	for _, key := range []string{"BOT_TOKEN", "RUN_ADDRESS", "DATABASE_URI", "USER_DATA_FILE", "REDIS_URL", "WEB_HOST"} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			fromEnv[key] = v
		}
	}

	flag.StringVar(&cfg.BotToken, "t", "", "telegram bot token")
	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for the profile snapshot")
	flag.StringVar(&cfg.UserDataFile, "f", defaultUserDataFile, "profile snapshot file")
	flag.StringVar(&cfg.RedisURL, "r", "", "redis URL for the order outbox")
	flag.StringVar(&cfg.WebHost, "w", "", "public https host for the webhook; empty means long polling")

	flag.Parse()

	overrides := map[string]*string{
		"BOT_TOKEN":      &cfg.BotToken,
		"RUN_ADDRESS":    &cfg.RunAddress,
		"DATABASE_URI":   &cfg.DatabaseURI,
		"USER_DATA_FILE": &cfg.UserDataFile,
		"REDIS_URL":      &cfg.RedisURL,
		"WEB_HOST":       &cfg.WebHost,
	}
	for key, dst := range overrides {
		if v, ok := fromEnv[key]; ok {
			*dst = v
		}
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.UserDataFile == "" {
		cfg.UserDataFile = defaultUserDataFile
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры и их формат.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("tgsecret", func(fl validator.FieldLevel) bool {
		return secretPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register validation: %w", err)
	}

	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Webhook сообщает, принимать ли обновления через вебхук вместо длинного опроса.
func (c *Config) Webhook() bool {
	return c.WebHost != ""
}
