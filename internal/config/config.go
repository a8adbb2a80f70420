package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	Store          string `mapstructure:"STORE"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	Google GoogleConfig

	HealthCheckInterval time.Duration `mapstructure:"HEALTH_CHECK_INTERVAL"`
}

// GoogleConfig - настройки интеграции с Google Calendar / Meet
type GoogleConfig struct {
	ClientID        string        `mapstructure:"GOOGLE_CLIENT_ID"`
	ClientSecret    string        `mapstructure:"GOOGLE_CLIENT_SECRET"`
	CredentialsFile string        `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	ApplicationName string        `mapstructure:"GOOGLE_APPLICATION_NAME"`
	Timeout         time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	RatePerSec      float64       `mapstructure:"PROVIDER_RATE_PER_SEC"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    os.Getenv("ENV"),
		Store:          os.Getenv("STORE"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		Google: GoogleConfig{
			ClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),
			CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
			ApplicationName: os.Getenv("GOOGLE_APPLICATION_NAME"),
		},
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Store == "" {
		cfg.Store = StorePostgres
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.Google.ApplicationName == "" {
		cfg.Google.ApplicationName = "Skill Sharing Platform"
	}

	var err error
	if cfg.Google.Timeout, err = durationEnv("PROVIDER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HealthCheckInterval, err = durationEnv("HEALTH_CHECK_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}

	cfg.Google.RatePerSec = 5
	if v := os.Getenv("PROVIDER_RATE_PER_SEC"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("PROVIDER_RATE_PER_SEC must be a positive number, got %q", v)
		}
		cfg.Google.RatePerSec = rate
	}

	// Проверяем обязательные поля
	switch cfg.Store {
	case StorePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required but not set")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
