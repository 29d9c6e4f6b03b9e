package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type StorageDriver string

const (
	StorageDriverCsv    StorageDriver = "csv"
	StorageDriverSqlite StorageDriver = "sqlite"
)

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Booking struct {
		Courts              []string `env:"BOOKING_COURTS" envSeparator:"," envDefault:"A,B,C,D,E,F,G,H"`
		OpenTime            string   `env:"BOOKING_OPEN_TIME" envDefault:"08:00 AM"`
		CloseTime           string   `env:"BOOKING_CLOSE_TIME" envDefault:"10:00 PM"`
		SlotMinutes         int      `env:"BOOKING_SLOT_MINUTES" envDefault:"30"`
		SearchWindowMinutes int      `env:"BOOKING_SEARCH_WINDOW_MINUTES" envDefault:"120"`
	}

	Storage struct {
		Driver    StorageDriver `env:"STORAGE_DRIVER" envDefault:"csv"`
		Path      string        `env:"STORAGE_PATH" envDefault:"data/bookings.csv"`
		UsersPath string        `env:"STORAGE_USERS_PATH" envDefault:"data/users.txt"`
	}

	Auth struct {
		JwtSecret       string `env:"AUTH_JWT_SECRET" envDefault:"court_booking_secret"`
		TokenTTLMinutes int    `env:"AUTH_TOKEN_TTL_MINUTES" envDefault:"1440"`
	}

	RabbitMq struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri  string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"court_booking.events"`
	}

	Cache struct {
		Enabled bool `env:"CACHE_ENABLED" envDefault:"true"`
		Size    int  `env:"CACHE_SIZE" envDefault:"256"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Storage.Driver = StorageDriver(strings.ToLower(string(cfg.Storage.Driver)))

	if cfg.Storage.Driver != StorageDriverCsv && cfg.Storage.Driver != StorageDriverSqlite {
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	if len(cfg.Booking.Courts) == 0 {
		return nil, fmt.Errorf("booking courts list is empty")
	}

	// Если RabbitMQ не включен, публикация событий отключена целиком
	if cfg.RabbitMq.Enabled && cfg.RabbitMq.AmqpUri == "" {
		return nil, fmt.Errorf("rabbitmq is enabled but RABBITMQ_URL is empty")
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
